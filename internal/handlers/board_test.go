package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yukikurage/kanban-board/internal/assistant"
	"github.com/yukikurage/kanban-board/internal/dto"
	"github.com/yukikurage/kanban-board/internal/models"
)

func (suite *HandlerTestSuite) openBoard(projectID string) dto.BoardStateDTO {
	w := suite.request(http.MethodPost, "/api/board/projects/"+projectID+"/open", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var state dto.BoardStateDTO
	suite.decode(w, &state)
	return state
}

func (suite *HandlerTestSuite) TestBoard_SessionIsIssuedOnce() {
	w := suite.request(http.MethodGet, "/api/board", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(suite.cookies)

	suite.request(http.MethodGet, "/api/board", nil)
	suite.Equal(1, suite.boards.Len())
}

func (suite *HandlerTestSuite) TestBoard_OpenProjectBuildsColumns() {
	project := suite.createProject("Board")
	suite.createTask(project.ID, "a", models.TaskStatusTodo)
	suite.createTask(project.ID, "b", models.TaskStatusDone)

	state := suite.openBoard(project.ID)
	suite.Require().NotNil(state.CurrentProject)
	suite.Equal(project.ID, state.CurrentProject.ID)
	suite.Require().Len(state.Columns, 3)
	suite.Equal("To Do", state.Columns[0].Title)
	suite.Len(state.Columns[0].Tasks, 1)
	suite.Empty(state.Columns[1].Tasks)
	suite.Len(state.Columns[2].Tasks, 1)
	suite.False(state.Loading)

	w := suite.request(http.MethodPost, "/api/board/projects/missing/open", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestBoard_MoveByColumnID() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)
	suite.openBoard(project.ID)

	w := suite.request(http.MethodPost, "/api/board/move", dto.BoardMoveRequest{TaskID: task.ID, TargetID: "inProgress"})
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BoardMoveResponse
	suite.decode(w, &resp)
	suite.Equal(models.TaskStatusTodo, resp.From)
	suite.Equal(models.TaskStatusInProgress, resp.To)
	suite.Len(resp.Board.Columns[1].Tasks, 1)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, "id = ?", task.ID).Error)
	suite.Equal(models.TaskStatusInProgress, stored.Status)
}

func (suite *HandlerTestSuite) TestBoard_MoveOntoCardUsesItsLane() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)
	other := suite.createTask(project.ID, "b", models.TaskStatusDone)
	suite.openBoard(project.ID)

	w := suite.request(http.MethodPost, "/api/board/move", dto.BoardMoveRequest{TaskID: task.ID, TargetID: other.ID})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BoardMoveResponse
	suite.decode(w, &resp)
	suite.Equal(models.TaskStatusDone, resp.To)
}

func (suite *HandlerTestSuite) TestBoard_MoveUnresolved() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)
	suite.openBoard(project.ID)

	w := suite.request(http.MethodPost, "/api/board/move", dto.BoardMoveRequest{TaskID: task.ID, TargetID: "nowhere"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("TARGET_UNRESOLVED", suite.errorCode(w))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.MoveOutcomes.WithLabelValues("unresolved", "none")))
}

func (suite *HandlerTestSuite) TestBoard_MoveSameLaneIsNoop() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)
	suite.openBoard(project.ID)

	w := suite.request(http.MethodPost, "/api/board/move", dto.BoardMoveRequest{TaskID: task.ID, LaneHint: "todo"})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BoardMoveResponse
	suite.decode(w, &resp)
	suite.True(resp.NoOp)
}

func (suite *HandlerTestSuite) TestBoard_MoveRollsBackWhenStoreRejects() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)
	suite.openBoard(project.ID)

	// removed behind the session's back, so persistence fails
	suite.Require().NoError(suite.db.Delete(&models.Task{}, "id = ?", task.ID).Error)

	w := suite.request(http.MethodPost, "/api/board/move", dto.BoardMoveRequest{TaskID: task.ID, TargetID: "done"})
	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Equal("PERSISTENCE_FAILURE", suite.errorCode(w))

	w = suite.request(http.MethodGet, "/api/board", nil)
	var state dto.BoardStateDTO
	suite.decode(w, &state)
	suite.Require().Len(state.Tasks, 1)
	suite.Equal(models.TaskStatusTodo, state.Tasks[0].Status)
	suite.NotEmpty(state.Error)
}

func (suite *HandlerTestSuite) TestBoard_DispatchMoveTask() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)
	suite.openBoard(project.ID)

	body := map[string]any{"type": "MOVE_TASK", "payload": map[string]string{"taskId": task.ID, "newStatus": "done"}}
	w := suite.request(http.MethodPost, "/api/board/dispatch", body)
	suite.Equal(http.StatusOK, w.Code)
	var state dto.BoardStateDTO
	suite.decode(w, &state)
	suite.Equal(models.TaskStatusDone, state.Tasks[0].Status)

	body = map[string]any{"type": "MOVE_TASK", "payload": map[string]string{"taskId": task.ID, "newStatus": "blocked"}}
	w = suite.request(http.MethodPost, "/api/board/dispatch", body)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/board/dispatch", map[string]any{"type": "EXPLODE"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestBoard_TaskLifecycle() {
	project := suite.createProject("Board")
	suite.openBoard(project.ID)

	w := suite.request(http.MethodPost, "/api/board/tasks", dto.CreateTaskRequest{ProjectID: project.ID, Title: "New", Description: "Card"})
	suite.Equal(http.StatusCreated, w.Code)
	var state dto.BoardStateDTO
	suite.decode(w, &state)
	suite.Require().Len(state.Tasks, 1)
	id := state.Tasks[0].ID

	w = suite.request(http.MethodPut, "/api/board/tasks/"+id, dto.UpdateTaskRequest{Title: "Renamed", Description: "Card"})
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &state)
	suite.Equal("Renamed", state.Tasks[0].Title)

	w = suite.request(http.MethodDelete, "/api/board/tasks/"+id, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &state)
	suite.Empty(state.Tasks)

	w = suite.request(http.MethodDelete, "/api/board/tasks/"+id, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestBoard_ProjectLifecycle() {
	w := suite.request(http.MethodPost, "/api/board/projects", dto.ProjectRequest{Name: "Fresh", Description: "Project"})
	suite.Equal(http.StatusCreated, w.Code)
	var state dto.BoardStateDTO
	suite.decode(w, &state)
	suite.Require().Len(state.Projects, 1)

	w = suite.request(http.MethodDelete, "/api/board/projects/"+state.Projects[0].ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &state)
	suite.Empty(state.Projects)
}

func (suite *HandlerTestSuite) TestBoard_Refresh() {
	suite.createProject("a")
	suite.createProject("b")

	w := suite.request(http.MethodPost, "/api/board/refresh", nil)
	suite.Equal(http.StatusOK, w.Code)
	var state dto.BoardStateDTO
	suite.decode(w, &state)
	suite.Len(state.Projects, 2)
}

func (suite *HandlerTestSuite) TestBoard_SummaryFallsBack() {
	project := suite.createProject("Board")

	w := suite.request(http.MethodGet, "/api/board/summary/"+project.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp assistant.Response
	suite.decode(w, &resp)
	suite.Equal(assistant.KindSummarize, resp.Kind)
	suite.Require().NotNil(resp.Summary)
	suite.True(resp.Summary.Degraded)
	suite.Equal(assistant.SummaryFallback, resp.Summary.SummaryText)
	suite.Equal(assistant.FallbackRecommendations, resp.Summary.Recommendations)
}

func (suite *HandlerTestSuite) TestBoard_QuestionFallsBack() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)

	w := suite.request(http.MethodPost, "/api/board/question/"+task.ID, dto.QuestionRequest{Question: "What next?"})
	suite.Equal(http.StatusOK, w.Code)
	var resp assistant.Response
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.Answer)
	suite.Equal(assistant.AnswerFallback, resp.Answer.AnswerText)
	suite.Zero(resp.Answer.Confidence)

	w = suite.request(http.MethodPost, "/api/board/question/"+task.ID, map[string]string{"question": ""})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestBoard_MoveOntoColumnElement() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)
	suite.openBoard(project.ID)

	w := suite.request(http.MethodPost, "/api/board/move", dto.BoardMoveRequest{TaskID: task.ID, TargetID: "column-done"})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BoardMoveResponse
	suite.decode(w, &resp)
	suite.Equal(models.TaskStatusDone, resp.To)
	suite.Equal("structure", string(resp.Source))
}
