package handlers

import (
	"net/http"

	"github.com/yukikurage/kanban-board/internal/dto"
	"github.com/yukikurage/kanban-board/internal/models"
)

func (suite *HandlerTestSuite) TestCreateTask_DefaultsToTodo() {
	project := suite.createProject("Board")

	w := suite.request(http.MethodPost, "/api/tasks", dto.CreateTaskRequest{ProjectID: project.ID, Title: "Write", Description: "Draft"})
	suite.Equal(http.StatusCreated, w.Code)

	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(project.ID, task.ProjectID)
}

func (suite *HandlerTestSuite) TestCreateTask_Invalid() {
	project := suite.createProject("Board")

	w := suite.request(http.MethodPost, "/api/tasks", dto.CreateTaskRequest{ProjectID: project.ID, Title: "t", Description: "d", Status: "blocked"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/tasks", dto.CreateTaskRequest{ProjectID: "missing", Title: "t", Description: "d"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListProjectTasks() {
	project := suite.createProject("Board")
	suite.createTask(project.ID, "a", models.TaskStatusTodo)
	suite.createTask(project.ID, "b", models.TaskStatusDone)

	w := suite.request(http.MethodGet, "/api/tasks/project/"+project.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	suite.decode(w, &resp)
	suite.Len(resp.Tasks, 2)

	w = suite.request(http.MethodGet, "/api/tasks/project/"+project.ID+"?status=done", nil)
	suite.decode(w, &resp)
	suite.Len(resp.Tasks, 1)

	w = suite.request(http.MethodGet, "/api/tasks/project/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetTask() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)

	w := suite.request(http.MethodGet, "/api/tasks/"+task.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/tasks/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTask() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusInProgress)

	w := suite.request(http.MethodPut, "/api/tasks/"+task.ID, dto.UpdateTaskRequest{Title: "renamed", Description: "new"})
	suite.Equal(http.StatusOK, w.Code)

	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Equal("renamed", updated.Title)
	suite.Equal(models.TaskStatusInProgress, updated.Status)
}

func (suite *HandlerTestSuite) TestMoveTask() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)

	w := suite.request(http.MethodPatch, "/api/tasks/"+task.ID+"/move", dto.MoveTaskRequest{Status: models.TaskStatusDone})
	suite.Equal(http.StatusOK, w.Code)
	var moved dto.TaskDTO
	suite.decode(w, &moved)
	suite.Equal(models.TaskStatusDone, moved.Status)

	w = suite.request(http.MethodPatch, "/api/tasks/"+task.ID+"/move", dto.MoveTaskRequest{Status: "archived"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPatch, "/api/tasks/missing/move", dto.MoveTaskRequest{Status: models.TaskStatusDone})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTask() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)

	w := suite.request(http.MethodDelete, "/api/tasks/"+task.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodDelete, "/api/tasks/"+task.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestAIRoutesWithoutKey() {
	project := suite.createProject("Board")
	task := suite.createTask(project.ID, "a", models.TaskStatusTodo)

	w := suite.request(http.MethodGet, "/api/ai/summarize/"+project.ID, nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)

	w = suite.request(http.MethodPost, "/api/ai/question/"+task.ID, dto.QuestionRequest{Question: "why?"})
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}
