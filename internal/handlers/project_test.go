package handlers

import (
	"net/http"

	"github.com/yukikurage/kanban-board/internal/dto"
	"github.com/yukikurage/kanban-board/internal/models"
)

func (suite *HandlerTestSuite) TestCreateProject_Success() {
	w := suite.request(http.MethodPost, "/api/projects", dto.ProjectRequest{Name: "Launch", Description: "Ship it"})
	suite.Equal(http.StatusCreated, w.Code)

	var project dto.ProjectDTO
	suite.decode(w, &project)
	suite.NotEmpty(project.ID)
	suite.Equal("Launch", project.Name)
}

func (suite *HandlerTestSuite) TestCreateProject_InvalidBody() {
	w := suite.request(http.MethodPost, "/api/projects", map[string]string{"name": "No description"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_INPUT", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestCreateProject_BlankName() {
	w := suite.request(http.MethodPost, "/api/projects", dto.ProjectRequest{Name: "   ", Description: "x"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListProjects() {
	suite.createProject("a")
	suite.createProject("b")
	suite.createProject("c")

	w := suite.request(http.MethodGet, "/api/projects", nil)
	suite.Equal(http.StatusOK, w.Code)
	var all dto.ProjectListResponse
	suite.decode(w, &all)
	suite.Len(all.Projects, 3)
	suite.Nil(all.Pagination)

	w = suite.request(http.MethodGet, "/api/projects?page=2&limit=2", nil)
	var page dto.ProjectListResponse
	suite.decode(w, &page)
	suite.Len(page.Projects, 1)
	suite.Require().NotNil(page.Pagination)
	suite.EqualValues(3, page.Pagination.Total)
}

func (suite *HandlerTestSuite) TestGetProject() {
	project := suite.createProject("Launch")

	w := suite.request(http.MethodGet, "/api/projects/"+project.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/projects/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestUpdateProject() {
	project := suite.createProject("Old")

	w := suite.request(http.MethodPut, "/api/projects/"+project.ID, dto.ProjectRequest{Name: "New", Description: "Updated"})
	suite.Equal(http.StatusOK, w.Code)
	var updated dto.ProjectDTO
	suite.decode(w, &updated)
	suite.Equal("New", updated.Name)

	w = suite.request(http.MethodPut, "/api/projects/missing", dto.ProjectRequest{Name: "N", Description: "D"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteProject_CascadesTasks() {
	project := suite.createProject("Doomed")
	suite.createTask(project.ID, "a", models.TaskStatusTodo)

	w := suite.request(http.MethodDelete, "/api/projects/"+project.ID, nil)
	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Zero(count)

	w = suite.request(http.MethodDelete, "/api/projects/"+project.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
