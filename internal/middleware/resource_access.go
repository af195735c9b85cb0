package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/kanban-board/internal/constants"
	apierrors "github.com/yukikurage/kanban-board/internal/errors"
	"github.com/yukikurage/kanban-board/internal/models"
	"github.com/yukikurage/kanban-board/internal/services"
)

// RequireProject loads the project named by the route parameter param and
// stores it in context. Unknown ids get a 404.
func RequireProject(projects *services.ProjectService, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := projects.GetProject(c.Request.Context(), c.Param(param))
		if err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}

		c.Set(constants.ContextKeyProject, *project)
		c.Next()
	}
}

// RequireTask loads the task named by the :id route parameter and stores it
// in context.
func RequireTask(tasks *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, err := tasks.GetTask(c.Request.Context(), c.Param("id"))
		if err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}

		c.Set(constants.ContextKeyTask, *task)
		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProject
func GetProject(c *gin.Context) (models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	p, ok := v.(models.Project)
	return p, ok
}

// GetTask retrieves the task loaded by RequireTask
func GetTask(c *gin.Context) (models.Task, bool) {
	v, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	t, ok := v.(models.Task)
	return t, ok
}
