package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yukikurage/kanban-board/internal/constants"
	"github.com/yukikurage/kanban-board/internal/metrics"
	"github.com/yukikurage/kanban-board/internal/middleware"
	"github.com/yukikurage/kanban-board/internal/services"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Projects     *services.ProjectService
	Tasks        *services.TaskService
	AI           *services.AIService
	Boards       *services.BoardService
	SessionStore sessions.Store
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	Logger       *zap.Logger
}

// NewRouter builds the gin engine with all routes.
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger, deps.Metrics))
	r.Use(sessions.Sessions(constants.SessionName, deps.SessionStore))

	projectHandler := NewProjectHandler(deps.Projects)
	taskHandler := NewTaskHandler(deps.Tasks)
	aiHandler := NewAIHandler(deps.AI)
	boardHandler := NewBoardHandler()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Kanban Board API is running",
		})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProject(deps.Projects, "id"), projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("/project/:projectId", taskHandler.ListProjectTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTask(deps.Tasks), taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/move", taskHandler.MoveTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		ai := api.Group("/ai")
		{
			ai.GET("/summarize/:projectId", aiHandler.SummarizeProject)
			ai.POST("/question/:taskId", aiHandler.AskQuestion)
		}

		boardGroup := api.Group("/board")
		boardGroup.Use(middleware.RequireBoardSession(deps.Boards))
		{
			boardGroup.GET("", boardHandler.GetBoard)
			boardGroup.POST("/refresh", boardHandler.Refresh)
			boardGroup.POST("/dispatch", boardHandler.Dispatch)
			boardGroup.POST("/projects", boardHandler.CreateProject)
			boardGroup.POST("/projects/:id/open", boardHandler.OpenProject)
			boardGroup.DELETE("/projects/:id", boardHandler.DeleteProject)
			boardGroup.POST("/tasks", boardHandler.CreateTask)
			boardGroup.PUT("/tasks/:id", boardHandler.UpdateTask)
			boardGroup.DELETE("/tasks/:id", boardHandler.DeleteTask)
			boardGroup.POST("/move", boardHandler.Move)
			boardGroup.GET("/summary/:projectId", boardHandler.Summary)
			boardGroup.POST("/question/:taskId", boardHandler.Question)
		}
	}

	return r
}
