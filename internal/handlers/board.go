package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/dto"
	apierrors "github.com/yukikurage/kanban-board/internal/errors"
	"github.com/yukikurage/kanban-board/internal/middleware"
)

// BoardHandler exposes a client's board session: the cached snapshot, action
// dispatch, drag-and-drop moves and normalized assistant responses.
type BoardHandler struct{}

func NewBoardHandler() *BoardHandler {
	return &BoardHandler{}
}

func (h *BoardHandler) session(c *gin.Context) (*board.Session, bool) {
	s, ok := middleware.GetBoardSession(c)
	if !ok {
		apierrors.InternalError(c, "Board session not found in context")
	}
	return s, ok
}

// boardState renders state along with the session's outstanding moves
func boardState(s *board.Session, state *board.State) dto.BoardStateDTO {
	out := dto.ToBoardStateDTO(state)
	out.InFlight = s.InFlightTasks()
	return out
}

// GetBoard returns the current snapshot and its lane columns
func (h *BoardHandler) GetBoard(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, boardState(s, s.Snapshot()))
}

// Dispatch applies a {type, payload} action to the session store
func (h *BoardHandler) Dispatch(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var env board.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	action, err := env.Decode()
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	state, err := s.Dispatch(action)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardState(s, state))
}

// Refresh reloads the project list into the session
func (h *BoardHandler) Refresh(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.FetchProjects(c.Request.Context()); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardState(s, s.Snapshot()))
}

// OpenProject loads a project and its tasks into the session
func (h *BoardHandler) OpenProject(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := s.FetchProjects(ctx); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	if err := s.OpenProject(ctx, c.Param("id")); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardState(s, s.Snapshot()))
}

// CreateProject creates a project through the session so the cache picks
// it up.
func (h *BoardHandler) CreateProject(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := s.CreateProject(c.Request.Context(), req.Fields()); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, boardState(s, s.Snapshot()))
}

func (h *BoardHandler) DeleteProject(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardState(s, s.Snapshot()))
}

func (h *BoardHandler) CreateTask(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := s.CreateTask(c.Request.Context(), req.Fields()); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, boardState(s, s.Snapshot()))
}

func (h *BoardHandler) UpdateTask(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := s.UpdateTask(c.Request.Context(), c.Param("id"), req.Fields()); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardState(s, s.Snapshot()))
}

func (h *BoardHandler) DeleteTask(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardState(s, s.Snapshot()))
}

// Move handles a drag-end: resolve the drop target and move the task
func (h *BoardHandler) Move(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.BoardMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	res, err := s.RequestMove(c.Request.Context(), req.TaskID, req.Signal())
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	resp := dto.ToBoardMoveResponse(res, s.Snapshot())
	resp.Board.InFlight = s.InFlightTasks()
	c.JSON(http.StatusOK, resp)
}

// Summary returns a normalized project summary; assistant failures yield
// the fallback summary with status 200.
func (h *BoardHandler) Summary(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Summarize(c.Request.Context(), c.Param("projectId")))
}

// Question returns a normalized answer about a task
func (h *BoardHandler) Question(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := s.Ask(c.Request.Context(), c.Param("taskId"), req.Question)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
