package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/dto"
	apierrors "github.com/yukikurage/kanban-board/internal/errors"
	"github.com/yukikurage/kanban-board/internal/services"
	"github.com/yukikurage/kanban-board/internal/utils"
)

// AIHandler serves the assistant's raw output. Shaping it is left to the
// caller; the board endpoints return normalized responses instead.
type AIHandler struct {
	aiService *services.AIService
}

func NewAIHandler(aiService *services.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

func (h *AIHandler) SummarizeProject(c *gin.Context) {
	payload, err := h.aiService.SummarizeProject(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *AIHandler) AskQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	payload, err := h.aiService.AskQuestion(c.Request.Context(), c.Param("taskId"), req.Question)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *AIHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, board.ErrProjectNotFound), errors.Is(err, board.ErrTaskNotFound):
		apierrors.RespondWithDomainError(c, err)
	default:
		utils.Log.Warn("assistant call failed", zap.Error(err))
		apierrors.ServiceUnavailable(c, "AI service request failed")
	}
}
