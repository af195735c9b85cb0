package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/constants"
	apierrors "github.com/yukikurage/kanban-board/internal/errors"
	"github.com/yukikurage/kanban-board/internal/services"
	"github.com/yukikurage/kanban-board/internal/utils"
)

// RequireBoardSession attaches the caller's board session, issuing a board
// id into the HTTP session on first contact.
func RequireBoardSession(boards *services.BoardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		boardID, _ := session.Get(constants.SessionBoardIDKey).(string)

		if boardID == "" {
			boardID = boards.NewBoardID()
			session.Set(constants.SessionBoardIDKey, boardID)
			if err := session.Save(); err != nil {
				utils.Log.Error("failed to save session", zap.Error(err))
				apierrors.InternalError(c, "Failed to start board session")
				return
			}
		}

		c.Set(constants.ContextKeyBoardID, boardID)
		c.Set(constants.ContextKeyBoardSession, boards.Session(boardID))
		c.Next()
	}
}

// GetBoardSession retrieves the board session from context
func GetBoardSession(c *gin.Context) (*board.Session, bool) {
	v, exists := c.Get(constants.ContextKeyBoardSession)
	if !exists {
		return nil, false
	}
	s, ok := v.(*board.Session)
	return s, ok
}
