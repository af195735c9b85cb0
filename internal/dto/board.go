package dto

import (
	"github.com/yukikurage/kanban-board/internal/board"
	"github.com/yukikurage/kanban-board/internal/models"
)

// ColumnDTO is one lane of the board view
type ColumnDTO struct {
	Status models.TaskStatus `json:"status"`
	Title  string            `json:"title"`
	Tasks  []TaskDTO         `json:"tasks"`
}

// BoardStateDTO is a snapshot of a board session
type BoardStateDTO struct {
	Projects       []ProjectDTO `json:"projects"`
	CurrentProject *ProjectDTO  `json:"current_project"`
	Tasks          []TaskDTO    `json:"tasks"`
	Columns        []ColumnDTO  `json:"columns"`
	Loading        bool         `json:"loading"`
	InFlight       []string     `json:"in_flight"`
	Error          string       `json:"error,omitempty"`
}

// BoardMoveRequest is the body of POST /api/board/move: the dragged task
// and where it was dropped.
type BoardMoveRequest struct {
	TaskID   string `json:"task_id" binding:"required"`
	TargetID string `json:"target_id"`
	LaneHint string `json:"lane_hint"`
}

// BoardMoveResponse reports a move and the resulting board
type BoardMoveResponse struct {
	Task   TaskDTO                `json:"task"`
	From   models.TaskStatus      `json:"from"`
	To     models.TaskStatus      `json:"to"`
	Source board.ResolutionSource `json:"source"`
	NoOp   bool                   `json:"noop"`
	Board  BoardStateDTO          `json:"board"`
}

// ToBoardStateDTO renders a snapshot together with its derived columns
func ToBoardStateDTO(state *board.State) BoardStateDTO {
	out := BoardStateDTO{
		Projects: ToProjectDTOs(state.Projects),
		Tasks:    ToTaskDTOs(state.Tasks),
		Loading:  state.Loading,
		InFlight: []string{},
		Error:    state.Error,
	}
	if state.CurrentProject != nil {
		p := ToProjectDTO(*state.CurrentProject)
		out.CurrentProject = &p
	}
	for _, col := range state.Board() {
		out.Columns = append(out.Columns, ColumnDTO{
			Status: col.Status,
			Title:  col.Title,
			Tasks:  ToTaskDTOs(col.Tasks),
		})
	}
	return out
}

func (r BoardMoveRequest) Signal() board.DropSignal {
	return board.DropSignal{
		ItemID:   r.TaskID,
		TargetID: r.TargetID,
		LaneHint: r.LaneHint,
	}
}

func ToBoardMoveResponse(res board.MoveResult, state *board.State) BoardMoveResponse {
	return BoardMoveResponse{
		Task:   ToTaskDTO(res.Task),
		From:   res.From,
		To:     res.To,
		Source: res.Source,
		NoOp:   res.NoOp,
		Board:  ToBoardStateDTO(state),
	}
}
