package board

import "github.com/yukikurage/kanban-board/internal/models"

var laneTitles = map[models.TaskStatus]string{
	models.TaskStatusTodo:       "To Do",
	models.TaskStatusInProgress: "In Progress",
	models.TaskStatusDone:       "Done",
}

// LaneTitle is the column heading for a lane.
func LaneTitle(status models.TaskStatus) string {
	return laneTitles[status]
}

type Column struct {
	Status models.TaskStatus
	Title  string
	Tasks  []models.Task
}

// Board partitions the snapshot's tasks into the three lanes, keeping the
// snapshot order within each lane. It is derived on every call.
func (s *State) Board() []Column {
	columns := make([]Column, len(models.TaskStatuses))
	index := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for i, status := range models.TaskStatuses {
		columns[i] = Column{Status: status, Title: LaneTitle(status), Tasks: []models.Task{}}
		index[status] = i
	}
	for _, t := range s.Tasks {
		if i, ok := index[t.Status]; ok {
			columns[i].Tasks = append(columns[i].Tasks, t)
		}
	}
	return columns
}
