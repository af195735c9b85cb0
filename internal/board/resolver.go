package board

import (
	"sync"

	"github.com/yukikurage/kanban-board/internal/models"
)

// DropSignal is the library-neutral form of a drag-end event: the dragged
// item, the identifier of whatever the pointer was released over, and the
// lane attribute attached to that target, if any.
type DropSignal struct {
	ItemID   string `json:"itemId"`
	TargetID string `json:"targetId"`
	LaneHint string `json:"laneHint,omitempty"`
}

type ResolutionSource string

const (
	SourceTargetID  ResolutionSource = "target_id"
	SourceLaneHint  ResolutionSource = "lane_hint"
	SourceStructure ResolutionSource = "structure"
)

type Resolution struct {
	Lane   models.TaskStatus
	Source ResolutionSource
}

// StructuralLookup recovers a lane from the element a drop landed on.
type StructuralLookup interface {
	LookupLane(targetID string) (models.TaskStatus, bool)
}

type LookupFunc func(targetID string) (models.TaskStatus, bool)

func (f LookupFunc) LookupLane(targetID string) (models.TaskStatus, bool) {
	return f(targetID)
}

// Resolver maps a drop signal to a lane.
type Resolver struct {
	lookups []StructuralLookup
}

// NewResolver returns a resolver whose structural step consults lookups in
// order.
func NewResolver(lookups ...StructuralLookup) *Resolver {
	return &Resolver{lookups: lookups}
}

// Resolve tries, in order: the target identifier itself, the target's lane
// hint, then the structural lookups (the per-call ones first). A hint that
// names no lane is ignored.
func (r *Resolver) Resolve(sig DropSignal, extra ...StructuralLookup) (Resolution, error) {
	if lane, ok := models.ParseTaskStatus(sig.TargetID); ok {
		return Resolution{Lane: lane, Source: SourceTargetID}, nil
	}
	if lane, ok := models.ParseTaskStatus(sig.LaneHint); ok {
		return Resolution{Lane: lane, Source: SourceLaneHint}, nil
	}
	if sig.TargetID != "" {
		for _, lookups := range [][]StructuralLookup{extra, r.lookups} {
			for _, l := range lookups {
				if l == nil {
					continue
				}
				if lane, ok := l.LookupLane(sig.TargetID); ok && lane.Valid() {
					return Resolution{Lane: lane, Source: SourceStructure}, nil
				}
			}
		}
	}
	return Resolution{}, ErrTargetUnresolved
}

// CardLookup treats the target as a task card and answers with the lane the
// card currently sits in.
func CardLookup(state *State) StructuralLookup {
	return LookupFunc(func(targetID string) (models.TaskStatus, bool) {
		if state == nil {
			return "", false
		}
		t, ok := state.FindTask(targetID)
		if !ok {
			return "", false
		}
		return t.Status, true
	})
}

const maxSurfaceDepth = 32

// SurfaceIndex mirrors the rendered board: elements with parents, some of
// which carry a lane attribute. Lookups walk from the drop target up to the
// first element that carries one.
type SurfaceIndex struct {
	mu      sync.RWMutex
	parents map[string]string
	lanes   map[string]models.TaskStatus
}

func NewSurfaceIndex() *SurfaceIndex {
	return &SurfaceIndex{
		parents: make(map[string]string),
		lanes:   make(map[string]models.TaskStatus),
	}
}

// NewLaneSurface returns an index with one container per lane, registered
// under the lane's column element id ("column-todo" etc).
func NewLaneSurface() *SurfaceIndex {
	x := NewSurfaceIndex()
	for _, lane := range models.TaskStatuses {
		x.lanes[ColumnElementID(lane)] = lane
	}
	return x
}

// ColumnElementID is the element id of a lane's container.
func ColumnElementID(lane models.TaskStatus) string {
	return "column-" + string(lane)
}

// MarkLane records that elementID carries the lane attribute.
func (x *SurfaceIndex) MarkLane(elementID string, lane models.TaskStatus) error {
	if err := ValidateStatus(lane); err != nil {
		return err
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.lanes[elementID] = lane
	return nil
}

// Attach records parentID as the enclosing element of elementID.
func (x *SurfaceIndex) Attach(elementID, parentID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.parents[elementID] = parentID
}

// Detach forgets elementID.
func (x *SurfaceIndex) Detach(elementID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.parents, elementID)
	delete(x.lanes, elementID)
}

func (x *SurfaceIndex) LookupLane(targetID string) (models.TaskStatus, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	id := targetID
	for depth := 0; depth < maxSurfaceDepth && id != ""; depth++ {
		if lane, ok := x.lanes[id]; ok {
			return lane, true
		}
		id = x.parents[id]
	}
	return "", false
}
