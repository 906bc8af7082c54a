package interaction

import (
	"fmt"

	"github.com/Faultbox/dentview/internal/scene"
)

// DefaultSensitivity is the yaw in radians per pixel of horizontal drag.
const DefaultSensitivity = 0.01

// DragState is the per-model drag state.
type DragState struct {
	Dragging  bool
	PreviousX float32
}

// DragRotate turns models about their vertical axis while the pointer is
// dragged across them. Each model has its own state; a drag on one model
// never rotates another.
type DragRotate struct {
	Sensitivity float32

	reg    *scene.Registry
	states map[scene.ModelID]*DragState
}

// NewDragRotate creates a controller that rotates models in reg.
func NewDragRotate(reg *scene.Registry) *DragRotate {
	return &DragRotate{
		Sensitivity: DefaultSensitivity,
		reg:         reg,
		states:      make(map[scene.ModelID]*DragState),
	}
}

// State returns the drag state of id.
func (d *DragRotate) State(id scene.ModelID) DragState {
	if s, ok := d.states[id]; ok {
		return *s
	}
	return DragState{}
}

func (d *DragRotate) state(id scene.ModelID) *DragState {
	s, ok := d.states[id]
	if !ok {
		s = &DragState{}
		d.states[id] = s
	}
	return s
}

// Down starts a drag on id at pointer x.
func (d *DragRotate) Down(id scene.ModelID, x float32) {
	s := d.state(id)
	s.Dragging = true
	s.PreviousX = x
}

// Move rotates id by the horizontal distance since the last event. It does
// nothing unless id is being dragged.
func (d *DragRotate) Move(id scene.ModelID, x float32) error {
	s := d.state(id)
	if !s.Dragging {
		return nil
	}
	delta := (x - s.PreviousX) * d.Sensitivity
	s.PreviousX = x
	if err := d.reg.Rotate(id, delta); err != nil {
		s.Dragging = false
		return fmt.Errorf("drag-rotate: %w", err)
	}
	return nil
}

// Up ends the drag on id. Leaving the model ends it the same way.
func (d *DragRotate) Up(id scene.ModelID) {
	if s, ok := d.states[id]; ok {
		s.Dragging = false
	}
}

// Dragging returns the model currently being dragged, if any.
func (d *DragRotate) Dragging() (scene.ModelID, bool) {
	for id, s := range d.states {
		if s.Dragging {
			return id, true
		}
	}
	return 0, false
}

// Reset ends every drag.
func (d *DragRotate) Reset() {
	clear(d.states)
}
