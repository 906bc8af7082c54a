package scene

import (
	"slices"

	"github.com/Faultbox/dentview/pkg/math"
)

// Appearance is the UI-controlled state of one model.
type Appearance struct {
	Tint    Color
	Opacity float32
	Visible bool
}

// ShouldRender is the visibility gate: a hidden model contributes nothing to
// the frame and receives no pointer events.
func ShouldRender(a Appearance) bool {
	return a.Visible
}

// LightingState is the UI-controlled light rig input.
type LightingState struct {
	Intensity    float32
	KeyPosition  math.Vec3
	FillPosition math.Vec3
}

// ViewState is an immutable snapshot of everything the controls drive.
// Models is indexed by ModelID. The With methods return modified copies and
// never alias the receiver's slice.
type ViewState struct {
	Models   []Appearance
	Lighting LightingState
}

// Model returns the appearance for id, or a hidden zero value if id is
// unknown.
func (s ViewState) Model(id ModelID) Appearance {
	if id < 0 || int(id) >= len(s.Models) {
		return Appearance{}
	}
	return s.Models[id]
}

// WithModel returns a copy with the appearance of id replaced.
func (s ViewState) WithModel(id ModelID, a Appearance) ViewState {
	if id < 0 || int(id) >= len(s.Models) {
		return s
	}
	s.Models = slices.Clone(s.Models)
	s.Models[id] = a
	return s
}

// WithLighting returns a copy with the lighting replaced.
func (s ViewState) WithLighting(l LightingState) ViewState {
	s.Models = slices.Clone(s.Models)
	s.Lighting = l
	return s
}
