// Package camera provides the viewer's orthographic camera and the
// library-style controllers that manipulate it.
package camera

import (
	"github.com/Faultbox/dentview/pkg/math"
)

// Clip planes of the orthographic projection.
const (
	Near = 0.1
	Far  = 1000.0
)

// State is the shared camera. Zoom divides the visible extent: at zoom z one
// world unit spans z pixels.
type State struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
	Zoom     float32
}

// NewState returns a camera at position looking at the origin with +Y up.
func NewState(position math.Vec3, zoom float32) State {
	return State{
		Position: position,
		Up:       math.UnitY,
		Zoom:     zoom,
	}
}

// Eye returns the offset from the target to the camera.
func (s State) Eye() math.Vec3 {
	return s.Position.Sub(s.Target)
}

// ViewMatrix returns the world-to-view transform.
func (s State) ViewMatrix() math.Mat4 {
	return math.LookAt(s.Position, s.Target, s.Up)
}

// Projection returns the orthographic projection for a viewport in pixels.
func (s State) Projection(width, height float32) math.Mat4 {
	hw := width / (2 * s.Zoom)
	hh := height / (2 * s.Zoom)
	return math.Ortho(-hw, hw, -hh, hh, Near, Far)
}

// ViewProjection returns Projection * ViewMatrix.
func (s State) ViewProjection(width, height float32) math.Mat4 {
	return s.Projection(width, height).Mul(s.ViewMatrix())
}

// Basis returns the camera's right and up axes in world space.
func (s State) Basis() (right, up math.Vec3) {
	forward := s.Target.Sub(s.Position).Normalize()
	right = forward.Cross(s.Up).Normalize()
	up = right.Cross(forward)
	return right, up
}

// Button identifies the pointer button driving a drag. Touch drags are
// reported as ButtonPrimary.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Controller manipulates the shared camera from pointer input. It never
// touches individual models.
type Controller interface {
	// Drag applies one pointer movement of delta pixels inside a viewport of
	// the given size.
	Drag(cam *State, button Button, delta, viewport math.Vec2)
	// Wheel applies one wheel tick and reports whether it was consumed.
	Wheel(cam *State, deltaY float32) bool
}
