package camera

import (
	"github.com/Faultbox/dentview/pkg/math"
)

// Trackball rotates the camera freely around its target, including over the
// poles, and pans with the secondary buttons. Its own zoom is disabled; wheel
// input is left to another handler. Motion is static: each drag delta is
// applied once and nothing carries over to later frames.
type Trackball struct {
	RotateSpeed float32
	PanSpeed    float32
}

// NewTrackball creates a trackball controller.
func NewTrackball(rotateSpeed, panSpeed float32) *Trackball {
	return &Trackball{RotateSpeed: rotateSpeed, PanSpeed: panSpeed}
}

// Drag rotates on the primary button and pans otherwise.
func (t *Trackball) Drag(cam *State, button Button, delta, viewport math.Vec2) {
	if button != ButtonPrimary {
		pan(cam, delta, t.PanSpeed)
		return
	}
	if viewport.X <= 0 || delta.IsZero() {
		return
	}

	// Normalized to half the viewport width on both axes, screen Y up.
	move := math.Vec2{X: delta.X, Y: -delta.Y}.Scale(2 / viewport.X)
	angle := move.Length() * t.RotateSpeed
	if angle == 0 {
		return
	}

	eye := cam.Eye()
	eyeDir := eye.Normalize()
	up := cam.Up.Normalize()
	sideways := up.Cross(eyeDir).Normalize()

	moveDir := up.Scale(move.Y).Add(sideways.Scale(move.X))
	axis := moveDir.Cross(eye).Normalize()

	q := math.QuatFromAxisAngle(axis, angle)
	cam.Position = cam.Target.Add(q.Rotate(eye))
	cam.Up = q.Rotate(cam.Up).Normalize()
}

// Wheel never consumes the event.
func (t *Trackball) Wheel(*State, float32) bool {
	return false
}
