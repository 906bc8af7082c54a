package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/dentview/pkg/math"
)

// polarEpsilon keeps the orbit away from the poles where the up vector
// would flip.
const polarEpsilon = 1e-6

// Per-tick wheel scale at ZoomSpeed 1.
const dollyBase = 0.95

// orbitCore is the spherical rotate and wheel dolly shared by the orbit
// style controllers.
type orbitCore struct {
	RotateSpeed float32
	ZoomSpeed   float32
	MinZoom     float32
	MaxZoom     float32
}

// rotate turns the camera around its target: a drag across the full viewport
// height is one full turn at RotateSpeed 1.
func (o orbitCore) rotate(cam *State, delta, viewport math.Vec2) {
	if viewport.Y <= 0 {
		return
	}
	eye := cam.Eye()
	radius := eye.Length()
	if radius == 0 {
		return
	}

	theta := math32.Atan2(eye.X, eye.Z)
	phi := math32.Acos(math.Clamp(eye.Y/radius, -1, 1))

	theta -= 2 * math32.Pi * delta.X / viewport.Y * o.RotateSpeed
	phi -= 2 * math32.Pi * delta.Y / viewport.Y * o.RotateSpeed
	phi = math.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	sinPhi, cosPhi := math32.Sincos(phi)
	sinTheta, cosTheta := math32.Sincos(theta)
	eye = math.Vec3{
		X: radius * sinPhi * sinTheta,
		Y: radius * cosPhi,
		Z: radius * sinPhi * cosTheta,
	}
	cam.Position = cam.Target.Add(eye)
	cam.Up = math.UnitY
}

// dolly scales the orthographic zoom by one wheel tick and clamps it.
func (o orbitCore) dolly(cam *State, deltaY float32) {
	if deltaY == 0 {
		return
	}
	scale := math32.Pow(dollyBase, o.ZoomSpeed)
	if deltaY > 0 {
		cam.Zoom *= scale
	} else {
		cam.Zoom /= scale
	}
	cam.Zoom = math.Clamp(cam.Zoom, o.MinZoom, o.MaxZoom)
}

// Orbit orbits the camera about the scene origin with a bounded zoom.
// It does not pan.
type Orbit struct {
	orbitCore
}

// NewOrbit creates an orbit controller. Zoom is clamped to [minZoom, maxZoom].
func NewOrbit(zoomSpeed, rotateSpeed, minZoom, maxZoom float32) *Orbit {
	return &Orbit{orbitCore{
		RotateSpeed: rotateSpeed,
		ZoomSpeed:   zoomSpeed,
		MinZoom:     minZoom,
		MaxZoom:     maxZoom,
	}}
}

// Drag rotates on any button.
func (o *Orbit) Drag(cam *State, _ Button, delta, viewport math.Vec2) {
	o.rotate(cam, delta, viewport)
}

// Wheel zooms within the bounds.
func (o *Orbit) Wheel(cam *State, deltaY float32) bool {
	o.dolly(cam, deltaY)
	return true
}

// PanZoomRotate rotates with the primary button, pans with the others and
// zooms with the wheel. Its speeds are fixed at construction.
type PanZoomRotate struct {
	orbitCore
	PanSpeed float32
}

// NewPanZoomRotate creates the pan/zoom/rotate controller. Zoom is only kept
// positive.
func NewPanZoomRotate(zoomSpeed, rotateSpeed, panSpeed float32) *PanZoomRotate {
	return &PanZoomRotate{
		orbitCore: orbitCore{
			RotateSpeed: rotateSpeed,
			ZoomSpeed:   zoomSpeed,
			MinZoom:     1e-3,
			MaxZoom:     math32.MaxFloat32,
		},
		PanSpeed: panSpeed,
	}
}

// Drag rotates on the primary button and pans otherwise.
func (p *PanZoomRotate) Drag(cam *State, button Button, delta, viewport math.Vec2) {
	if button == ButtonPrimary {
		p.rotate(cam, delta, viewport)
		return
	}
	pan(cam, delta, p.PanSpeed)
}

// Wheel zooms.
func (p *PanZoomRotate) Wheel(cam *State, deltaY float32) bool {
	p.dolly(cam, deltaY)
	return true
}

// pan slides target and camera together so the scene follows the pointer.
// One pixel is 1/Zoom world units at speed 1.
func pan(cam *State, delta math.Vec2, speed float32) {
	if cam.Zoom <= 0 {
		return
	}
	right, up := cam.Basis()
	k := speed / cam.Zoom
	offset := right.Scale(-delta.X * k).Add(up.Scale(delta.Y * k))
	cam.Position = cam.Position.Add(offset)
	cam.Target = cam.Target.Add(offset)
}
