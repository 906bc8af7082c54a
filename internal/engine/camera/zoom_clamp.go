package camera

import "github.com/Faultbox/dentview/pkg/math"

// ZoomClamp is a wheel handler that scales the camera zoom by a fixed factor
// per tick and keeps it within fixed bounds.
type ZoomClamp struct {
	OutFactor float32 // applied when scrolling away (deltaY > 0)
	InFactor  float32
	Min       float32
	Max       float32
}

// NewZoomClamp returns the stock clamp: x0.9 away, x1.1 towards, [0.5, 100].
func NewZoomClamp() ZoomClamp {
	return ZoomClamp{OutFactor: 0.9, InFactor: 1.1, Min: 0.5, Max: 100}
}

// OnWheel returns cam with its zoom updated for one tick.
func (z ZoomClamp) OnWheel(deltaY float32, cam State) State {
	f := z.InFactor
	if deltaY > 0 {
		f = z.OutFactor
	}
	cam.Zoom = math.Clamp(cam.Zoom*f, z.Min, z.Max)
	return cam
}
