// Package interaction routes pointer and wheel input to the active
// interaction policy: per-model drag rotation or one camera controller.
package interaction

import (
	"github.com/Faultbox/dentview/internal/engine/camera"
	"github.com/Faultbox/dentview/internal/scene"
)

// PointerEvent is a mouse or touch event in window pixels.
type PointerEvent struct {
	X, Y   float32
	Button camera.Button
	Touch  bool
	// TouchID identifies the finger for touch events.
	TouchID int64
}

// Picker reports which rendered model lies under a window pixel.
type Picker interface {
	HitTest(x, y float32) (scene.ModelID, bool)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(x, y float32) (scene.ModelID, bool)

// HitTest calls f(x, y).
func (f PickerFunc) HitTest(x, y float32) (scene.ModelID, bool) {
	return f(x, y)
}

// WheelHandler reacts to one wheel tick and reports whether it consumed the
// event. A consumed event reaches no other handler or controller.
type WheelHandler func(deltaY float32, cam *camera.State) bool

// ZoomClampHandler wraps a ZoomClamp as a consuming wheel handler.
func ZoomClampHandler(z camera.ZoomClamp) WheelHandler {
	return func(deltaY float32, cam *camera.State) bool {
		*cam = z.OnWheel(deltaY, *cam)
		return true
	}
}
