package interaction

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/dentview/internal/engine/camera"
	"github.com/Faultbox/dentview/internal/logger"
	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

// Mode selects the interaction policy of a view. Exactly one is active.
type Mode string

const (
	ModeDragRotate Mode = "drag-rotate"
	ModePan        Mode = "pan"
	ModeOrbit      Mode = "orbit"
	ModeTrackball  Mode = "trackball"
)

// Modes lists every policy in cycling order.
var Modes = []Mode{ModeDragRotate, ModePan, ModeOrbit, ModeTrackball}

// ParseMode validates a policy name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown interaction mode %q", s)
}

// Next returns the policy after m in cycling order.
func (m Mode) Next() Mode {
	for i, mm := range Modes {
		if mm == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// ZoomClampHandlerName is the key the trackball policy installs its wheel
// handler under.
const ZoomClampHandlerName = "zoom-clamp"

// ErrMounted is returned by Mount when a policy is already mounted.
var ErrMounted = errors.New("interaction policy already mounted")

// Settings are the camera controller parameters.
type Settings struct {
	ZoomSpeed   float32
	RotateSpeed float32
	PanSpeed    float32
	MinZoom     float32
	MaxZoom     float32
}

type namedHandler struct {
	name string
	fn   WheelHandler
}

// Dispatcher owns the active policy and routes input to it. Models are only
// touched by the drag-rotate policy; camera policies only touch the camera.
type Dispatcher struct {
	cam      *camera.State
	picker   Picker
	settings Settings
	log      *zap.Logger

	mode       Mode
	mounted    bool
	controller camera.Controller
	drag       *DragRotate
	handlers   []namedHandler

	viewport math.Vec2

	// pointer tracking
	pressed bool
	button  camera.Button
	last    math.Vec2
	touch   bool
	touchID int64
	target  scene.ModelID
}

// NewDispatcher creates an unmounted dispatcher driving cam and the models
// of reg.
func NewDispatcher(cam *camera.State, reg *scene.Registry, picker Picker, s Settings) *Dispatcher {
	return &Dispatcher{
		cam:      cam,
		picker:   picker,
		settings: s,
		log:      logger.Named("interaction"),
		drag:     NewDragRotate(reg),
	}
}

// Mount activates mode. The trackball policy has its own zoom disabled and
// installs the zoom clamp wheel handler instead.
func (d *Dispatcher) Mount(mode Mode) error {
	if d.mounted {
		return ErrMounted
	}
	s := d.settings
	switch mode {
	case ModeDragRotate:
		d.controller = nil
	case ModePan:
		d.controller = camera.NewPanZoomRotate(s.ZoomSpeed, s.RotateSpeed, s.PanSpeed)
	case ModeOrbit:
		d.controller = camera.NewOrbit(s.ZoomSpeed, s.RotateSpeed, s.MinZoom, s.MaxZoom)
	case ModeTrackball:
		d.controller = camera.NewTrackball(s.RotateSpeed, s.PanSpeed)
		d.Install(ZoomClampHandlerName, ZoomClampHandler(camera.NewZoomClamp()))
	default:
		return fmt.Errorf("mount: unknown mode %q", mode)
	}
	d.mode = mode
	d.mounted = true
	d.log.Info("interaction mounted", zap.String("mode", string(mode)))
	return nil
}

// Unmount deactivates the current policy and removes the wheel handlers it
// installed. Unmounting twice is harmless.
func (d *Dispatcher) Unmount() {
	if !d.mounted {
		return
	}
	if d.mode == ModeTrackball {
		d.Remove(ZoomClampHandlerName)
	}
	d.endPointer()
	d.drag.Reset()
	d.controller = nil
	d.mounted = false
	d.log.Info("interaction unmounted", zap.String("mode", string(d.mode)))
}

// Mode returns the mounted policy.
func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// Mounted reports whether a policy is active.
func (d *Dispatcher) Mounted() bool {
	return d.mounted
}

// Install adds a wheel handler under name. Installing a name that is
// already present does nothing and returns false.
func (d *Dispatcher) Install(name string, h WheelHandler) bool {
	for _, nh := range d.handlers {
		if nh.name == name {
			return false
		}
	}
	d.handlers = append(d.handlers, namedHandler{name: name, fn: h})
	return true
}

// Remove drops the wheel handler registered under name.
func (d *Dispatcher) Remove(name string) bool {
	for i, nh := range d.handlers {
		if nh.name == name {
			d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Handlers returns the number of installed wheel handlers.
func (d *Dispatcher) Handlers() int {
	return len(d.handlers)
}

// DragRotate exposes the per-model drag controller.
func (d *Dispatcher) DragRotate() *DragRotate {
	return d.drag
}

// Resize records the viewport size used to scale camera drags.
func (d *Dispatcher) Resize(width, height float32) {
	d.viewport = math.Vec2{X: width, Y: height}
}

// Wheel delivers one wheel tick and reports whether anything consumed it.
// Installed handlers run first, then the camera controller.
func (d *Dispatcher) Wheel(deltaY float32) bool {
	if !d.mounted {
		return false
	}
	for _, nh := range d.handlers {
		if nh.fn(deltaY, d.cam) {
			return true
		}
	}
	if d.controller != nil {
		return d.controller.Wheel(d.cam, deltaY)
	}
	return false
}

// accept applies the first-touch rule: once pressed, only events from the
// same source are taken. A mouse drag ignores fingers and a touch drag
// ignores the mouse and every finger but the first.
func (d *Dispatcher) accept(ev PointerEvent) bool {
	if !d.pressed {
		return true
	}
	if ev.Touch != d.touch {
		return false
	}
	return !ev.Touch || ev.TouchID == d.touchID
}

// PointerDown starts a drag.
func (d *Dispatcher) PointerDown(ev PointerEvent) {
	if !d.mounted || d.pressed {
		return
	}
	pos := math.Vec2{X: ev.X, Y: ev.Y}

	if d.mode == ModeDragRotate {
		id, ok := d.picker.HitTest(ev.X, ev.Y)
		if !ok {
			return
		}
		d.target = id
		d.drag.Down(id, ev.X)
	}

	d.pressed = true
	d.button = ev.Button
	d.last = pos
	d.touch = ev.Touch
	d.touchID = ev.TouchID
}

// PointerMove continues a drag. In drag-rotate mode the drag ends as soon as
// the pointer is no longer over the dragged model.
func (d *Dispatcher) PointerMove(ev PointerEvent) {
	if !d.mounted || !d.pressed || !d.accept(ev) {
		return
	}
	pos := math.Vec2{X: ev.X, Y: ev.Y}
	delta := pos.Sub(d.last)
	d.last = pos

	if d.mode == ModeDragRotate {
		if id, ok := d.picker.HitTest(ev.X, ev.Y); !ok || id != d.target {
			d.endPointer()
			return
		}
		if err := d.drag.Move(d.target, ev.X); err != nil {
			d.log.Warn("drag rotate", zap.Error(err))
			d.endPointer()
		}
		return
	}

	if d.controller != nil && !delta.IsZero() {
		d.controller.Drag(d.cam, d.button, delta, d.viewport)
	}
}

// PointerUp ends a drag.
func (d *Dispatcher) PointerUp(ev PointerEvent) {
	if !d.pressed || !d.accept(ev) {
		return
	}
	d.endPointer()
}

// PointerLeave ends a drag when the pointer leaves the view.
func (d *Dispatcher) PointerLeave() {
	d.endPointer()
}

func (d *Dispatcher) endPointer() {
	if d.pressed && d.mode == ModeDragRotate {
		d.drag.Up(d.target)
	}
	d.pressed = false
	d.touch = false
}
