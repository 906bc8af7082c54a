package interaction

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/dentview/internal/engine/camera"
	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-5
}

func testRegistry() *scene.Registry {
	r := scene.NewRegistry()
	r.Add("Upper", "Upper.obj")
	r.Add("Lower", "Lower.obj")
	r.Add("Crown21", "Crown21.obj")
	return r
}

func yaw(t *testing.T, r *scene.Registry, id scene.ModelID) float32 {
	t.Helper()
	e, err := r.Get(id)
	if err != nil {
		t.Fatalf("Get(%d): %v", id, err)
	}
	return e.Yaw
}

// stripPicker hits model 1 for x in [0, 200) and nothing else.
var stripPicker = PickerFunc(func(x, y float32) (scene.ModelID, bool) {
	if x >= 0 && x < 200 {
		return 1, true
	}
	return 0, false
})

func testSettings() Settings {
	return Settings{ZoomSpeed: 1, RotateSpeed: 1, PanSpeed: 1, MinZoom: 5, MaxZoom: 50}
}

func newTestDispatcher(t *testing.T, mode Mode) (*Dispatcher, *camera.State, *scene.Registry) {
	t.Helper()
	cam := camera.NewState(math.Vec3{Z: 100}, 15)
	reg := testRegistry()
	d := NewDispatcher(&cam, reg, stripPicker, testSettings())
	d.Resize(800, 600)
	if err := d.Mount(mode); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return d, &cam, reg
}

func TestDragRotateSequence(t *testing.T) {
	reg := testRegistry()
	d := NewDragRotate(reg)

	d.Down(1, 100)
	if err := d.Move(1, 130); err != nil {
		t.Fatalf("Move: %v", err)
	}
	d.Up(1)

	if got := yaw(t, reg, 1); !approx(got, 0.3) {
		t.Errorf("expected yaw 0.3, got %v", got)
	}
	for _, id := range []scene.ModelID{0, 2} {
		if got := yaw(t, reg, id); got != 0 {
			t.Errorf("model %d must not rotate, got %v", id, got)
		}
	}
	if d.State(1).Dragging {
		t.Error("expected idle after up")
	}
}

func TestDragRotateIgnoresMoveWhenIdle(t *testing.T) {
	reg := testRegistry()
	d := NewDragRotate(reg)

	if err := d.Move(0, 500); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got := yaw(t, reg, 0); got != 0 {
		t.Errorf("expected no rotation without a drag, got %v", got)
	}
}

func TestDragRotateIncremental(t *testing.T) {
	reg := testRegistry()
	d := NewDragRotate(reg)

	d.Down(0, 0)
	for _, x := range []float32{10, 20, 5} {
		_ = d.Move(0, x)
	}
	if got := yaw(t, reg, 0); !approx(got, 0.05) {
		t.Errorf("expected yaw 0.05, got %v", got)
	}
	if s := d.State(0); s.PreviousX != 5 {
		t.Errorf("expected previous x 5, got %v", s.PreviousX)
	}
}

func TestDispatcherDragRotate(t *testing.T) {
	d, cam, reg := newTestDispatcher(t, ModeDragRotate)
	before := *cam

	d.PointerDown(PointerEvent{X: 100, Y: 50})
	d.PointerMove(PointerEvent{X: 130, Y: 50})
	d.PointerUp(PointerEvent{X: 130, Y: 50})

	if got := yaw(t, reg, 1); !approx(got, 0.3) {
		t.Errorf("expected yaw 0.3, got %v", got)
	}
	if *cam != before {
		t.Error("drag-rotate must not move the camera")
	}
}

func TestDispatcherDragEndsOffModel(t *testing.T) {
	d, _, reg := newTestDispatcher(t, ModeDragRotate)

	d.PointerDown(PointerEvent{X: 150})
	d.PointerMove(PointerEvent{X: 250}) // leaves the hit region
	d.PointerMove(PointerEvent{X: 190}) // back over the model, but idle now

	if got := yaw(t, reg, 1); got != 0 {
		t.Errorf("expected no rotation after leaving the model, got %v", got)
	}
	if d.DragRotate().State(1).Dragging {
		t.Error("expected drag to end when the pointer left the model")
	}
}

func TestDispatcherDownOffModel(t *testing.T) {
	d, _, reg := newTestDispatcher(t, ModeDragRotate)

	d.PointerDown(PointerEvent{X: 500})
	d.PointerMove(PointerEvent{X: 100})

	for _, id := range reg.IDs() {
		if got := yaw(t, reg, id); got != 0 {
			t.Errorf("model %d rotated without being pressed: %v", id, got)
		}
	}
}

func TestDispatcherFirstTouchOnly(t *testing.T) {
	d, _, reg := newTestDispatcher(t, ModeDragRotate)

	d.PointerDown(PointerEvent{X: 100, Touch: true, TouchID: 1})
	d.PointerDown(PointerEvent{X: 10, Touch: true, TouchID: 2})
	d.PointerMove(PointerEvent{X: 50, Touch: true, TouchID: 2})
	d.PointerUp(PointerEvent{X: 50, Touch: true, TouchID: 2})
	d.PointerMove(PointerEvent{X: 110, Touch: true, TouchID: 1})

	if got := yaw(t, reg, 1); !approx(got, 0.1) {
		t.Errorf("expected only the first finger to rotate (0.1), got %v", got)
	}

	d.PointerUp(PointerEvent{Touch: true, TouchID: 1})
	if d.DragRotate().State(1).Dragging {
		t.Error("expected idle after touch end")
	}
}

func TestDispatcherMouseDragIgnoresTouch(t *testing.T) {
	d, _, reg := newTestDispatcher(t, ModeDragRotate)

	d.PointerDown(PointerEvent{X: 100})
	d.PointerMove(PointerEvent{X: 180, Touch: true, TouchID: 3})
	d.PointerUp(PointerEvent{X: 180, Touch: true, TouchID: 3})
	if got := yaw(t, reg, 1); got != 0 {
		t.Errorf("expected finger events ignored during a mouse drag, got yaw %v", got)
	}

	d.PointerMove(PointerEvent{X: 120})
	if got := yaw(t, reg, 1); !approx(got, 0.2) {
		t.Errorf("expected mouse to keep rotating (0.2), got %v", got)
	}

	id, ok := d.DragRotate().Dragging()
	if !ok || id != 1 {
		t.Errorf("expected model 1 dragging, got %d %v", id, ok)
	}
	d.PointerUp(PointerEvent{X: 120})
	if _, ok := d.DragRotate().Dragging(); ok {
		t.Error("expected no drag after mouse up")
	}
}

func TestDispatcherTouchDragIgnoresMouse(t *testing.T) {
	d, cam, _ := newTestDispatcher(t, ModePan)
	start := cam.Position

	d.PointerDown(PointerEvent{X: 100, Y: 100, Touch: true, TouchID: 1})
	d.PointerMove(PointerEvent{X: 300, Y: 100})
	if cam.Position != start {
		t.Errorf("expected mouse move ignored during a touch drag, camera at %+v", cam.Position)
	}
	d.PointerMove(PointerEvent{X: 150, Y: 100, Touch: true, TouchID: 1})
	if cam.Position == start {
		t.Error("expected the tracked finger to orbit the camera")
	}
}

func TestTrackballWheelHandlerLifecycle(t *testing.T) {
	d, cam, _ := newTestDispatcher(t, ModeTrackball)

	if d.Handlers() != 1 {
		t.Fatalf("expected zoom clamp installed once, got %d handlers", d.Handlers())
	}
	if d.Install(ZoomClampHandlerName, ZoomClampHandler(camera.NewZoomClamp())) {
		t.Error("second install must be a no-op")
	}
	if d.Handlers() != 1 {
		t.Errorf("expected 1 handler, got %d", d.Handlers())
	}

	if !d.Wheel(1) {
		t.Error("zoom clamp must consume the wheel event")
	}
	if !approx(cam.Zoom, 13.5) {
		t.Errorf("expected zoom 13.5, got %v", cam.Zoom)
	}

	d.Unmount()
	if d.Handlers() != 0 {
		t.Errorf("expected handler removed on unmount, got %d", d.Handlers())
	}
	if d.Wheel(1) {
		t.Error("unmounted view must not consume wheel events")
	}
	d.Unmount()

	if err := d.Mount(ModeTrackball); err != nil {
		t.Fatalf("remount: %v", err)
	}
	if d.Handlers() != 1 {
		t.Errorf("expected 1 handler after remount, got %d", d.Handlers())
	}
}

func TestMountTwice(t *testing.T) {
	d, _, _ := newTestDispatcher(t, ModeTrackball)
	if err := d.Mount(ModeTrackball); err != ErrMounted {
		t.Errorf("expected ErrMounted, got %v", err)
	}
	if d.Handlers() != 1 {
		t.Errorf("expected 1 handler, got %d", d.Handlers())
	}
}

func TestTrackballZoomBounds(t *testing.T) {
	d, cam, _ := newTestDispatcher(t, ModeTrackball)

	for i := 0; i < 100; i++ {
		d.Wheel(-1)
	}
	if cam.Zoom != 100 {
		t.Errorf("expected zoom clamped to 100, got %v", cam.Zoom)
	}
	for i := 0; i < 200; i++ {
		d.Wheel(1)
	}
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %v", cam.Zoom)
	}
}

func TestOrbitWheelBounded(t *testing.T) {
	d, cam, _ := newTestDispatcher(t, ModeOrbit)
	if d.Handlers() != 0 {
		t.Errorf("orbit installs no wheel handlers, got %d", d.Handlers())
	}
	for i := 0; i < 100; i++ {
		d.Wheel(-1)
	}
	if cam.Zoom != 50 {
		t.Errorf("expected zoom clamped to 50, got %v", cam.Zoom)
	}
}

func TestCameraModesLeaveModels(t *testing.T) {
	for _, mode := range []Mode{ModePan, ModeOrbit, ModeTrackball} {
		t.Run(string(mode), func(t *testing.T) {
			d, cam, reg := newTestDispatcher(t, mode)
			before := *cam

			d.PointerDown(PointerEvent{X: 100, Y: 100})
			d.PointerMove(PointerEvent{X: 160, Y: 130})
			d.PointerUp(PointerEvent{X: 160, Y: 130})

			if *cam == before {
				t.Error("expected the camera to move")
			}
			for _, id := range reg.IDs() {
				if got := yaw(t, reg, id); got != 0 {
					t.Errorf("model %d rotated in %s mode", id, mode)
				}
			}
		})
	}
}

func TestUnmountedIgnoresInput(t *testing.T) {
	cam := camera.NewState(math.Vec3{Z: 100}, 15)
	reg := testRegistry()
	d := NewDispatcher(&cam, reg, stripPicker, testSettings())

	d.PointerDown(PointerEvent{X: 100})
	d.PointerMove(PointerEvent{X: 150})
	if got := yaw(t, reg, 1); got != 0 {
		t.Errorf("expected no rotation before mount, got %v", got)
	}
}

func TestParseModeAndNext(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("fly"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if ModeTrackball.Next() != ModeDragRotate {
		t.Error("expected cycling to wrap around")
	}
}
