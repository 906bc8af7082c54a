package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/dentview/pkg/math"
)

var viewport = math.Vec2{X: 800, Y: 600}

func approx(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func TestNewState(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	if cam.Target != (math.Vec3{}) {
		t.Errorf("expected target at origin, got %v", cam.Target)
	}
	if cam.Up != math.UnitY {
		t.Errorf("expected +Y up, got %v", cam.Up)
	}
	right, up := cam.Basis()
	if !right.ApproxEqual(math.UnitX, 1e-5) || !up.ApproxEqual(math.UnitY, 1e-5) {
		t.Errorf("unexpected basis right=%v up=%v", right, up)
	}
}

func TestProjectionScalesWithZoom(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 10)
	// 400 px to the right of center is 40 world units at zoom 10.
	p := cam.ViewProjection(viewport.X, viewport.Y).TransformPoint(math.Vec3{X: 40})
	if !approx(p.X, 1, 1e-4) {
		t.Errorf("expected x=40 at the right edge, got ndc %v", p.X)
	}
}

func TestZoomClampScrollAway(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	cam = NewZoomClamp().OnWheel(10, cam)
	if !approx(cam.Zoom, 13.5, 1e-5) {
		t.Errorf("expected zoom 13.5, got %v", cam.Zoom)
	}
}

func TestZoomClampScrollTowards(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 10)
	cam = NewZoomClamp().OnWheel(-3, cam)
	if !approx(cam.Zoom, 11, 1e-5) {
		t.Errorf("expected zoom 11, got %v", cam.Zoom)
	}
}

func TestZoomClampBounds(t *testing.T) {
	z := NewZoomClamp()
	tests := []struct {
		name   string
		deltaY float32
		want   float32
	}{
		{"away", 1e6, 0.5},
		{"towards", -1e6, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewState(math.Vec3{Z: 100}, 15)
			for i := 0; i < 500; i++ {
				cam = z.OnWheel(tt.deltaY, cam)
				if cam.Zoom < 0.5 || cam.Zoom > 100 {
					t.Fatalf("tick %d: zoom %v left [0.5, 100]", i, cam.Zoom)
				}
			}
			if cam.Zoom != tt.want {
				t.Errorf("expected zoom to settle at %v, got %v", tt.want, cam.Zoom)
			}
		})
	}
}

func TestOrbitRotateKeepsRadius(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	o := NewOrbit(1, 1, 5, 50)

	o.Drag(&cam, ButtonPrimary, math.Vec2{X: 150, Y: 40}, viewport)

	if r := cam.Eye().Length(); !approx(r, 100, 1e-3) {
		t.Errorf("expected radius 100, got %v", r)
	}
	if cam.Target != (math.Vec3{}) {
		t.Errorf("orbit must keep the origin as target, got %v", cam.Target)
	}
	if cam.Position.ApproxEqual(math.Vec3{Z: 100}, 1e-3) {
		t.Error("expected the camera to move")
	}
}

func TestOrbitQuarterTurn(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	o := NewOrbit(1, 1, 5, 50)

	// A quarter of the viewport height is a quarter turn.
	o.Drag(&cam, ButtonPrimary, math.Vec2{X: -viewport.Y / 4}, viewport)

	if !cam.Position.ApproxEqual(math.Vec3{X: 100}, 1e-2) {
		t.Errorf("expected camera at (100,0,0), got %v", cam.Position)
	}
}

func TestOrbitPolarClamp(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	o := NewOrbit(1, 1, 5, 50)

	o.Drag(&cam, ButtonPrimary, math.Vec2{Y: 10 * viewport.Y}, viewport)

	if cam.Position.Y > 100 || !approx(cam.Position.Y, 100, 1e-3) {
		t.Errorf("expected camera at the pole, got %v", cam.Position)
	}
	if math32.IsNaN(cam.Position.X) || math32.IsNaN(cam.Position.Z) {
		t.Errorf("camera position became NaN: %v", cam.Position)
	}
}

func TestOrbitZoomBounds(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	o := NewOrbit(1, 1, 5, 50)

	for i := 0; i < 200; i++ {
		if !o.Wheel(&cam, -1) {
			t.Fatal("orbit should consume wheel input")
		}
	}
	if cam.Zoom != 50 {
		t.Errorf("expected zoom clamped to 50, got %v", cam.Zoom)
	}
	for i := 0; i < 200; i++ {
		o.Wheel(&cam, 1)
	}
	if cam.Zoom != 5 {
		t.Errorf("expected zoom clamped to 5, got %v", cam.Zoom)
	}
}

func TestOrbitIgnoresPanButtons(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	NewOrbit(1, 1, 5, 50).Drag(&cam, ButtonSecondary, math.Vec2{X: 30}, viewport)
	if cam.Target != (math.Vec3{}) {
		t.Errorf("orbit must not pan, target moved to %v", cam.Target)
	}
}

func TestPanZoomRotatePans(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 10)
	p := NewPanZoomRotate(1, 1, 1)

	p.Drag(&cam, ButtonSecondary, math.Vec2{X: 50, Y: 20}, viewport)

	want := math.Vec3{X: -5, Y: 2}
	if !cam.Target.ApproxEqual(want, 1e-4) {
		t.Errorf("expected target %v, got %v", want, cam.Target)
	}
	if !cam.Position.ApproxEqual(want.Add(math.Vec3{Z: 100}), 1e-4) {
		t.Errorf("camera should move with the target, got %v", cam.Position)
	}
}

func TestPanZoomRotateWheelUnbounded(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	p := NewPanZoomRotate(1, 1, 1)
	for i := 0; i < 200; i++ {
		p.Wheel(&cam, -1)
	}
	if cam.Zoom <= 100 {
		t.Errorf("expected zoom beyond orbit bounds, got %v", cam.Zoom)
	}
}

func TestTrackballRotatesEye(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	tb := NewTrackball(1, 1)

	tb.Drag(&cam, ButtonPrimary, math.Vec2{X: 100}, viewport)

	if r := cam.Eye().Length(); !approx(r, 100, 1e-3) {
		t.Errorf("expected radius 100, got %v", r)
	}
	if cam.Position.X >= 0 {
		t.Errorf("dragging right should swing the camera to -X, got %v", cam.Position)
	}
	if cam.Zoom != 15 {
		t.Errorf("trackball must not change zoom, got %v", cam.Zoom)
	}
}

func TestTrackballStaticMotion(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	tb := NewTrackball(1, 1)

	tb.Drag(&cam, ButtonPrimary, math.Vec2{X: 40, Y: 10}, viewport)
	after := cam
	tb.Drag(&cam, ButtonPrimary, math.Vec2{}, viewport)

	if cam != after {
		t.Errorf("a zero delta must not move the camera: %v -> %v", after, cam)
	}
}

func TestTrackballZoomDisabled(t *testing.T) {
	cam := NewState(math.Vec3{Z: 100}, 15)
	if NewTrackball(1, 1).Wheel(&cam, 5) {
		t.Error("trackball should not consume wheel input")
	}
	if cam.Zoom != 15 {
		t.Errorf("expected zoom unchanged, got %v", cam.Zoom)
	}
}
