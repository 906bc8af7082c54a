package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/dentview/internal/engine/camera"
	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

// boxGeometry returns a closed box of 12 triangles.
func boxGeometry(min, max math.Vec3) *scene.Geometry {
	corners := make([]math.Vec3, 8)
	for i := range corners {
		c := min
		if i&1 != 0 {
			c.X = max.X
		}
		if i&2 != 0 {
			c.Y = max.Y
		}
		if i&4 != 0 {
			c.Z = max.Z
		}
		corners[i] = c
	}
	return &scene.Geometry{
		Positions: corners,
		Indices: []uint32{
			0, 1, 3, 0, 3, 2, // -z
			4, 5, 7, 4, 7, 6, // +z
			0, 1, 5, 0, 5, 4, // -y
			2, 3, 7, 2, 7, 6, // +y
			0, 2, 6, 0, 6, 4, // -x
			1, 3, 7, 1, 7, 5, // +x
		},
		Bounds: scene.Bounds{Min: min, Max: max},
	}
}

// quad returns a rectangle in the plane z facing the camera.
func quad(minX, minY, maxX, maxY, z float32) *scene.Geometry {
	return &scene.Geometry{
		Positions: []math.Vec3{
			{X: minX, Y: minY, Z: z}, {X: maxX, Y: minY, Z: z},
			{X: maxX, Y: maxY, Z: z}, {X: minX, Y: maxY, Z: z},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Bounds:  scene.Bounds{Min: math.Vec3{X: minX, Y: minY, Z: z}, Max: math.Vec3{X: maxX, Y: maxY, Z: z}},
	}
}

func model(id scene.ModelID, transform math.Mat4, geos ...*scene.Geometry) scene.DrawModel {
	m := scene.DrawModel{ID: id, Transform: transform}
	for _, g := range geos {
		m.Meshes = append(m.Meshes, &scene.Mesh{Geometry: g})
	}
	return m
}

func boxModel(id scene.ModelID, min, max math.Vec3) scene.DrawModel {
	return model(id, math.Identity(), boxGeometry(min, max))
}

func testFrame() scene.Frame {
	return scene.Frame{
		Camera: camera.NewState(math.Vec3{Z: 100}, 15),
		Models: []scene.DrawModel{
			boxModel(0, math.Vec3{X: -1, Y: -1, Z: -3}, math.Vec3{X: 1, Y: 1, Z: -1}),
			boxModel(1, math.Vec3{X: -1, Y: -1, Z: 0}, math.Vec3{X: 1, Y: 1, Z: 2}),
		},
	}
}

func TestScreenToRayCenter(t *testing.T) {
	cam := camera.NewState(math.Vec3{Z: 100}, 15)
	inv := cam.ViewProjection(800, 600).Inverse()
	r := ScreenToRay(400, 300, 800, 600, inv)

	if !r.Direction.ApproxEqual(math.Vec3{Z: -1}, 1e-4) {
		t.Errorf("expected direction -Z, got %+v", r.Direction)
	}
	if !r.Origin.ApproxEqual(math.Vec3{Z: 99.9}, 1e-2) {
		t.Errorf("expected origin on the near plane, got %+v", r.Origin)
	}
}

func TestIntersectBounds(t *testing.T) {
	box := scene.Bounds{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}, true, 9},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{Z: -1}}, true, 1},
		{"behind", Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"miss", Ray{Origin: math.Vec3{X: 5, Z: 10}, Direction: math.Vec3{Z: -1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBounds(box)
			if hit != tt.hit {
				t.Fatalf("expected hit=%v, got %v", tt.hit, hit)
			}
			if hit && got != tt.wantT {
				t.Errorf("expected t=%v, got %v", tt.wantT, got)
			}
		})
	}

	if _, hit := (Ray{Direction: math.Vec3{Z: -1}}).IntersectBounds(scene.EmptyBounds()); hit {
		t.Error("empty bounds must never be hit")
	}
}

func TestPickNearest(t *testing.T) {
	hit, ok := PickScreen(400, 300, 800, 600, testFrame())
	if !ok {
		t.Fatal("expected a hit at the viewport center")
	}
	if hit.ID != 1 {
		t.Errorf("expected nearest model 1, got %d", hit.ID)
	}
	if hit.Point.Z < 1.9 || hit.Point.Z > 2.1 {
		t.Errorf("expected hit on the front face z=2, got %+v", hit.Point)
	}
}

func TestPickMiss(t *testing.T) {
	// 15 px per world unit: 75 px right of center is x=5
	if _, ok := PickScreen(475, 300, 800, 600, testFrame()); ok {
		t.Error("expected no hit outside both boxes")
	}
}

func TestPickSkipsOmittedModels(t *testing.T) {
	f := testFrame()
	f.Models = f.Models[:1]
	hit, ok := PickScreen(400, 300, 800, 600, f)
	if !ok || hit.ID != 0 {
		t.Errorf("expected model 0 once model 1 is omitted, got %+v %v", hit, ok)
	}
}

func TestIntersectTriangle(t *testing.T) {
	a, b, c := math.Vec3{X: -1, Y: -1}, math.Vec3{X: 1, Y: -1}, math.Vec3{Y: 1}
	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 5},
		{"back side", Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: 1}}, true, 5},
		{"behind origin", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"outside edge", Ray{Origin: math.Vec3{X: 0.9, Y: 0.9, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"parallel", Ray{Origin: math.Vec3{Z: 0}, Direction: math.Vec3{X: 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectTriangle(a, b, c)
			if hit != tt.hit {
				t.Fatalf("expected hit=%v, got %v", tt.hit, hit)
			}
			if hit && got != tt.wantT {
				t.Errorf("expected t=%v, got %v", tt.wantT, got)
			}
		})
	}
}

func TestPickSurfaceInsideAnotherBox(t *testing.T) {
	// two wings at x=±10 span a box that contains the small model at x=0
	arch := model(0, math.Identity(),
		quad(-11, -2, -9, 2, 0),
		quad(9, -2, 11, 2, 0),
	)
	crown := model(1, math.Identity(), quad(-0.5, -0.5, 0.5, 0.5, -0.5))
	f := scene.Frame{
		Camera: camera.NewState(math.Vec3{Z: 100}, 15),
		Models: []scene.DrawModel{arch, crown},
	}

	hit, ok := PickScreen(400, 300, 800, 600, f)
	if !ok || hit.ID != 1 {
		t.Errorf("expected the inner model, got %+v %v", hit, ok)
	}

	// x=5 lies inside the wings' box but on no surface
	if hit, ok := PickScreen(475, 300, 800, 600, f); ok {
		t.Errorf("expected no hit between the wings, got %+v", hit)
	}

	// x=10 is on the right wing
	hit, ok = PickScreen(550, 300, 800, 600, f)
	if !ok || hit.ID != 0 {
		t.Errorf("expected the wing, got %+v %v", hit, ok)
	}
}

func TestPickFollowsModelTransform(t *testing.T) {
	// a quad at x=3 turned half a revolution about Y lands at x=-3
	m := model(0, math.RotateY(math32.Pi), quad(2, -1, 4, 1, 0))
	f := scene.Frame{
		Camera: camera.NewState(math.Vec3{Z: 100}, 15),
		Models: []scene.DrawModel{m},
	}

	if _, ok := PickScreen(355, 300, 800, 600, f); !ok {
		t.Error("expected a hit at x=-3")
	}
	if _, ok := PickScreen(445, 300, 800, 600, f); ok {
		t.Error("expected no hit at x=3")
	}
}
