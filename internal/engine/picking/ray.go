// Package picking provides ray casting and model picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBounds tests ray intersection with an axis-aligned box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBounds(box scene.Bounds) (t float32, hit bool) {
	if box.IsEmpty() {
		return 0, false
	}
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin, dir := r.Origin.Array(), r.Direction.Array()
	lo, hi := box.Min.Array(), box.Max.Array()
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle tests the ray against triangle (a, b, c) from either
// side (Möller-Trumbore). The returned t is in units of Direction.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det == 0 {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectModel returns the distance to the nearest triangle of m the ray
// crosses. The world box rejects misses early; surviving meshes are tested
// triangle by triangle in model space.
func (r Ray) IntersectModel(m scene.DrawModel) (t float32, hit bool) {
	if _, ok := r.IntersectBounds(m.Bounds()); !ok {
		return 0, false
	}

	// the direction is not renormalized, so local t equals world t
	inv := m.Transform.Inverse()
	local := Ray{Origin: inv.TransformPoint(r.Origin)}
	local.Direction = inv.TransformPoint(r.Origin.Add(r.Direction)).Sub(local.Origin)

	best := float32(math32.MaxFloat32)
	for _, mesh := range m.Meshes {
		if !mesh.Drawable() {
			continue
		}
		geo := mesh.Geometry
		if _, ok := local.IntersectBounds(geo.Bounds); !ok {
			continue
		}
		idx := geo.Indices
		for i := 0; i+2 < len(idx); i += 3 {
			d, ok := local.IntersectTriangle(geo.Positions[idx[i]], geo.Positions[idx[i+1]], geo.Positions[idx[i+2]])
			if ok && d < best {
				best = d
				hit = true
			}
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

// Hit is the result of a successful pick.
type Hit struct {
	ID       scene.ModelID
	Distance float32
	Point    math.Vec3
}

// Pick returns the nearest model in the frame whose surface the ray
// crosses. Only models present in the frame can be hit, so hidden models
// never receive pointer events.
func Pick(r Ray, frame scene.Frame) (Hit, bool) {
	best := Hit{Distance: math32.MaxFloat32}
	found := false
	for _, m := range frame.Models {
		t, ok := r.IntersectModel(m)
		if ok && t < best.Distance {
			best = Hit{ID: m.ID, Distance: t, Point: r.At(t)}
			found = true
		}
	}
	return best, found
}

// PickScreen casts a ray through pixel (x, y) of a width×height viewport
// using the frame's camera and returns the nearest hit.
func PickScreen(x, y, width, height float32, frame scene.Frame) (Hit, bool) {
	inv := frame.Camera.ViewProjection(width, height).Inverse()
	return Pick(ScreenToRay(x, y, width, height, inv), frame)
}
