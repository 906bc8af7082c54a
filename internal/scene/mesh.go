// Package scene holds the viewer's model arena, material binding and the
// per-frame scene description handed to the renderer.
package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/dentview/pkg/math"
)

// Bounds is an axis-aligned box. The zero value is not empty; use EmptyBounds.
type Bounds struct {
	Min, Max math.Vec3
}

// EmptyBounds returns a box that any Extend call replaces.
func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether no point was ever added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Extend grows the box to include p.
func (b Bounds) Extend(p math.Vec3) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union grows the box to include other.
func (b Bounds) Union(other Bounds) Bounds {
	if other.IsEmpty() {
		return b
	}
	return b.Extend(other.Min).Extend(other.Max)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Transform returns the axis-aligned box enclosing all eight corners of b
// transformed by m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out = out.Extend(m.TransformPoint(c))
	}
	return out
}

// Geometry is immutable vertex data shared by every instance of a mesh.
type Geometry struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32
	Bounds    Bounds
}

// Mesh is one drawable sub-element of a group.
type Mesh struct {
	Name     string
	Geometry *Geometry
	Material *Material
}

// Drawable reports whether the mesh has triangles to draw.
func (m *Mesh) Drawable() bool {
	return m != nil && m.Geometry != nil && len(m.Geometry.Indices) >= 3
}

// Group is a loaded mesh file: a named set of meshes.
type Group struct {
	Name   string
	Meshes []*Mesh
}

// Instance returns a copy whose meshes share geometry with g but carry their
// own material pointers, so binding one instance never recolors another.
func (g *Group) Instance() *Group {
	if g == nil {
		return nil
	}
	out := &Group{Name: g.Name, Meshes: make([]*Mesh, len(g.Meshes))}
	for i, m := range g.Meshes {
		cp := *m
		out.Meshes[i] = &cp
	}
	return out
}

// Drawables returns the meshes that have triangles.
func (g *Group) Drawables() []*Mesh {
	if g == nil {
		return nil
	}
	var out []*Mesh
	for _, m := range g.Meshes {
		if m.Drawable() {
			out = append(out, m)
		}
	}
	return out
}

// Bounds returns the union of all mesh bounds in group space.
func (g *Group) Bounds() Bounds {
	b := EmptyBounds()
	for _, m := range g.Drawables() {
		b = b.Union(m.Geometry.Bounds)
	}
	return b
}
