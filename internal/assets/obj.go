package assets

import (
	"fmt"
	"io"
	"strings"

	"github.com/g3n/engine/loader/obj"

	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

// noIndex marks an absent normal reference in a face corner.
const noIndex = -1

// corner is one face vertex: a position index and an optional normal index.
type corner struct {
	v, vn int
}

// ParseOBJ decodes a Wavefront OBJ stream into a group named name. Each
// object or group in the file becomes one mesh; faces before the first o/g
// statement land in a mesh named "default". Only geometry is kept: texture
// coordinates, materials and smoothing groups are dropped.
func ParseOBJ(name string, r io.Reader) (*scene.Group, error) {
	// materials are not used, so the mtl side is always empty
	dec, err := obj.DecodeReader(r, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	positions := vec3s(dec.Vertices)
	normals := vec3s(dec.Normals)

	g := &scene.Group{Name: name}
	for _, ob := range dec.Objects {
		if len(ob.Faces) == 0 {
			continue
		}
		faces, err := corners(ob, len(positions), len(normals))
		if err != nil {
			return nil, fmt.Errorf("%s: object %q: %w", name, ob.Name, err)
		}
		meshName := ob.Name
		if meshName == "" {
			meshName = "default"
		}
		g.Meshes = append(g.Meshes, &scene.Mesh{
			Name:     meshName,
			Geometry: build(faces, positions, normals),
		})
	}
	return g, nil
}

// vec3s regroups a flat x, y, z array.
func vec3s(flat []float32) []math.Vec3 {
	out := make([]math.Vec3, len(flat)/3)
	for i := range out {
		out[i] = math.Vec3{X: flat[i*3], Y: flat[i*3+1], Z: flat[i*3+2]}
	}
	return out
}

// corners checks the decoded face indices of one object. Position indices
// must resolve; a normal index that does not resolve means the corner has
// no normal.
func corners(ob obj.Object, positions, normals int) ([][]corner, error) {
	faces := make([][]corner, 0, len(ob.Faces))
	for fi, f := range ob.Faces {
		if len(f.Vertices) < 3 {
			return nil, fmt.Errorf("face %d: %d vertices", fi+1, len(f.Vertices))
		}
		face := make([]corner, len(f.Vertices))
		for i, v := range f.Vertices {
			if v < 0 || v >= positions {
				return nil, fmt.Errorf("face %d: vertex index %d out of range (%d defined)", fi+1, v+1, positions)
			}
			vn := noIndex
			if i < len(f.Normals) && f.Normals[i] >= 0 && f.Normals[i] < normals {
				vn = f.Normals[i]
			}
			face[i] = corner{v: v, vn: vn}
		}
		faces = append(faces, face)
	}
	return faces, nil
}

// build flattens faces into indexed geometry. Polygons are fanned around
// their first corner. Corners without a normal share a vertex per position
// and receive the normalized sum of adjacent face normals.
func build(faces [][]corner, positions, normals []math.Vec3) *scene.Geometry {
	geo := &scene.Geometry{Bounds: scene.EmptyBounds()}
	remap := make(map[corner]uint32)
	var smooth []bool

	vertex := func(c corner) uint32 {
		if idx, ok := remap[c]; ok {
			return idx
		}
		idx := uint32(len(geo.Positions))
		p := positions[c.v]
		geo.Positions = append(geo.Positions, p)
		geo.Bounds = geo.Bounds.Extend(p)
		if c.vn == noIndex {
			geo.Normals = append(geo.Normals, math.Vec3{})
		} else {
			geo.Normals = append(geo.Normals, normals[c.vn])
		}
		smooth = append(smooth, c.vn == noIndex)
		remap[c] = idx
		return idx
	}

	for _, face := range faces {
		a := vertex(face[0])
		for i := 1; i+1 < len(face); i++ {
			b, c := vertex(face[i]), vertex(face[i+1])
			geo.Indices = append(geo.Indices, a, b, c)

			pa := geo.Positions[a]
			n := geo.Positions[b].Sub(pa).Cross(geo.Positions[c].Sub(pa))
			for _, k := range [3]uint32{a, b, c} {
				if smooth[k] {
					geo.Normals[k] = geo.Normals[k].Add(n)
				}
			}
		}
	}

	for k, s := range smooth {
		if !s {
			continue
		}
		if geo.Normals[k].Length() == 0 {
			geo.Normals[k] = math.UnitZ
		} else {
			geo.Normals[k] = geo.Normals[k].Normalize()
		}
	}
	return geo
}
