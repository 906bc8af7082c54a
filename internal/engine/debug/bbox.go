package debug

import "github.com/Faultbox/dentview/internal/scene"

// BoxLineVertexCount is the number of vertices in one box outline (12 edges × 2).
const BoxLineVertexCount = 24

// BoxLines returns line-list vertices ([x, y, z] per vertex) outlining b
// expanded by padding on every side. Empty bounds produce no vertices.
func BoxLines(b scene.Bounds, padding float32) []float32 {
	if b.IsEmpty() {
		return nil
	}
	lo, hi := b.Min.Array(), b.Max.Array()
	for i := range lo {
		lo[i] -= padding
		hi[i] += padding
	}
	corner := func(i int) [3]float32 {
		c := lo
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		return c
	}
	// pairs of corner indices differing in exactly one bit
	edges := [12][2]int{
		{0, 1}, {2, 3}, {4, 5}, {6, 7},
		{0, 2}, {1, 3}, {4, 6}, {5, 7},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	out := make([]float32, 0, BoxLineVertexCount*3)
	for _, e := range edges {
		a, b := corner(e[0]), corner(e[1])
		out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
	}
	return out
}

// HitRegionLines outlines the world box of every model in frame, the
// bounds picking tests before it tests the surface.
func HitRegionLines(frame scene.Frame) []float32 {
	var out []float32
	for _, m := range frame.Models {
		out = append(out, BoxLines(m.Bounds(), 0)...)
	}
	return out
}
