package scene

import (
	"github.com/Faultbox/dentview/internal/engine/camera"
	"github.com/Faultbox/dentview/internal/engine/lighting"
	"github.com/Faultbox/dentview/pkg/math"
)

// DrawModel is one visible model in a frame, its material already bound.
type DrawModel struct {
	ID        ModelID
	Name      string
	Transform math.Mat4
	Meshes    []*Mesh
}

// Bounds returns the model's world-space box. Picking uses it to reject
// misses before testing triangles.
func (m DrawModel) Bounds() Bounds {
	b := EmptyBounds()
	for _, mesh := range m.Meshes {
		b = b.Union(mesh.Geometry.Bounds)
	}
	return b.Transform(m.Transform)
}

// Frame is the declarative scene description the renderer consumes.
type Frame struct {
	Camera camera.State
	Lights lighting.Set
	Models []DrawModel
}

// DrawCount returns the number of meshes the frame draws.
func (f Frame) DrawCount() int {
	n := 0
	for _, m := range f.Models {
		n += len(m.Meshes)
	}
	return n
}

// Composer rebuilds frames from view state. It remembers which
// (color, opacity) each model was last bound with so unchanged models are
// not rebound.
type Composer struct {
	bound map[ModelID]boundMaterial
}

type boundMaterial struct {
	group   *Group
	color   Color
	opacity float32
}

// NewComposer creates a composer with no bindings yet.
func NewComposer() *Composer {
	return &Composer{bound: make(map[ModelID]boundMaterial)}
}

// Compose returns the frame for the given snapshot. Models that are hidden or
// still have no geometry are omitted.
func (c *Composer) Compose(state ViewState, reg *Registry, cam camera.State, lights lighting.Set) Frame {
	frame := Frame{Camera: cam, Lights: lights}

	for _, id := range reg.IDs() {
		a := state.Model(id)
		if !ShouldRender(a) {
			continue
		}
		e, _ := reg.Get(id)
		if e.Group == nil {
			continue
		}

		want := boundMaterial{group: e.Group, color: a.Tint, opacity: a.Opacity}
		if c.bound[id] != want {
			Bind(e.Group, a.Tint, a.Opacity)
			c.bound[id] = want
		}

		frame.Models = append(frame.Models, DrawModel{
			ID:        id,
			Name:      e.Name,
			Transform: e.Transform(),
			Meshes:    e.Group.Drawables(),
		})
	}
	return frame
}

// Forget drops remembered bindings, e.g. after the registry was reset.
func (c *Composer) Forget() {
	clear(c.bound)
}
