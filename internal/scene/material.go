package scene

// Side selects which triangle faces are shaded.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Fixed surface response for every model.
const (
	StandardMetalness = 0.5
	StandardRoughness = 0.5
)

// Material is a physically based surface description.
type Material struct {
	Color       Color
	Opacity     float32
	Transparent bool
	Metalness   float32
	Roughness   float32
	Side        Side
}

// NewStandardMaterial returns the translucent double-sided material every
// model is drawn with.
func NewStandardMaterial(c Color, opacity float32) *Material {
	return &Material{
		Color:       c,
		Opacity:     opacity,
		Transparent: true,
		Metalness:   StandardMetalness,
		Roughness:   StandardRoughness,
		Side:        DoubleSide,
	}
}

// Matches reports whether m was built for (c, opacity).
func (m *Material) Matches(c Color, opacity float32) bool {
	return m != nil && m.Color == c && m.Opacity == opacity
}

// Bind assigns one material for (c, opacity) to every drawable mesh of g, in
// place, and returns g. Rebinding identical values keeps the existing
// instance. Opacity is expected in [0, 1] already. A group without drawable
// meshes is left untouched.
func Bind(g *Group, c Color, opacity float32) *Group {
	var mat *Material
	for _, m := range g.Drawables() {
		if mat == nil {
			if m.Material.Matches(c, opacity) {
				mat = m.Material
			} else {
				mat = NewStandardMaterial(c, opacity)
			}
		}
		m.Material = mat
	}
	return g
}
