package lighting

// MaxDirectional is the number of directional lights the shader accepts.
const MaxDirectional = 2

// Uniforms is a Set flattened for GPU upload.
type Uniforms struct {
	Ambient     float32
	Count       int32
	Directions  [MaxDirectional * 3]float32 // unit vectors towards each light
	Intensities [MaxDirectional]float32
}

// Uniforms flattens the set. Lights beyond MaxDirectional are dropped; a
// light at the origin has no direction and is skipped.
func (s Set) Uniforms() Uniforms {
	u := Uniforms{Ambient: s.Ambient.Intensity}
	for _, l := range s.Directional {
		if int(u.Count) == MaxDirectional {
			break
		}
		dir := l.Position.Normalize()
		if dir.Length() == 0 {
			continue
		}
		i := int(u.Count)
		u.Directions[i*3+0] = dir.X
		u.Directions[i*3+1] = dir.Y
		u.Directions[i*3+2] = dir.Z
		u.Intensities[i] = l.Intensity
		u.Count++
	}
	return u
}
