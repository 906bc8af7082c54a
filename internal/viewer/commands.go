package viewer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

// Range is a bounded, stepped control value.
type Range struct {
	Min, Max, Step float32
}

// Fixed control ranges.
var (
	OpacityRange   = Range{Min: 0, Max: 1, Step: 0.01}
	IntensityRange = Range{Min: 0, Max: 2, Step: 0.01}
	PositionRange  = Range{Min: -10, Max: 10, Step: 0.1}
)

// ChannelStep is the increment of one color channel step, in 8-bit units.
const ChannelStep = 16

// Snap rounds v to the nearest step and clamps it into the range.
func (r Range) Snap(v float32) float32 {
	if r.Step > 0 {
		snapped := math32.Round((v-r.Min)/r.Step)*r.Step + r.Min
		// values already on a step keep their exact representation
		if math32.Abs(snapped-v) > r.Step*1e-3 {
			v = snapped
		}
	}
	return math.Clamp(v, r.Min, r.Max)
}

// Add moves v by n steps.
func (r Range) Add(v float32, n int) float32 {
	return r.Snap(v + float32(n)*r.Step)
}

// Light selects one of the two directional lights.
type Light int

const (
	KeyLight Light = iota
	FillLight
)

func (l Light) String() string {
	if l == FillLight {
		return "fill"
	}
	return "key"
}

// Channel selects a color channel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Command is a UI control change. Values outside a control's range are
// clamped to it.
type Command interface {
	command()
}

// SetOpacity sets a model's opacity.
type SetOpacity struct {
	Model scene.ModelID
	Value float32
}

// StepOpacity moves a model's opacity by Steps increments.
type StepOpacity struct {
	Model scene.ModelID
	Steps int
}

// SetVisible shows or hides a model.
type SetVisible struct {
	Model   scene.ModelID
	Visible bool
}

// ToggleVisible flips a model's visibility.
type ToggleVisible struct {
	Model scene.ModelID
}

// SetTint sets a model's color.
type SetTint struct {
	Model scene.ModelID
	Color scene.Color
}

// StepChannel moves one color channel of a model by Steps increments.
type StepChannel struct {
	Model   scene.ModelID
	Channel Channel
	Steps   int
}

// SetIntensity sets the light intensity scalar.
type SetIntensity struct {
	Value float32
}

// StepIntensity moves the light intensity by Steps increments.
type StepIntensity struct {
	Steps int
}

// SetLightPosition moves a directional light.
type SetLightPosition struct {
	Light    Light
	Position math.Vec3
}

// StepLightAxis moves one axis (0=X, 1=Y, 2=Z) of a light by Steps
// increments.
type StepLightAxis struct {
	Light Light
	Axis  int
	Steps int
}

func (SetOpacity) command()       {}
func (StepOpacity) command()      {}
func (SetVisible) command()       {}
func (ToggleVisible) command()    {}
func (SetTint) command()          {}
func (StepChannel) command()      {}
func (SetIntensity) command()     {}
func (StepIntensity) command()    {}
func (SetLightPosition) command() {}
func (StepLightAxis) command()    {}

func stepChannel(c scene.Color, ch Channel, steps int) scene.Color {
	rgb := [3]uint8{}
	rgb[0], rgb[1], rgb[2] = c.Bytes()
	v := int(rgb[ch]) + steps*ChannelStep
	rgb[ch] = uint8(min(max(v, 0), 255))
	return scene.RGB8(rgb[0], rgb[1], rgb[2])
}

func snapPosition(p math.Vec3) math.Vec3 {
	return math.Vec3{
		X: PositionRange.Snap(p.X),
		Y: PositionRange.Snap(p.Y),
		Z: PositionRange.Snap(p.Z),
	}
}

func stepAxis(p math.Vec3, axis, steps int) math.Vec3 {
	switch axis {
	case 0:
		p.X = PositionRange.Add(p.X, steps)
	case 1:
		p.Y = PositionRange.Add(p.Y, steps)
	case 2:
		p.Z = PositionRange.Add(p.Z, steps)
	}
	return p
}
