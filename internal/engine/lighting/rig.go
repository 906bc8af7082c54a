// Package lighting derives the scene lights from the single intensity
// control and prepares them for GPU upload.
package lighting

import (
	"github.com/Faultbox/dentview/pkg/math"
)

// Kind distinguishes light types.
type Kind int

const (
	Ambient Kind = iota
	Directional
)

// Intensity multipliers applied to the shared scalar.
const (
	AmbientFactor = 0.4
	KeyFactor     = 1.5
	FillFactor    = 1.0
)

// Default directional light positions.
var (
	DefaultKeyPosition  = math.Vec3{X: 5, Y: 5, Z: 5}
	DefaultFillPosition = math.Vec3{X: -5, Y: -5, Z: -5}
)

// Light is one light source. Position is unused for ambient lights;
// directional lights shine from Position towards the origin.
type Light struct {
	Kind      Kind
	Intensity float32
	Position  math.Vec3
}

// Set is the full rig: one ambient light and the directional lights.
type Set struct {
	Ambient     Light
	Directional []Light
}

// Params are the rig inputs driven by the UI.
type Params struct {
	Intensity float32
	Key       math.Vec3
	Fill      math.Vec3
}

// DefaultParams returns intensity 1 with the default positions.
func DefaultParams() Params {
	return Params{Intensity: 1, Key: DefaultKeyPosition, Fill: DefaultFillPosition}
}

// Compute builds the rig for an intensity scalar and the two directional
// light positions. Positions pass through unchanged.
func Compute(intensity float32, key, fill math.Vec3) Set {
	return Set{
		Ambient: Light{Kind: Ambient, Intensity: intensity * AmbientFactor},
		Directional: []Light{
			{Kind: Directional, Intensity: intensity * KeyFactor, Position: key},
			{Kind: Directional, Intensity: intensity * FillFactor, Position: fill},
		},
	}
}

// Refresh selects when a Rig recomputes.
type Refresh int

const (
	// OnChange recomputes only when an input differs from the last call.
	OnChange Refresh = iota
	// EveryFrame recomputes on every call.
	EveryFrame
)

// Rig caches the last computed set according to its refresh policy.
type Rig struct {
	refresh    Refresh
	params     Params
	set        Set
	valid      bool
	recomputes int
}

// NewRig creates a rig with the given refresh policy.
func NewRig(refresh Refresh) *Rig {
	return &Rig{refresh: refresh}
}

// Update returns the set for p and whether it was recomputed by this call.
func (r *Rig) Update(p Params) (Set, bool) {
	if r.valid && r.refresh == OnChange && p == r.params {
		return r.set, false
	}
	r.params = p
	r.set = Compute(p.Intensity, p.Key, p.Fill)
	r.valid = true
	r.recomputes++
	return r.set, true
}

// Recomputes returns how many times the set was rebuilt.
func (r *Rig) Recomputes() int {
	return r.recomputes
}
