package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/dentview/pkg/math"
)

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ParseHex parses "#rrggbb" or "#rgb" (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB8(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// MustParseHex is ParseHex for literals; it panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGB8 builds a Color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// Bytes returns the color quantized to 8-bit channels.
func (c Color) Bytes() (r, g, b uint8) {
	q := func(v float32) uint8 { return uint8(math.Clamp(v, 0, 1)*255 + 0.5) }
	return q(c.R), q(c.G), q(c.B)
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Array returns the color as a uniform-ready array.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
