// Package colormodel converts a color between its HEX, RGB(A) and HSL(A)
// projections and renders each projection as a CSS string.
package colormodel

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultHex is the color every fresh session starts from.
const DefaultHex Hex = "#1976d2"

// ErrInvalidFormat is returned when user input cannot be parsed as a color.
var ErrInvalidFormat = errors.New("invalid color format")

// RGB is an 8-bit per channel color with a real alpha in [0, 1].
type RGB struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// HSL is a color in degrees (H) and percent (S, L) with a real alpha in [0, 1].
type HSL struct {
	H int     `json:"h"`
	S int     `json:"s"`
	L int     `json:"l"`
	A float64 `json:"a"`
}

// Color holds the three equivalent projections of one color.
// A Color is a value: it is never mutated after construction.
type Color struct {
	Hex Hex `json:"hex"`
	RGB RGB `json:"rgb"`
	HSL HSL `json:"hsl"`
}

// CSS holds the rendered display strings of a Color.
type CSS struct {
	Hex string `json:"hex"`
	RGB string `json:"rgb"`
	HSL string `json:"hsl"`
}

// NewRGB builds an RGB with channels clamped into their domains.
// Alpha defaults to opaque here and nowhere else.
func NewRGB(r, g, b float64, a ...float64) RGB {
	alpha := 1.0
	if len(a) > 0 {
		alpha = ClampAlpha(a[0], 1)
	}
	return RGB{
		R: ClampChannel(r, 0),
		G: ClampChannel(g, 0),
		B: ClampChannel(b, 0),
		A: alpha,
	}
}

// NewHSL builds an HSL with components clamped into their domains.
// Alpha defaults to opaque here and nowhere else.
func NewHSL(h, s, l float64, a ...float64) HSL {
	alpha := 1.0
	if len(a) > 0 {
		alpha = ClampAlpha(a[0], 1)
	}
	return HSL{
		H: ClampHue(h, 0),
		S: ClampPercent(s, 0),
		L: ClampPercent(l, 0),
		A: alpha,
	}
}

// FromRGB derives the full Color from an RGB pivot.
func FromRGB(rgb RGB) Color {
	return Color{
		Hex: RGBToHex(float64(rgb.R), float64(rgb.G), float64(rgb.B)),
		RGB: rgb,
		HSL: RGBToHSL(rgb),
	}
}

// MustParseHex is like HexToRGB but panics on invalid input.
// It is meant for constants such as DefaultHex.
func MustParseHex(s string) Color {
	rgb, err := HexToRGB(s)
	if err != nil {
		panic(err)
	}
	return FromRGB(rgb)
}

// Default returns the initial session color.
func Default() Color {
	return MustParseHex(string(DefaultHex))
}

// CSS renders all three projections.
func (c Color) CSS() CSS {
	return CSS{
		Hex: c.Hex.CSS(),
		RGB: c.RGB.CSS(),
		HSL: c.HSL.CSS(),
	}
}

// String returns a compact description suitable for logs.
func (c Color) String() string {
	return fmt.Sprintf("%s %s %s", c.Hex.CSS(), c.RGB.CSS(), c.HSL.CSS())
}

// MarshalJSON encodes the projections together with their rendered strings.
func (c Color) MarshalJSON() ([]byte, error) {
	type plain Color
	return json.Marshal(struct {
		plain
		CSS CSS `json:"css"`
	}{plain(c), c.CSS()})
}
