package colormodel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// HexModel converts any color.Color to Hex. Alpha is dropped.
var HexModel = color.ModelFunc(hexModel)

// Hex is a color written as '#' followed by six lowercase hexadecimal digits.
type Hex string

// RGBA implements color.Color. An unparsable Hex reads as opaque black.
func (h Hex) RGBA() (r, g, b, a uint32) {
	rgb, err := HexToRGB(string(h))
	if err != nil {
		return 0, 0, 0, 0xffff
	}
	return rgb.RGBA()
}

// CSS renders the hex color as '#' and six lowercase digits. Shorthand and
// missing '#' are normalized; an unparsable Hex is only lowercased.
func (h Hex) CSS() string {
	s := strings.ToLower(string(h))
	if len(s) == 7 && s[0] == '#' {
		return s
	}
	rgb, err := HexToRGB(s)
	if err != nil {
		return s
	}
	return string(RGBToHex(float64(rgb.R), float64(rgb.G), float64(rgb.B)))
}

func hexModel(c color.Color) color.Color {
	if h, ok := c.(Hex); ok {
		return h
	}
	rgb := FromColor(c)
	return RGBToHex(float64(rgb.R), float64(rgb.G), float64(rgb.B))
}

// RGBToHex converts an RGB triple to a Hex string. Each channel is rounded
// and clamped to [0, 255] independently.
func RGBToHex(r, g, b float64) Hex {
	return Hex(fmt.Sprintf("#%02x%02x%02x",
		ClampChannel(r, 0), ClampChannel(g, 0), ClampChannel(b, 0)))
}

// HexToRGB parses a 3 or 6 digit hex color, with or without a leading '#'.
// The result is opaque.
func HexToRGB(s string) (RGB, error) {
	body := strings.TrimPrefix(s, "#")
	switch len(body) {
	case 3:
		body = string([]byte{body[0], body[0], body[1], body[1], body[2], body[2]})
	case 6:
	default:
		return RGB{}, fmt.Errorf("%w: hex %q must have 3 or 6 digits", ErrInvalidFormat, s)
	}

	if !isHexDigits(body) {
		return RGB{}, fmt.Errorf("%w: hex %q contains non-hex characters", ErrInvalidFormat, s)
	}
	v, err := strconv.ParseUint(body, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: hex %q: %v", ErrInvalidFormat, s, err)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 1,
	}, nil
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
