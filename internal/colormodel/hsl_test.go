package colormodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want HSL
	}{
		{name: "default color", in: RGB{R: 25, G: 118, B: 210, A: 1}, want: HSL{H: 210, S: 79, L: 46, A: 1}},
		{name: "white", in: RGB{R: 255, G: 255, B: 255, A: 1}, want: HSL{H: 0, S: 0, L: 100, A: 1}},
		{name: "black", in: RGB{A: 1}, want: HSL{H: 0, S: 0, L: 0, A: 1}},
		{name: "gray", in: RGB{R: 128, G: 128, B: 128, A: 1}, want: HSL{H: 0, S: 0, L: 50, A: 1}},
		{name: "red", in: RGB{R: 255, A: 1}, want: HSL{H: 0, S: 100, L: 50, A: 1}},
		{name: "green", in: RGB{G: 255, A: 1}, want: HSL{H: 120, S: 100, L: 50, A: 1}},
		{name: "blue", in: RGB{B: 255, A: 1}, want: HSL{H: 240, S: 100, L: 50, A: 1}},
		{name: "magenta side", in: RGB{R: 255, B: 170, A: 1}, want: HSL{H: 320, S: 100, L: 50, A: 1}},
		{name: "hue rounding to 360 wraps", in: RGB{R: 255, B: 1, A: 1}, want: HSL{H: 0, S: 100, L: 50, A: 1}},
		{name: "alpha passes through", in: RGB{R: 25, G: 118, B: 210, A: 0.25}, want: HSL{H: 210, S: 79, L: 46, A: 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBToHSL(tt.in))
		})
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name string
		in   HSL
		want RGB
	}{
		{name: "pure red", in: HSL{H: 0, S: 100, L: 50, A: 1}, want: RGB{R: 255, A: 1}},
		{name: "red at 360", in: HSL{H: 360, S: 100, L: 50, A: 1}, want: RGB{R: 255, A: 1}},
		{name: "achromatic", in: HSL{H: 200, S: 0, L: 50, A: 1}, want: RGB{R: 128, G: 128, B: 128, A: 1}},
		{name: "dark green", in: HSL{H: 120, S: 100, L: 25, A: 0.5}, want: RGB{G: 128, A: 0.5}},
		{name: "default color", in: HSL{H: 210, S: 79, L: 46, A: 1}, want: RGB{R: 25, G: 117, B: 210, A: 1}},
		{name: "white", in: HSL{H: 0, S: 0, L: 100, A: 1}, want: RGB{R: 255, G: 255, B: 255, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HSLToRGB(tt.in))
		})
	}
}

func TestAchromaticHasZeroSaturation(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := RGB{R: uint8(v), G: uint8(v), B: uint8(v), A: 1}
		hsl := RGBToHSL(c)
		require.Equal(t, 0, hsl.S, "gray %d", v)

		back := HSLToRGB(hsl)
		require.InDelta(t, v, int(back.R), 1, "gray %d", v)
		require.Equal(t, back.R, back.G)
		require.Equal(t, back.G, back.B)
	}
}

// Whole degrees and percents cannot address every 8-bit color, so the
// quantized round trip is bounded by the worst case over the full cube.
const quantizedRoundTripTolerance = 5

func TestRGBHSLRoundTrip(t *testing.T) {
	stride := 1
	if testing.Short() {
		stride = 5
	}

	for r := 0; r < 256; r += stride {
		for g := 0; g < 256; g += stride {
			for b := 0; b < 256; b += stride {
				in := RGB{R: uint8(r), G: uint8(g), B: uint8(b), A: 1}

				exact := HSLfToRGB(RGBToHSLExact(in))
				if exact != in {
					t.Fatalf("exact round trip of %v gave %v", in, exact)
				}

				q := HSLToRGB(RGBToHSL(in))
				if d := maxChannelDelta(in, q); d > quantizedRoundTripTolerance {
					t.Fatalf("quantized round trip of %v gave %v (delta %d)", in, q, d)
				}
			}
		}
	}
}

func TestRGBToHSLStaysInDomain(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				hsl := RGBToHSL(RGB{R: uint8(r), G: uint8(g), B: uint8(b), A: 1})
				require.True(t, hsl.H >= 0 && hsl.H < 360, "hue %d", hsl.H)
				require.True(t, PercentDomain.Contains(float64(hsl.S)), "saturation %d", hsl.S)
				require.True(t, PercentDomain.Contains(float64(hsl.L)), "lightness %d", hsl.L)
			}
		}
	}
}

func maxChannelDelta(a, b RGB) int {
	d := 0
	for _, pair := range [][2]uint8{{a.R, b.R}, {a.G, b.G}, {a.B, b.B}} {
		v := int(pair[0]) - int(pair[1])
		if v < 0 {
			v = -v
		}
		d = max(d, v)
	}
	return d
}
