package colormodel

import "math"

// HSLf is an unquantized HSL projection: H, S and L in [0, 1].
type HSLf struct {
	H, S, L, A float64
}

// RGBToHSL converts an RGB color to HSL with whole degrees and percents.
// Rounding happens once, after the whole computation. A hue that rounds
// up to 360 is reported as 0.
func RGBToHSL(c RGB) HSL {
	f := RGBToHSLExact(c)
	h := int(math.Round(f.H * 360))
	if h == 360 {
		h = 0
	}
	return HSL{
		H: h,
		S: int(math.Round(f.S * 100)),
		L: int(math.Round(f.L * 100)),
		A: c.A,
	}
}

// RGBToHSLExact converts an RGB color to HSL without quantizing the result.
func RGBToHSLExact(c RGB) HSLf {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	maxv := math.Max(math.Max(r, g), b)
	minv := math.Min(math.Min(r, g), b)

	out := HSLf{L: (maxv + minv) / 2, A: c.A}
	if maxv == minv {
		// Achromatic: hue is undefined and saturation is zero.
		return out
	}

	d := maxv - minv
	if out.L > 0.5 {
		out.S = d / (2 - maxv - minv)
	} else {
		out.S = d / (maxv + minv)
	}

	switch maxv {
	case r:
		out.H = (g - b) / d
		if g < b {
			out.H += 6
		}
	case g:
		out.H = (b-r)/d + 2
	default:
		out.H = (r-g)/d + 4
	}
	out.H /= 6
	return out
}

// HSLToRGB converts an HSL color to 8-bit RGB.
func HSLToRGB(c HSL) RGB {
	return HSLfToRGB(HSLf{
		H: float64(c.H) / 360,
		S: float64(c.S) / 100,
		L: float64(c.L) / 100,
		A: c.A,
	})
}

// HSLfToRGB converts an unquantized HSL color to 8-bit RGB.
func HSLfToRGB(c HSLf) RGB {
	var r, g, b float64
	if c.S == 0 {
		r, g, b = c.L, c.L, c.L
	} else {
		var q float64
		if c.L < 0.5 {
			q = c.L * (1 + c.S)
		} else {
			q = c.L + c.S - c.L*c.S
		}
		p := 2*c.L - q
		r = hueToRGB(p, q, c.H+1/3.)
		g = hueToRGB(p, q, c.H)
		b = hueToRGB(p, q, c.H-1/3.)
	}
	return RGB{
		R: ClampChannel(r*255, 0),
		G: ClampChannel(g*255, 0),
		B: ClampChannel(b*255, 0),
		A: c.A,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1/6.:
		return p + (q-p)*6*t
	case t < 1/2.:
		return q
	case t < 2/3.:
		return p + (q-p)*(2/3.-t)*6
	default:
		return p
	}
}
