package colormodel

import (
	"image/color"
	"math"
)

var (
	// RGBModel converts any color.Color to RGB.
	RGBModel = color.ModelFunc(rgbModel)
	// HSLModel converts any color.Color to HSL.
	HSLModel = color.ModelFunc(hslModel)
)

// RGBA returns the alpha-premultiplied red, green, blue and alpha values.
func (c RGB) RGBA() (r, g, b, a uint32) {
	a = uint32(math.Round(ClampAlpha(c.A, 1) * 0xffff))
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return
}

// RGBA returns the alpha-premultiplied red, green, blue and alpha values.
func (c HSL) RGBA() (r, g, b, a uint32) {
	return HSLToRGB(c).RGBA()
}

// FromColor converts any color.Color to RGB, undoing alpha premultiplication.
func FromColor(c color.Color) RGB {
	switch v := c.(type) {
	case RGB:
		return v
	case HSL:
		return HSLToRGB(v)
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B, A: float64(n.A) / 255}
}

func rgbModel(c color.Color) color.Color {
	return FromColor(c)
}

func hslModel(c color.Color) color.Color {
	if h, ok := c.(HSL); ok {
		return h
	}
	return RGBToHSL(FromColor(c))
}
