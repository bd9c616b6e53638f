package colormodel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromColorUnpremultiplies(t *testing.T) {
	got := FromColor(color.RGBA{R: 64, G: 0, B: 0, A: 128})
	assert.Equal(t, uint8(127), got.R)
	assert.InDelta(t, 128.0/255, got.A, 1e-9)

	assert.Equal(t, RGB{R: 255, A: 1}, FromColor(HSL{H: 0, S: 100, L: 50, A: 1}))
}

func TestModels(t *testing.T) {
	hsl := HSLModel.Convert(color.NRGBA{R: 25, G: 118, B: 210, A: 255})
	assert.Equal(t, HSL{H: 210, S: 79, L: 46, A: 1}, hsl)

	rgb := RGBModel.Convert(Hex("#f0a"))
	assert.Equal(t, RGB{R: 255, G: 0, B: 170, A: 1}, rgb)
}

func TestRGBAPremultiplies(t *testing.T) {
	r, g, b, a := RGB{R: 255, G: 255, B: 255, A: 0.5}.RGBA()
	assert.Equal(t, uint32(0x8000), a)
	assert.Equal(t, a, r)
	assert.Equal(t, a, g)
	assert.Equal(t, a, b)

	n := color.NRGBAModel.Convert(RGB{R: 25, G: 118, B: 210, A: 1}).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 25, G: 118, B: 210, A: 255}, n)
}
