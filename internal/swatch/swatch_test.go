package swatch

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SolidColor(t *testing.T) {
	img := Render(colormodel.Default(), Options{Width: 20, Height: 10})
	require.Equal(t, 20, img.Bounds().Dx())
	require.Equal(t, 10, img.Bounds().Dy())

	for _, p := range [][2]int{{0, 0}, {19, 9}, {10, 5}} {
		assert.Equal(t, color.NRGBA{R: 25, G: 118, B: 210, A: 255}, img.NRGBAAt(p[0], p[1]))
	}
}

func TestRender_HiDPI(t *testing.T) {
	img := Render(colormodel.Default(), Options{Width: 20, Height: 10, Scale: 2})
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 25, G: 118, B: 210, A: 255}, img.NRGBAAt(39, 19))
}

func TestRender_TranslucentShowsChecker(t *testing.T) {
	c := colormodel.FromRGB(colormodel.RGB{R: 255, A: 0.5})
	img := Render(c, Options{Width: 32, Height: 32})

	light := img.NRGBAAt(0, 0)
	dark := img.NRGBAAt(checkerSize, 0)
	assert.NotEqual(t, light, dark)
	assert.Equal(t, uint8(255), light.A)
	assert.Greater(t, light.R, light.G)
}

func TestRender_LabelUsesContrastingInk(t *testing.T) {
	white := colormodel.MustParseHex("#ffffff")
	img := Render(white, Options{Label: true})

	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == (color.NRGBA{A: 255}) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected black label pixels on a white swatch")
}

func TestStrip(t *testing.T) {
	colors := []colormodel.Color{
		colormodel.MustParseHex("#f00"),
		colormodel.MustParseHex("#0f0"),
		colormodel.MustParseHex("#00f"),
	}
	img := Strip(colors, Options{Width: 4, Height: 4})
	require.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(5, 1))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(9, 1))
}

func TestContrast(t *testing.T) {
	black := colormodel.RGB{A: 1}
	white := colormodel.RGB{R: 255, G: 255, B: 255, A: 1}
	assert.InDelta(t, 21.0, ContrastRatio(black, white), 1e-9)
	assert.InDelta(t, 1.0, ContrastRatio(white, white), 1e-9)
	assert.Equal(t, color.White, LabelColor(colormodel.MustParseHex("#0d47a1").RGB))
	assert.Equal(t, color.Black, LabelColor(colormodel.RGB{R: 255, G: 235, B: 59, A: 1}))
}

func TestEncode(t *testing.T) {
	img := Render(colormodel.Default(), Options{Width: 8, Height: 8})

	for _, level := range []string{"default", "speed", "best", "none", ""} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, img, level), level)
		decoded, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), decoded.Bounds())
	}

	assert.Error(t, Encode(&bytes.Buffer{}, img, "ultra"))
}
