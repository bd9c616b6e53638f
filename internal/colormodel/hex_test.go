package colormodel

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "default color", input: "#1976d2", want: RGB{R: 25, G: 118, B: 210, A: 1}},
		{name: "no hash", input: "1976d2", want: RGB{R: 25, G: 118, B: 210, A: 1}},
		{name: "uppercase", input: "#1976D2", want: RGB{R: 25, G: 118, B: 210, A: 1}},
		{name: "shorthand", input: "#f0a", want: RGB{R: 255, G: 0, B: 170, A: 1}},
		{name: "shorthand no hash", input: "F0A", want: RGB{R: 255, G: 0, B: 170, A: 1}},
		{name: "black", input: "#000", want: RGB{A: 1}},
		{name: "white", input: "#ffffff", want: RGB{R: 255, G: 255, B: 255, A: 1}},
		{name: "empty", input: "", wantErr: true},
		{name: "hash only", input: "#", wantErr: true},
		{name: "two digits", input: "#12", wantErr: true},
		{name: "four digits", input: "#1234", wantErr: true},
		{name: "five digits", input: "#12345", wantErr: true},
		{name: "seven digits", input: "#1234567", wantErr: true},
		{name: "non hex", input: "#gggggg", wantErr: true},
		{name: "signed", input: "#+12345", wantErr: true},
		{name: "double hash", input: "##123456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToRGB(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidFormat), "error %v should wrap ErrInvalidFormat", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexShorthandMatchesFullForm(t *testing.T) {
	short, err := HexToRGB("#f0a")
	require.NoError(t, err)
	full, err := HexToRGB("#ff00aa")
	require.NoError(t, err)
	assert.Equal(t, full, short)
}

func TestRGBToHex(t *testing.T) {
	assert.Equal(t, Hex("#1976d2"), RGBToHex(25, 118, 210))
	assert.Equal(t, Hex("#000000"), RGBToHex(0, 0, 0))
	assert.Equal(t, Hex("#ff0080"), RGBToHex(300, -4, 127.5))
}

func TestHexRoundTripIsLossless(t *testing.T) {
	for v := 0; v < 1<<24; v += 4099 {
		hex := fmt.Sprintf("#%06x", v)
		rgb, err := HexToRGB(hex)
		require.NoError(t, err)
		require.Equal(t, Hex(hex), RGBToHex(float64(rgb.R), float64(rgb.G), float64(rgb.B)))
	}
}

func TestHexModel(t *testing.T) {
	got := HexModel.Convert(color.NRGBA{R: 25, G: 118, B: 210, A: 255})
	assert.Equal(t, Hex("#1976d2"), got)

	r, g, b, a := Hex("#ff0000").RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
}
