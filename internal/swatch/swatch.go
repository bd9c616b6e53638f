// Package swatch renders a color preview as a PNG image.
package swatch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/disintegration/gift"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidth  = 160
	DefaultHeight = 96
	checkerSize   = 8
)

var (
	checkerLight = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	checkerDark  = color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
)

// Options controls swatch rendering.
type Options struct {
	Width  int
	Height int
	// Scale multiplies the output size; 2 produces an @2x swatch.
	Scale int
	// Label draws the hex string onto the swatch.
	Label bool
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	return o
}

// Render draws c over a checkerboard, so translucent colors stay visible,
// and optionally labels it with its hex string.
func Render(c colormodel.Color, opts Options) *image.NRGBA {
	opts = opts.withDefaults()
	base := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	if c.RGB.A < 1 {
		drawChecker(base)
	}
	fill := color.NRGBA{R: c.RGB.R, G: c.RGB.G, B: c.RGB.B, A: uint8(math.Round(c.RGB.A * 255))}
	draw.Draw(base, base.Bounds(), image.NewUniform(fill), image.Point{}, draw.Over)

	if opts.Label {
		drawLabel(base, c)
	}

	if opts.Scale == 1 {
		return base
	}

	g := gift.New(gift.Resize(opts.Width*opts.Scale, opts.Height*opts.Scale, gift.NearestNeighborResampling))
	dst := image.NewNRGBA(g.Bounds(base.Bounds()))
	g.Draw(dst, base)
	return dst
}

// Strip renders colors side by side, each cell sized by opts.
func Strip(colors []colormodel.Color, opts Options) *image.NRGBA {
	opts = opts.withDefaults()
	cellW := opts.Width * opts.Scale
	cellH := opts.Height * opts.Scale

	dst := image.NewNRGBA(image.Rect(0, 0, cellW*max(1, len(colors)), cellH))
	for i, c := range colors {
		cell := Render(c, opts)
		r := image.Rect(i*cellW, 0, (i+1)*cellW, cellH)
		draw.Draw(dst, r, cell, image.Point{}, draw.Src)
	}
	return dst
}

func drawChecker(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if ((x/checkerSize)+(y/checkerSize))%2 == 0 {
				img.SetNRGBA(x, y, checkerLight)
			} else {
				img.SetNRGBA(x, y, checkerDark)
			}
		}
	}
}

func drawLabel(img *image.NRGBA, c colormodel.Color) {
	face := basicfont.Face7x13
	text := c.Hex.CSS()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor(c.RGB)),
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	b := img.Bounds()
	x := b.Min.X + (b.Dx()-width)/2
	y := b.Min.Y + (b.Dy()+face.Metrics().Ascent.Ceil())/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// Luminance returns the WCAG relative luminance of c in [0, 1].
func Luminance(c colormodel.RGB) float64 {
	lin := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between a and b, in [1, 21].
func ContrastRatio(a, b colormodel.RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// LabelColor picks black or white, whichever contrasts more with c.
func LabelColor(c colormodel.RGB) color.Color {
	black := colormodel.RGB{A: 1}
	white := colormodel.RGB{R: 255, G: 255, B: 255, A: 1}
	if ContrastRatio(c, black) >= ContrastRatio(c, white) {
		return color.Black
	}
	return color.White
}

// ParseCompression maps default, speed, best and none to a png level.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	default:
		return 0, fmt.Errorf("invalid png compression %q (want default, speed, best or none)", s)
	}
}

// Encode writes img as PNG with the named compression level.
func Encode(w io.Writer, img image.Image, compression string) error {
	level, err := ParseCompression(compression)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
