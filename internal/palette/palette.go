// Package palette derives sets of related colors from a base color.
package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
	"github.com/aquilax/go-perlin"
)

// Options tunes Generate. Zero values fall back to the defaults below.
type Options struct {
	Seed int64
	// HueStep is the base hue distance between neighbours, in degrees.
	HueStep float64
	// HueJitter, SatJitter and LightJitter bound the noise added to each
	// component (degrees and percent).
	HueJitter   float64
	SatJitter   float64
	LightJitter float64
}

const (
	defaultHueStep     = 24
	defaultHueJitter   = 12
	defaultSatJitter   = 10
	defaultLightJitter = 12

	// noise is zero on integer lattice points, so samples are offset.
	noiseOffset = 0.37
	noiseStep   = 0.61
)

func (o Options) withDefaults() Options {
	if o.HueStep == 0 {
		o.HueStep = defaultHueStep
	}
	if o.HueJitter == 0 {
		o.HueJitter = defaultHueJitter
	}
	if o.SatJitter == 0 {
		o.SatJitter = defaultSatJitter
	}
	if o.LightJitter == 0 {
		o.LightJitter = defaultLightJitter
	}
	return o
}

// Generate walks the hue wheel from base, perturbing hue, saturation and
// lightness with Perlin noise so neighbouring colors stay related. The
// result is deterministic for a given seed. The first color is base.
func Generate(base colormodel.Color, n int, opts Options) ([]colormodel.Color, error) {
	if n <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", n)
	}
	opts = opts.withDefaults()

	// alpha: persistence, beta: lacunarity, 3 octaves
	p := perlin.NewPerlin(2.0, 2.0, 3, opts.Seed)

	out := make([]colormodel.Color, 0, n)
	out = append(out, base)
	for i := 1; i < n; i++ {
		x := float64(i)*noiseStep + noiseOffset
		h := float64(base.HSL.H) + float64(i)*opts.HueStep + p.Noise1D(x)*opts.HueJitter
		s := float64(base.HSL.S) + p.Noise2D(x, 1.5)*opts.SatJitter
		l := float64(base.HSL.L) + p.Noise2D(x, 3.5)*opts.LightJitter

		c, err := fromHSL(h, s, l, base.HSL.A)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Schemes lists the hue offsets, in degrees, of each harmony.
var Schemes = map[string][]float64{
	"complementary": {0, 180},
	"triadic":       {0, 120, 240},
	"analogous":     {-30, 0, 30},
	"split":         {0, 150, 210},
	"tetradic":      {0, 90, 180, 270},
}

// Harmony returns the colors of the named scheme, rotating base's hue.
func Harmony(base colormodel.Color, scheme string) ([]colormodel.Color, error) {
	offsets, ok := Schemes[strings.ToLower(scheme)]
	if !ok {
		return nil, fmt.Errorf("unknown harmony scheme %q", scheme)
	}

	out := make([]colormodel.Color, 0, len(offsets))
	for _, off := range offsets {
		if off == 0 {
			out = append(out, base)
			continue
		}
		c, err := fromHSL(float64(base.HSL.H)+off, float64(base.HSL.S), float64(base.HSL.L), base.HSL.A)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func fromHSL(h, s, l, a float64) (colormodel.Color, error) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return converter.Convert(converter.Edit{
		Kind: converter.KindHSL,
		HSL:  colormodel.NewHSL(h, s, l, a),
	})
}
