package colormodel

import (
	"math"

	"fortio.org/safecast"
)

// Domain describes the legal range of one numeric channel.
type Domain struct {
	Min     float64
	Max     float64
	Integer bool
}

var (
	// ChannelDomain is the range of an 8-bit red, green or blue channel.
	ChannelDomain = Domain{Min: 0, Max: 255, Integer: true}
	// HueDomain is the hue range in degrees. 0 and 360 both denote red.
	HueDomain = Domain{Min: 0, Max: 360, Integer: true}
	// PercentDomain is the range of saturation and lightness.
	PercentDomain = Domain{Min: 0, Max: 100, Integer: true}
	// AlphaDomain is the opacity range.
	AlphaDomain = Domain{Min: 0, Max: 1}
)

// Clamp forces v into the domain. A NaN v is ignored and last is returned
// instead, so an unparsable field keeps its previous value.
func (d Domain) Clamp(v, last float64) float64 {
	if math.IsNaN(v) {
		return last
	}
	if d.Integer {
		v = math.Round(v)
	}
	return math.Max(d.Min, math.Min(d.Max, v))
}

// Contains reports whether v already lies inside the domain.
func (d Domain) Contains(v float64) bool {
	if math.IsNaN(v) || v < d.Min || v > d.Max {
		return false
	}
	return !d.Integer || v == math.Trunc(v)
}

// ClampChannel clamps v to an 8-bit channel value.
func ClampChannel(v float64, last uint8) uint8 {
	return safecast.MustRound[uint8](ChannelDomain.Clamp(v, float64(last)))
}

// ClampHue clamps v to a whole degree in [0, 360].
func ClampHue(v float64, last int) int {
	return safecast.MustRound[int](HueDomain.Clamp(v, float64(last)))
}

// ClampPercent clamps v to a whole percent in [0, 100].
func ClampPercent(v float64, last int) int {
	return safecast.MustRound[int](PercentDomain.Clamp(v, float64(last)))
}

// ClampAlpha clamps v to [0, 1].
func ClampAlpha(v, last float64) float64 {
	return AlphaDomain.Clamp(v, last)
}
