package colormodel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseRGB parses the text of an rgb field: "rgb(25, 118, 210)",
// "rgba(25, 118, 210, 0.5)" or a bare "25,118,210". Channels outside their
// range are clamped. A component that is not a number keeps its value from
// last. Alpha defaults to opaque when omitted.
func ParseRGB(raw string, last RGB) (RGB, error) {
	parts, err := splitFunctional(raw, "rgb")
	if err != nil {
		return last, err
	}

	out := RGB{
		R: ClampChannel(parseChannel(parts[0]), last.R),
		G: ClampChannel(parseChannel(parts[1]), last.G),
		B: ClampChannel(parseChannel(parts[2]), last.B),
		A: 1,
	}
	if len(parts) == 4 {
		out.A = ClampAlpha(parseAlpha(parts[3]), last.A)
	}
	return out, nil
}

// ParseHSL parses the text of an hsl field: "hsl(210deg, 79%, 46%)",
// "hsla(210, 79%, 46%, 0.5)" or a bare "210,79,46". Components are clamped
// the same way ParseRGB clamps channels.
func ParseHSL(raw string, last HSL) (HSL, error) {
	parts, err := splitFunctional(raw, "hsl")
	if err != nil {
		return last, err
	}

	out := HSL{
		H: ClampHue(parseNumber(parts[0], "deg"), last.H),
		S: ClampPercent(parseNumber(parts[1], "%"), last.S),
		L: ClampPercent(parseNumber(parts[2], "%"), last.L),
		A: 1,
	}
	if len(parts) == 4 {
		out.A = ClampAlpha(parseAlpha(parts[3]), last.A)
	}
	return out, nil
}

// splitFunctional strips an optional name(...) or namea(...) wrapper and
// returns the three or four comma or space separated components.
func splitFunctional(raw, name string) ([]string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil, fmt.Errorf("%w: empty %s value", ErrInvalidFormat, name)
	}

	wrapped := false
	for _, prefix := range []string{name + "a(", name + "("} {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("%w: unterminated %s value %q", ErrInvalidFormat, name, raw)
		}
		s = strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")")
		wrapped = true
		break
	}
	if !wrapped && strings.ContainsAny(s, "()") {
		return nil, fmt.Errorf("%w: %q is not an %s value", ErrInvalidFormat, raw, name)
	}

	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Fields(strings.ReplaceAll(s, "/", " "))
	}
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("%w: %s value %q needs 3 or 4 components", ErrInvalidFormat, name, raw)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// parseNumber returns NaN when s is not a number, so the clamper keeps the
// previous value. Overflowing numbers come back as ±Inf and are clamped.
func parseNumber(s, unit string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(s, unit))
	v, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return v
	}
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseChannel(s string) float64 {
	if strings.HasSuffix(s, "%") {
		return parseNumber(s, "%") * 255 / 100
	}
	return parseNumber(s, "")
}

func parseAlpha(s string) float64 {
	if strings.HasSuffix(s, "%") {
		return parseNumber(s, "%") / 100
	}
	return parseNumber(s, "")
}
