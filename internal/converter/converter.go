// Package converter keeps the HEX, RGB and HSL projections of the current
// color consistent as any one of them is edited.
package converter

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
)

// Kind identifies which projection an edit changed.
type Kind int

const (
	KindHex Kind = iota
	KindRGB
	KindHSL
)

// String returns the lowercase name of the projection.
func (k Kind) String() string {
	switch k {
	case KindHex:
		return "hex"
	case KindRGB:
		return "rgb"
	case KindHSL:
		return "hsl"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts hex, rgb, rgba, hsl and hsla in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex", "#":
		return KindHex, nil
	case "rgb", "rgba":
		return KindRGB, nil
	case "hsl", "hsla":
		return KindHSL, nil
	default:
		return 0, fmt.Errorf("unknown color kind %q (want hex, rgb or hsl)", s)
	}
}

// Edit is a change to one projection. Only the field selected by Kind is read.
// RGB and HSL alpha is taken as given, so a zero A is fully transparent;
// build those fields with colormodel.NewRGB or colormodel.NewHSL to get an
// opaque default.
type Edit struct {
	Kind Kind
	Hex  string
	RGB  colormodel.RGB
	HSL  colormodel.HSL
}

// Convert computes a fully consistent Color from a single edit. RGB is the
// pivot: the edited projection is converted to RGB and the other two are
// derived from it. The edited projection itself is kept as entered, after
// clamping.
func Convert(e Edit) (colormodel.Color, error) {
	switch e.Kind {
	case KindHex:
		rgb, err := colormodel.HexToRGB(strings.TrimSpace(e.Hex))
		if err != nil {
			return colormodel.Color{}, err
		}
		return colormodel.FromRGB(rgb), nil

	case KindRGB:
		rgb := colormodel.NewRGB(float64(e.RGB.R), float64(e.RGB.G), float64(e.RGB.B), e.RGB.A)
		return colormodel.FromRGB(rgb), nil

	case KindHSL:
		hsl := colormodel.NewHSL(float64(e.HSL.H), float64(e.HSL.S), float64(e.HSL.L), e.HSL.A)
		rgb := colormodel.HSLToRGB(hsl)
		return colormodel.Color{
			Hex: colormodel.RGBToHex(float64(rgb.R), float64(rgb.G), float64(rgb.B)),
			RGB: rgb,
			HSL: hsl,
		}, nil

	default:
		return colormodel.Color{}, fmt.Errorf("unknown edit kind %v", e.Kind)
	}
}

// ConvertText parses the raw text of one input field and converts it.
// Components that are not numbers take their values from prev.
func ConvertText(kind Kind, raw string, prev colormodel.Color) (colormodel.Color, error) {
	switch kind {
	case KindHex:
		return Convert(Edit{Kind: KindHex, Hex: raw})
	case KindRGB:
		rgb, err := colormodel.ParseRGB(raw, prev.RGB)
		if err != nil {
			return colormodel.Color{}, err
		}
		return Convert(Edit{Kind: KindRGB, RGB: rgb})
	case KindHSL:
		hsl, err := colormodel.ParseHSL(raw, prev.HSL)
		if err != nil {
			return colormodel.Color{}, err
		}
		return Convert(Edit{Kind: KindHSL, HSL: hsl})
	default:
		return colormodel.Color{}, fmt.Errorf("unknown edit kind %v", kind)
	}
}

// DetectKind guesses the projection of free-form text: rgb(...) and hsl(...)
// forms are recognised by name, anything else is treated as hex.
func DetectKind(raw string) Kind {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "rgb"):
		return KindRGB
	case strings.HasPrefix(s, "hsl"):
		return KindHSL
	default:
		return KindHex
	}
}

// Recorder stores the rendered strings of every accepted edit.
type Recorder interface {
	Record(kind, input string, c colormodel.Color) error
}

// Config configures a Converter.
type Config struct {
	// Initial is the starting color as hex; DefaultHex when empty.
	Initial string
	// Recorder is optional.
	Recorder Recorder
}

// Converter owns the current color snapshot. The snapshot is replaced as a
// whole on every accepted edit and left untouched on a rejected one.
type Converter struct {
	current  atomic.Pointer[colormodel.Color]
	recorder Recorder
	logger   *slog.Logger
}

// New creates a Converter starting from cfg.Initial.
func New(cfg Config, logger *slog.Logger) (*Converter, error) {
	initial := cfg.Initial
	if initial == "" {
		initial = string(colormodel.DefaultHex)
	}
	c, err := Convert(Edit{Kind: KindHex, Hex: initial})
	if err != nil {
		return nil, fmt.Errorf("invalid initial color: %w", err)
	}

	conv := &Converter{recorder: cfg.Recorder, logger: logger}
	conv.current.Store(&c)
	return conv, nil
}

// Current returns the latest consistent snapshot.
func (c *Converter) Current() colormodel.Color {
	return *c.current.Load()
}

// Apply converts the edit and, on success, publishes the result as the new
// snapshot. On error the previous snapshot is returned along with the error.
func (c *Converter) Apply(e Edit) (colormodel.Color, error) {
	next, err := Convert(e)
	if err != nil {
		c.log().Debug("edit rejected", "kind", e.Kind.String(), "error", err)
		return c.Current(), err
	}
	c.publish(e.Kind, describe(e), next)
	return next, nil
}

// ApplyText parses the raw text of one input field and applies it. Numeric
// components that do not parse keep their current values.
func (c *Converter) ApplyText(kind Kind, raw string) (colormodel.Color, error) {
	prev := c.Current()
	next, err := ConvertText(kind, raw, prev)
	if err != nil {
		c.log().Debug("edit rejected", "kind", kind.String(), "input", raw, "error", err)
		return prev, err
	}
	c.publish(kind, raw, next)
	return next, nil
}

func (c *Converter) publish(kind Kind, input string, next colormodel.Color) {
	c.current.Store(&next)
	c.log().Debug("color updated", "kind", kind.String(), "color", next.String())

	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(kind.String(), input, next); err != nil {
		c.log().Warn("failed to record history", "error", err)
	}
}

func (c *Converter) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

func describe(e Edit) string {
	switch e.Kind {
	case KindHex:
		return e.Hex
	case KindRGB:
		return e.RGB.CSS()
	case KindHSL:
		return e.HSL.CSS()
	default:
		return ""
	}
}
