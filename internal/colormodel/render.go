package colormodel

import "fmt"

// CSS renders rgb(r, g, b), or rgba(r, g, b, a) when the color is not opaque.
func (c RGB) CSS() string {
	if c.A == 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, c.A)
}

// CSS renders hsl(hdeg, s%, l%), or hsla(hdeg, s%, l%, a) when the color
// is not opaque.
func (c HSL) CSS() string {
	if c.A == 1 {
		return fmt.Sprintf("hsl(%ddeg, %d%%, %d%%)", c.H, c.S, c.L)
	}
	return fmt.Sprintf("hsla(%ddeg, %d%%, %d%%, %.2f)", c.H, c.S, c.L, c.A)
}
