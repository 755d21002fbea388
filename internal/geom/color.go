package geom

import "github.com/gogpu/gg"

// Color is a linear RGB colour with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ParseColor parses a hex colour ("#rgb", "#rrggbb", with or without '#').
// Alpha, if present, is ignored.
func ParseColor(hex string) Color {
	c := gg.Hex(hex)
	return Color{R: c.R, G: c.G, B: c.B}
}

// Lerp interpolates from c to other by t.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Add returns the component-wise sum.
func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// RGBA converts the colour to an opaque gg colour.
func (c Color) RGBA() gg.RGBA {
	return gg.RGB(c.R, c.G, c.B)
}
