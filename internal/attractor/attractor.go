// Package attractor models the point that drives where the base disk is cut
// and how strongly the sheath grows.
package attractor

import (
	gomath "math"

	"github.com/Faultbox/sheath/pkg/math"
)

// Attractor is an external deformation source. The generator only reads it.
type Attractor struct {
	Center       math.Vec3
	Radius       float64
	Strength     float64
	Bias         float64
	Falloff      float64 // exponent applied to the selection influence during growth
	FalloffWidth float64 // width of the linear ramp outside Radius
}

// Influence returns the selection influence at distance d from the centre:
// 1 inside Radius, 0 beyond Radius+FalloffWidth, linear in between.
// It is non-increasing in d.
func (a Attractor) Influence(d float64) float64 {
	if d <= a.Radius {
		return 1
	}
	if a.FalloffWidth <= 0 || d >= a.Radius+a.FalloffWidth {
		return 0
	}
	return 1 - (d-a.Radius)/a.FalloffWidth
}

// Selection returns the selection influence at point p.
func (a Attractor) Selection(p math.Vec3) float64 {
	return a.Influence(p.Distance(a.Center))
}

// Growth returns the multiplicative growth factor at p before it is applied
// to the previous mask: Strength * selection^Falloff + Bias.
func (a Attractor) Growth(p math.Vec3) float64 {
	sel := a.Selection(p)
	return a.Strength*gomath.Pow(sel, a.Falloff) + a.Bias
}
