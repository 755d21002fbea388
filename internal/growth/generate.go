package growth

import (
	gomath "math"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/sheath/internal/attractor"
	"github.com/Faultbox/sheath/pkg/math"
)

// GrowThreshold is the influence at or below which a point does not grow.
// Calibrated for the default attractor bias; revisit when the bias range changes.
const GrowThreshold = 0.02

// Params holds the growth shape parameters for one pass.
type Params struct {
	Iterations int

	StepOut         float64
	StepUp          float64
	Twist           float64
	Taper           float64
	LeafGrowth      float64
	RuffleAmplitude float64
	RuffleFrequency float64
	RidgeLift       float64
	RidgeSharpness  float64
	Curl            float64
	Bowl            float64
	NoiseAmplitude  float64
	NoiseFrequency  float64

	// Jitter adds seeded Perlin noise along the radial. Zero disables it.
	Jitter     float64
	JitterSeed int64
}

// RelaxFunc adjusts a freshly grown ring in place. prev is the finished
// previous ring and must not be modified.
type RelaxFunc func(ring *Ring, prev Ring)

// Generate grows p.Iterations rings from seed. The result starts with a copy
// of the seed and ends with the tip. relax, when non-nil, runs on every new
// ring before the next one is grown.
func Generate(seed Ring, att attractor.Attractor, p Params, relax RelaxFunc) []Ring {
	first := NewRing(seed.Points, seed.Mask)
	rings := make([]Ring, 0, max(p.Iterations, 0)+1)
	rings = append(rings, first)
	if p.Iterations < 1 || first.Len() == 0 {
		return rings
	}

	axis := growthAxis(first.Centroid)
	n := first.Len()

	var jitter *perlin.Perlin
	if p.Jitter != 0 {
		jitter = perlin.NewPerlin(2, 2, 3, p.JitterSeed)
	}

	for i := 1; i <= p.Iterations; i++ {
		t := float64(i) / float64(p.Iterations)
		prev := rings[i-1]
		next := Ring{
			Points: make([]math.Vec3, n),
			Mask:   make([]float64, n),
		}

		for j := range n {
			prevPoint := prev.Points[j]
			influence := clamp01(prev.Mask[j] * att.Growth(prevPoint))
			next.Mask[j] = influence

			if influence <= GrowThreshold {
				next.Points[j] = prevPoint
				continue
			}

			radial, r := radialDirection(prevPoint, prev.Centroid, axis)
			theta := 2 * gomath.Pi * float64(j) / float64(n)
			d := p.displacement(i, t, theta, influence, radial, r, axis)
			if jitter != nil {
				d = d.AddScaled(radial, p.Jitter*influence*jitter.Noise3D(gomath.Cos(theta), gomath.Sin(theta), 0.35*float64(i)))
			}
			next.Points[j] = prevPoint.Add(d)
		}

		next.UpdateCentroid()
		if relax != nil {
			relax(&next, prev)
		}
		rings = append(rings, next)
	}
	return rings
}

// displacement returns the offset of one point for iteration i.
func (p Params) displacement(i int, t, theta, influence float64, radial math.Vec3, r float64, axis math.Vec3) math.Vec3 {
	g := influence * taper(p.Taper, t) * (1 + p.LeafGrowth*t)

	out := p.StepOut * g
	out += p.RuffleAmplitude * t * gomath.Sin(theta*p.RuffleFrequency+p.Twist*t)
	fi := float64(i)
	out += p.NoiseAmplitude * gomath.Sin(theta*p.NoiseFrequency+1.7*fi) * gomath.Cos(theta*p.NoiseFrequency*0.5-0.9*fi)

	up := p.StepUp * g
	if p.RidgeLift != 0 {
		ridge := 0.5 + 0.5*gomath.Sin(theta*p.RuffleFrequency)
		up += p.RidgeLift * t * gomath.Pow(ridge, p.RidgeSharpness)
	}

	d := radial.Scale(out).AddScaled(axis, up)
	if p.Curl != 0 {
		d = math.QuatFromAxisAngle(radial, p.Curl*t).Rotate(d)
	}
	if p.Bowl != 0 && r > 0 {
		pull := gomath.Min(p.Bowl*r*r, r/2)
		d = d.AddScaled(radial, -pull)
	}
	return d
}

// growthAxis is the outward normal of the Y-axis cylinder at c.
func growthAxis(c math.Vec3) math.Vec3 {
	n := math.Vec3{X: c.X, Z: c.Z}
	if n.Length() < 1e-9 {
		return math.UnitY
	}
	return n.Normalize()
}

// radialDirection returns the unit direction from centroid to p with its
// component along axis removed, and the distance along it.
func radialDirection(p, centroid, axis math.Vec3) (math.Vec3, float64) {
	d := p.Sub(centroid).Reject(axis)
	if l := d.Length(); l > 1e-9 {
		return d.Scale(1 / l), l
	}
	for _, fallback := range []math.Vec3{math.UnitX, math.UnitZ} {
		if f := fallback.Reject(axis); f.Length() > 1e-6 {
			return f.Normalize(), 0
		}
	}
	return math.UnitX, 0
}

func taper(amount, t float64) float64 {
	return gomath.Max(0, 1-amount*t)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || gomath.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}
