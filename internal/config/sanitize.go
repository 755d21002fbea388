package config

import "math"

// Sanitize clamps or floors every parameter into a range the generator can
// always handle. Unusable values (NaN, unparsable colours, unknown modes) are
// replaced with defaults.
func (c *Config) Sanitize() {
	def := Default()

	if c.Mode != ModeMesh && c.Mode != ModeLines {
		c.Mode = def.Mode
	}

	r := &c.Resolution
	r.Segments = atLeastInt(r.Segments, 3)
	if r.DisplaySegments <= 0 {
		r.DisplaySegments = r.Segments
	}
	r.DisplaySegments = atLeastInt(r.DisplaySegments, 3)
	r.Iterations = atLeastInt(r.Iterations, 1)

	b := &c.Base
	b.RingRadius = atLeast(b.RingRadius, 0.01)
	b.DiskWidth = atLeast(b.DiskWidth, 0.01)
	b.RadialDivisions = atLeastInt(b.RadialDivisions, 3)
	b.HeightDivisions = atLeastInt(b.HeightDivisions, 1)

	a := &c.Attractor
	a.X = finite(a.X, def.Attractor.X)
	a.Y = finite(a.Y, def.Attractor.Y)
	a.Z = finite(a.Z, def.Attractor.Z)
	a.Radius = atLeast(a.Radius, 0)
	a.FalloffWidth = atLeast(a.FalloffWidth, 0)
	a.Strength = atLeast(a.Strength, 0)
	a.Bias = clamp(a.Bias, 0, 1)
	a.Falloff = atLeast(a.Falloff, 0)

	g := &c.Growth
	for _, v := range []*float64{
		&g.StepOut, &g.StepUp, &g.Twist, &g.LeafGrowth,
		&g.RuffleAmplitude, &g.RuffleFrequency, &g.RidgeLift,
		&g.Curl, &g.Bowl, &g.NoiseAmplitude, &g.NoiseFrequency, &g.Jitter,
	} {
		*v = finite(*v, 0)
	}
	g.Taper = clamp(g.Taper, 0, 1)
	g.RidgeSharpness = atLeast(g.RidgeSharpness, 0)
	g.Bowl = atLeast(g.Bowl, 0)

	x := &c.Relax
	x.MinDistance = atLeast(x.MinDistance, 0)
	x.Range = atLeast(x.Range, 0)
	x.Strength = atLeast(x.Strength, 0)
	x.Iterations = atLeastInt(x.Iterations, 0)
	x.GlobalMinDistance = atLeast(x.GlobalMinDistance, 0)
	x.GlobalRange = atLeast(x.GlobalRange, 0)
	x.GlobalStrength = atLeast(x.GlobalStrength, 0)
	x.GlobalIterations = atLeastInt(x.GlobalIterations, 0)

	if !validHex(c.Material.BaseColor) {
		c.Material.BaseColor = def.Material.BaseColor
	}
	if !validHex(c.Material.RidgeColor) {
		c.Material.RidgeColor = def.Material.RidgeColor
	}

	f := &c.Refine
	f.WeldEpsilon = atLeast(f.WeldEpsilon, 1e-9)
	f.FinalWeldEpsilon = atLeast(f.FinalWeldEpsilon, 1e-9)
	f.SmoothIterations = atLeastInt(f.SmoothIterations, 0)
	f.SeamRadius = atLeast(f.SeamRadius, 0)
	f.BridgeRings = atLeastInt(f.BridgeRings, 2)
	f.RoundnessBand = atLeast(f.RoundnessBand, 0)
	f.RoundnessExponent = atLeast(f.RoundnessExponent, 0)
	f.RoundnessStrength = clamp(f.RoundnessStrength, 0, 1)
	f.RoundnessReach = atLeast(f.RoundnessReach, 0)

	c.Bake.Copies = atLeastInt(c.Bake.Copies, 1)
	c.Bake.Spacing = atLeast(c.Bake.Spacing, 0)

	c.Output.PreviewWidth = atLeastInt(c.Output.PreviewWidth, 16)
	c.Output.PreviewHeight = atLeastInt(c.Output.PreviewHeight, 16)
}

func atLeastInt(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}

func atLeast(v, lo float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat32
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// validHex reports whether s is an "RGB", "RGBA", "RRGGBB" or "RRGGBBAA"
// hex colour, with or without a leading '#'.
func validHex(s string) bool {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
