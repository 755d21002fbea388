package sheath

import (
	"github.com/Faultbox/sheath/internal/attractor"
	"github.com/Faultbox/sheath/internal/basedisk"
	"github.com/Faultbox/sheath/internal/config"
	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/internal/growth"
	"github.com/Faultbox/sheath/internal/refine"
	"github.com/Faultbox/sheath/internal/relax"
	"github.com/Faultbox/sheath/pkg/math"
)

func attractorFrom(cfg *config.Config) attractor.Attractor {
	a := cfg.Attractor
	return attractor.Attractor{
		Center:       math.Vec3{X: a.X, Y: a.Y, Z: a.Z},
		Radius:       a.Radius,
		Strength:     a.Strength,
		Bias:         a.Bias,
		Falloff:      a.Falloff,
		FalloffWidth: a.FalloffWidth,
	}
}

func diskParams(cfg *config.Config) basedisk.Params {
	return basedisk.Params{
		RingRadius:      cfg.Base.RingRadius,
		Width:           cfg.Base.DiskWidth,
		RadialDivisions: cfg.Base.RadialDivisions,
		HeightDivisions: cfg.Base.HeightDivisions,
		Lines:           cfg.Mode == config.ModeLines,
	}
}

func growthParams(cfg *config.Config) growth.Params {
	g := cfg.Growth
	return growth.Params{
		Iterations:      cfg.Resolution.Iterations,
		StepOut:         g.StepOut,
		StepUp:          g.StepUp,
		Twist:           g.Twist,
		Taper:           g.Taper,
		LeafGrowth:      g.LeafGrowth,
		RuffleAmplitude: g.RuffleAmplitude,
		RuffleFrequency: g.RuffleFrequency,
		RidgeLift:       g.RidgeLift,
		RidgeSharpness:  g.RidgeSharpness,
		Curl:            g.Curl,
		Bowl:            g.Bowl,
		NoiseAmplitude:  g.NoiseAmplitude,
		NoiseFrequency:  g.NoiseFrequency,
		Jitter:          g.Jitter,
		JitterSeed:      g.JitterSeed,
	}
}

func ringRelax(cfg *config.Config) relax.Options {
	r := cfg.Relax
	return relax.Options{
		MinDistance: r.MinDistance,
		Range:       r.Range,
		Strength:    r.Strength,
		Iterations:  r.Iterations,
	}
}

func globalRelax(cfg *config.Config) relax.Options {
	r := cfg.Relax
	return relax.Options{
		MinDistance: r.GlobalMinDistance,
		Range:       r.GlobalRange,
		Strength:    r.GlobalStrength,
		Iterations:  r.GlobalIterations,
	}
}

func refineParams(cfg *config.Config, base, ridge geom.Color) refine.Params {
	f := cfg.Refine
	return refine.Params{
		WeldEpsilon:       f.WeldEpsilon,
		FinalWeldEpsilon:  f.FinalWeldEpsilon,
		SmoothIterations:  f.SmoothIterations,
		SeamRadius:        f.SeamRadius,
		BridgeRings:       f.BridgeRings,
		RoundnessBand:     f.RoundnessBand,
		RoundnessExponent: f.RoundnessExponent,
		RoundnessStrength: f.RoundnessStrength,
		RoundnessReach:    f.RoundnessReach,
		RingRadius:        cfg.Base.RingRadius,
		BaseColor:         base,
		RidgeColor:        ridge,
	}
}
