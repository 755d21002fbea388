// Package refine merges the base band, the grown sheath and a bridge between
// them into one welded, smoothed mesh.
package refine

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sheath/internal/attractor"
	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/internal/resample"
	"github.com/Faultbox/sheath/pkg/math"
)

// ErrMissingInput is returned when a stage lacks the geometry it needs.
var ErrMissingInput = errors.New("missing input geometry")

// SmoothRate is how far each Laplacian iteration moves a vertex toward the
// mean of its neighbours.
const SmoothRate = 0.5

// Params configures a refinement run.
type Params struct {
	WeldEpsilon      float64
	FinalWeldEpsilon float64
	SmoothIterations int
	SeamRadius       float64
	BridgeRings      int

	RoundnessBand     float64
	RoundnessExponent float64
	RoundnessStrength float64
	RoundnessReach    float64

	// Nominal band radius, used by the roundness stage.
	RingRadius float64

	BaseColor  geom.Color
	RidgeColor geom.Color
}

// Input is the geometry a refinement run starts from.
type Input struct {
	Base   *geom.Buffer // base band triangles
	Growth *geom.Buffer // assembled sheath triangles

	SeamRing   []math.Vec3 // cached seam ring
	GrowthRing []math.Vec3 // first growth ring at display resolution

	Attractor attractor.Attractor
}

// Stats reports what a refinement run produced.
type Stats struct {
	// BridgeTriangles counts the loft triangles that survived welding.
	BridgeTriangles int
}

// Run executes every stage in order. Inputs are not modified. On error the
// caller keeps its unrefined geometry.
func Run(in Input, p Params) (*geom.Buffer, error) {
	out, _, err := RunWithStats(in, p)
	return out, err
}

// RunWithStats is Run that also reports stage statistics.
func RunWithStats(in Input, p Params) (*geom.Buffer, Stats, error) {
	var stats Stats
	if err := requireMesh("weld", in.Base); err != nil {
		return nil, stats, err
	}
	if err := requireMesh("weld", in.Growth); err != nil {
		return nil, stats, err
	}
	if len(in.GrowthRing) < 2 {
		return nil, stats, fmt.Errorf("bridge: %w", ErrMissingInput)
	}
	seam, ok := resample.ByIndex(in.SeamRing, len(in.GrowthRing))
	if !ok {
		return nil, stats, fmt.Errorf("bridge: %w", ErrMissingInput)
	}

	base := geom.Weld(in.Base, p.WeldEpsilon)
	growth := geom.Weld(in.Growth, p.WeldEpsilon)
	ringIDs := TrackRing(growth, in.GrowthRing, p.WeldEpsilon)

	Laplacian(growth, p.SmoothIterations, SmoothRate)
	Stitch(growth, base, p.SeamRadius)

	// The growth edge has pulled away from the seam; loft across the gap.
	edge := RingPositions(growth, in.GrowthRing, ringIDs)
	bridge := Bridge(seam, edge, p.BridgeRings, p.BaseColor, p.RidgeColor)
	if bridge != nil {
		stats.BridgeTriangles = geom.Weld(bridge, p.WeldEpsilon).TriangleCount()
	}

	merged, err := geom.Merge(base, growth, bridge)
	if err != nil {
		return nil, stats, fmt.Errorf("merge: %w", err)
	}
	merged = geom.Weld(merged, p.WeldEpsilon)

	LockSeam(merged, seam, edge, p.SeamRadius)
	Roundness(merged, in.Attractor, seam, p)

	out := geom.Weld(merged, p.FinalWeldEpsilon)
	geom.FlipWinding(out)
	geom.VerticalGradient(out, p.BaseColor, p.RidgeColor)
	geom.ComputeNormals(out)
	return out, stats, nil
}

func requireMesh(stage string, b *geom.Buffer) error {
	if b == nil || len(b.Positions) == 0 {
		return fmt.Errorf("%s: %w", stage, ErrMissingInput)
	}
	if b.Kind != geom.Triangles || len(b.Indices) == 0 {
		return fmt.Errorf("%s: no index buffer: %w", stage, ErrMissingInput)
	}
	return nil
}
