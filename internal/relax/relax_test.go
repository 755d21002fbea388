package relax

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/sheath/internal/growth"
	"github.com/Faultbox/sheath/pkg/math"
)

func near(a, b float64) bool {
	return gomath.Abs(a-b) < 1e-9
}

func TestGentleRepel(t *testing.T) {
	a := math.Vec3{X: 0.05}
	b := math.Vec3{}

	tests := []struct {
		name    string
		a, b    math.Vec3
		minDist float64
		rng     float64
		want    float64 // expected push along +X
	}{
		{"outside range", math.Vec3{X: 0.2}, b, 0.03, 0.1, 0},
		{"at range", math.Vec3{X: 0.1}, b, 0.03, 0.1, 0},
		{"coincident", b, b, 0.03, 0.1, 0},
		{"falloff only", a, b, 0.03, 0.1, 0.25 * 0.1 * 0.25},
		{"with min distance term", math.Vec3{X: 0.02}, b, 0.03, 0.1, 0.64*0.1*0.25 + 0.01*0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GentleRepel(tt.a, tt.b, tt.minDist, tt.rng, 1)
			if !near(got.X, tt.want) || got.Y != 0 || got.Z != 0 {
				t.Errorf("push = %v, want (%v,0,0)", got, tt.want)
			}
		})
	}

	// Closer pairs are pushed harder.
	farPush := GentleRepel(math.Vec3{X: 0.06}, b, 0.03, 0.1, 1).Length()
	nearPush := GentleRepel(math.Vec3{X: 0.01}, b, 0.03, 0.1, 1).Length()
	if nearPush <= farPush {
		t.Errorf("closer push %v should exceed farther push %v", nearPush, farPush)
	}

	// Direction is away from b.
	if p := GentleRepel(math.Vec3{Z: -0.01}, b, 0.03, 0.1, 1); p.Z >= 0 {
		t.Errorf("push %v should point away from b", p)
	}
}

// crowdedRing has two points much closer together than the rest.
func crowdedRing() growth.Ring {
	pts := []math.Vec3{
		{X: 1, Y: 0.5, Z: 0},
		{X: 1, Y: 0.5, Z: 0.01},
		{X: 1, Y: 0.5, Z: 0.5},
		{X: 1, Y: 0, Z: 0.5},
		{X: 1, Y: 0, Z: 0},
	}
	return growth.NewRing(pts, nil)
}

func farPrev() growth.Ring {
	pts := make([]math.Vec3, 5)
	for i := range pts {
		pts[i] = math.Vec3{X: 10, Y: float64(i)}
	}
	return growth.NewRing(pts, nil)
}

func TestGentleRelaxNoOp(t *testing.T) {
	for _, o := range []Options{
		{MinDistance: 0.03, Range: 0.08, Strength: 0, Iterations: 4},
		{MinDistance: 0.03, Range: 0.08, Strength: 0.5, Iterations: 0},
	} {
		ring := crowdedRing()
		want := crowdedRing()
		GentleRelax(&ring, farPrev(), o)
		for j := range want.Points {
			if ring.Points[j] != want.Points[j] {
				t.Errorf("%+v: point %d moved", o, j)
			}
		}
		if ring.Centroid != want.Centroid {
			t.Errorf("%+v: centroid changed", o)
		}
	}
}

func TestGentleRelaxSeparates(t *testing.T) {
	ring := crowdedRing()
	before := ring.Points[0].Distance(ring.Points[1])
	GentleRelax(&ring, farPrev(), Options{MinDistance: 0.03, Range: 0.08, Strength: 0.5, Iterations: 3})
	after := ring.Points[0].Distance(ring.Points[1])
	if after <= before {
		t.Errorf("spacing did not grow: %v -> %v", before, after)
	}
	// Isolated points are untouched.
	if ring.Points[3] != (math.Vec3{X: 1, Y: 0, Z: 0.5}) {
		t.Errorf("isolated point moved to %v", ring.Points[3])
	}
}

func TestGentleRelaxPrevRepels(t *testing.T) {
	ring := growth.NewRing([]math.Vec3{{X: 0.02}, {X: 5}, {Z: 5}}, nil)
	prev := growth.NewRing([]math.Vec3{{}, {X: 5, Y: 9}, {Z: 5, Y: 9}}, nil)
	prevCopy := prev.Clone()

	GentleRelax(&ring, prev, Options{MinDistance: 0.03, Range: 0.08, Strength: 1, Iterations: 1})

	if ring.Points[0].Distance(math.Vec3{}) <= 0.02 {
		t.Errorf("point was not pushed away from the previous ring: %v", ring.Points[0])
	}
	for j := range prev.Points {
		if prev.Points[j] != prevCopy.Points[j] {
			t.Errorf("previous ring point %d moved", j)
		}
	}
}

func TestGentleRelaxAnchorsUngrown(t *testing.T) {
	ring := growth.NewRing([]math.Vec3{{X: 1}, {X: 1, Z: 0.01}, {Z: 3}}, []float64{0.01, 1, 1})
	GentleRelax(&ring, farPrev(), Options{MinDistance: 0.03, Range: 0.08, Strength: 1, Iterations: 2})
	if ring.Points[0] != (math.Vec3{X: 1}) {
		t.Errorf("ungrown point moved to %v", ring.Points[0])
	}
	if ring.Points[1] == (math.Vec3{X: 1, Z: 0.01}) {
		t.Error("grown point should have been pushed")
	}
}

func TestGentleRelaxKeepsRadialDistance(t *testing.T) {
	n := 32
	pts := make([]math.Vec3, n)
	for i := range n {
		a := 2 * gomath.Pi * float64(i) / float64(n)
		pts[i] = math.Vec3{X: 0.1 * gomath.Cos(a), Z: 0.1 * gomath.Sin(a)}
	}
	ring := growth.NewRing(pts, nil)
	c := ring.Centroid
	GentleRelax(&ring, farPrev(), Options{MinDistance: 0.03, Range: 0.08, Strength: 1, Iterations: 3})
	for j, p := range ring.Points {
		if p.Distance(c) < 0.1-1e-9 {
			t.Errorf("point %d collapsed toward the centroid: %v", j, p.Distance(c))
		}
	}
}

// stack returns rings stacked along Y, each a circle of n points.
func stack(count, n int, spacing float64) []growth.Ring {
	rings := make([]growth.Ring, count)
	for r := range count {
		pts := make([]math.Vec3, n)
		for i := range n {
			a := 2 * gomath.Pi * float64(i) / float64(n)
			pts[i] = math.Vec3{X: gomath.Cos(a), Y: float64(r) * spacing, Z: gomath.Sin(a)}
		}
		rings[r] = growth.NewRing(pts, nil)
	}
	return rings
}

func snapshot(rings []growth.Ring) []growth.Ring {
	out := make([]growth.Ring, len(rings))
	for i, r := range rings {
		out[i] = r.Clone()
	}
	return out
}

func TestGlobalRelaxNoOp(t *testing.T) {
	for _, o := range []Options{
		{MinDistance: 0.035, Range: 0.07, Strength: 0, Iterations: 2},
		{MinDistance: 0.035, Range: 0.07, Strength: 0.35, Iterations: 0},
	} {
		rings := stack(4, 8, 0.01)
		want := snapshot(rings)
		ApplyGlobalRelax(rings, o, 140)
		for r := range rings {
			for j := range rings[r].Points {
				if rings[r].Points[j] != want[r].Points[j] {
					t.Fatalf("%+v: ring %d point %d moved", o, r, j)
				}
			}
		}
	}
}

func TestGlobalRelaxAdjacentExempt(t *testing.T) {
	// Two rings close together only ever see their adjacent neighbours.
	rings := stack(2, 8, 0.01)
	want := snapshot(rings)
	ApplyGlobalRelax(rings, Options{MinDistance: 0.035, Range: 0.07, Strength: 1, Iterations: 2}, 140)
	for r := range rings {
		for j := range rings[r].Points {
			if rings[r].Points[j] != want[r].Points[j] {
				t.Fatalf("ring %d point %d moved", r, j)
			}
		}
	}
}

func TestGlobalRelaxSeparatesDistantRings(t *testing.T) {
	rings := stack(3, 8, 0.01)
	want := snapshot(rings)
	ApplyGlobalRelax(rings, Options{MinDistance: 0.035, Range: 0.07, Strength: 1, Iterations: 1}, 140)

	for j := range rings[0].Points {
		if rings[0].Points[j] != want[0].Points[j] {
			t.Fatalf("ring 0 point %d moved", j)
		}
	}
	// Ring 2 is pushed away from ring 0 along +Y.
	for j := range rings[2].Points {
		if rings[2].Points[j].Y <= want[2].Points[j].Y {
			t.Errorf("ring 2 point %d not pushed up: %v", j, rings[2].Points[j])
		}
	}
}

func TestGlobalRelaxSkipsMaskedPoints(t *testing.T) {
	rings := stack(3, 8, 0.01)
	for j := range rings[2].Mask {
		rings[2].Mask[j] = 0.01
	}
	want := snapshot(rings)
	ApplyGlobalRelax(rings, Options{MinDistance: 0.035, Range: 0.07, Strength: 1, Iterations: 1}, 140)
	for j := range rings[2].Points {
		if rings[2].Points[j] != want[2].Points[j] {
			t.Errorf("masked point %d moved", j)
		}
	}
}

func TestExempt(t *testing.T) {
	tests := []struct {
		ra, ia, rb, ib int
		want           bool
	}{
		{1, 0, 1, 1, true},
		{1, 0, 2, 7, true}, // wraps
		{1, 0, 2, 2, false},
		{1, 0, 3, 0, false},
		{1, 4, 0, 4, true},
	}
	for _, tt := range tests {
		if got := exempt(tt.ra, tt.ia, tt.rb, tt.ib, 8); got != tt.want {
			t.Errorf("exempt(%d,%d,%d,%d) = %v, want %v", tt.ra, tt.ia, tt.rb, tt.ib, got, tt.want)
		}
	}
}
