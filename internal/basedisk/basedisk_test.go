package basedisk

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/sheath/internal/attractor"
	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/pkg/math"
)

var testParams = Params{RingRadius: 1, Width: 1, RadialDivisions: 8, HeightDivisions: 4}

func far() attractor.Attractor {
	return attractor.Attractor{Center: math.Vec3{X: 100}, Radius: 0.5, FalloffWidth: 0.5}
}

// singleCell returns an attractor that cuts only quad (1, 0).
func singleCell() attractor.Attractor {
	angle := gomath.Pi / 8
	return attractor.Attractor{
		Center:       math.Vec3{X: gomath.Cos(angle), Y: -0.125, Z: gomath.Sin(angle)},
		Radius:       0.01,
		FalloffWidth: 0.01,
	}
}

func TestNoCutKeepsEverything(t *testing.T) {
	d := Build(testParams, far(), geom.Color{})

	if d.Fallback {
		t.Error("fallback should not trigger when nothing is cut")
	}
	if d.KeptCount != 32 {
		t.Errorf("expected 32 kept quads, got %d", d.KeptCount)
	}
	if len(d.Seam) != 0 {
		t.Errorf("expected empty seam, got %d points", len(d.Seam))
	}
	if d.Mesh.TriangleCount() != 64 {
		t.Errorf("expected 64 triangles, got %d", d.Mesh.TriangleCount())
	}
	if err := d.Mesh.Validate(); err != nil {
		t.Errorf("invalid mesh: %v", err)
	}
}

func TestKeepAllFallback(t *testing.T) {
	huge := attractor.Attractor{Radius: 50, FalloffWidth: 1}
	d := Build(testParams, huge, geom.Color{})

	if !d.Fallback {
		t.Error("expected fallback when every quad is cut")
	}
	want := testParams.RadialDivisions * testParams.HeightDivisions
	if d.KeptCount != want {
		t.Errorf("expected %d kept quads, got %d", want, d.KeptCount)
	}
	for h := range d.Keep {
		for r := range d.Keep[h] {
			if !d.Keep[h][r] {
				t.Fatalf("quad (%d,%d) not kept under fallback", h, r)
			}
		}
	}
	if d.Mesh.TriangleCount() != 2*want {
		t.Errorf("expected %d triangles, got %d", 2*want, d.Mesh.TriangleCount())
	}
}

func TestSingleCutCell(t *testing.T) {
	d := Build(testParams, singleCell(), geom.Color{})

	if d.Keep[1][0] {
		t.Fatal("quad (1,0) should be cut")
	}
	if d.KeptCount != 31 {
		t.Errorf("expected 31 kept quads, got %d", d.KeptCount)
	}
	if d.Mesh.TriangleCount() != 62 {
		t.Errorf("expected 62 triangles, got %d", d.Mesh.TriangleCount())
	}
	if len(d.Seam) != 4 {
		t.Fatalf("expected one seam point per edge of the hole, got %d", len(d.Seam))
	}

	// Every seam point is the midpoint of one of the hole's edges.
	c := d.Quads[1][0].Corners
	want := []math.Vec3{
		c[0].Midpoint(c[1]), c[1].Midpoint(c[2]), c[2].Midpoint(c[3]), c[3].Midpoint(c[0]),
	}
	for _, s := range d.Seam {
		found := false
		for _, w := range want {
			if s.Distance(w) < 1e-9 {
				found = true
			}
		}
		if !found {
			t.Errorf("seam point %v is not an edge midpoint of the hole", s)
		}
	}
}

func TestCutThreshold(t *testing.T) {
	d := Build(testParams, singleCell(), geom.Color{})
	for h, row := range d.Quads {
		for r, q := range row {
			if d.Keep[h][r] != (q.Influence <= CutThreshold) {
				t.Errorf("quad (%d,%d) influence %v kept=%v", h, r, q.Influence, d.Keep[h][r])
			}
		}
	}
}

func TestQuadsLieOnBand(t *testing.T) {
	d := Build(testParams, far(), geom.Color{})
	for _, row := range d.Quads {
		for _, q := range row {
			for _, c := range q.Corners {
				if r := gomath.Hypot(c.X, c.Z); gomath.Abs(r-1) > 1e-9 {
					t.Fatalf("corner %v off the band radius (%v)", c, r)
				}
				if c.Y < -0.5-1e-9 || c.Y > 0.5+1e-9 {
					t.Fatalf("corner %v outside band height", c)
				}
			}
		}
	}
}

func TestLinesMode(t *testing.T) {
	p := testParams
	p.Lines = true
	d := Build(p, far(), geom.Color{})

	if d.Mesh.Kind != geom.Lines {
		t.Fatalf("expected line buffer, got %v", d.Mesh.Kind)
	}
	// bottom+left per quad, plus the top row's top edges
	if got := d.Mesh.SegmentCount(); got != 2*32+8 {
		t.Errorf("expected 72 segments, got %d", got)
	}
	if err := d.Mesh.Validate(); err != nil {
		t.Errorf("invalid line buffer: %v", err)
	}
}

func TestDivisionFloors(t *testing.T) {
	d := Build(Params{RingRadius: 1, Width: 1}, far(), geom.Color{})
	if d.KeptCount != 3 {
		t.Errorf("expected 3x1 quads after flooring divisions, got %d", d.KeptCount)
	}
}
