package geom

import (
	"testing"

	"github.com/Faultbox/sheath/pkg/math"
)

func quad() *Buffer {
	b := NewTriangles()
	c := Color{R: 1}
	b.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0}, c)
	b.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0}, c)
	b.AddVertex(math.Vec3{X: 1, Y: 0, Z: 1}, c)
	b.AddVertex(math.Vec3{X: 0, Y: 0, Z: 1}, c)
	b.AddTriangle(0, 2, 1)
	b.AddTriangle(0, 3, 2)
	return b
}

func TestParseColor(t *testing.T) {
	c := ParseColor("#ff0080")
	if c.R != 1 || c.G != 0 {
		t.Errorf("unexpected colour %+v", c)
	}
	if c.B < 0.5 || c.B > 0.51 {
		t.Errorf("expected blue ~0.502, got %f", c.B)
	}
}

func TestColorLerp(t *testing.T) {
	got := Color{}.Lerp(Color{R: 1, G: 1, B: 1}, 0.25)
	if got != (Color{R: 0.25, G: 0.25, B: 0.25}) {
		t.Errorf("Lerp = %+v", got)
	}
}

func TestValidate(t *testing.T) {
	if err := quad().Validate(); err != nil {
		t.Fatalf("valid quad rejected: %v", err)
	}

	bad := quad()
	bad.Indices = append(bad.Indices, 0, 1, 9)
	if err := bad.Validate(); err == nil {
		t.Error("expected out-of-range index error")
	}

	lines := NewLines()
	lines.AddSegment(math.Vec3{}, math.UnitX, Color{}, Color{})
	if err := lines.Validate(); err != nil {
		t.Errorf("valid line buffer rejected: %v", err)
	}
	lines.Indices = []uint32{0, 1}
	if err := lines.Validate(); err == nil {
		t.Error("expected error for indexed line buffer")
	}
}

func TestMerge(t *testing.T) {
	a, b := quad(), quad()
	merged, err := Merge(a, nil, b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.VertexCount() != 8 || merged.TriangleCount() != 4 {
		t.Fatalf("expected 8 vertices and 4 triangles, got %d/%d", merged.VertexCount(), merged.TriangleCount())
	}
	if merged.Indices[6] != 4 {
		t.Errorf("second buffer indices should be offset by 4, got %d", merged.Indices[6])
	}
	if err := merged.Validate(); err != nil {
		t.Errorf("merged buffer invalid: %v", err)
	}

	if _, err := Merge(quad(), NewLines()); err == nil {
		t.Error("expected kind mismatch error")
	}
	if _, err := Merge(nil); err == nil {
		t.Error("expected error for no buffers")
	}
}

func TestWeld(t *testing.T) {
	merged, err := Merge(quad(), quad())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	welded := Weld(merged, 1e-6)

	if welded.VertexCount() != 4 {
		t.Errorf("expected 4 welded vertices, got %d", welded.VertexCount())
	}
	if welded.TriangleCount() != 4 {
		t.Errorf("expected triangles preserved, got %d", welded.TriangleCount())
	}
	if err := welded.Validate(); err != nil {
		t.Errorf("welded buffer invalid: %v", err)
	}
}

func TestWeldDropsCollapsedTriangles(t *testing.T) {
	b := NewTriangles()
	b.AddVertex(math.Vec3{}, Color{})
	b.AddVertex(math.Vec3{X: 1e-5}, Color{})
	b.AddVertex(math.Vec3{Y: 1}, Color{})
	b.AddTriangle(0, 1, 2)

	welded := Weld(b, 1e-3)
	if welded.TriangleCount() != 0 {
		t.Errorf("expected collapsed triangle to be dropped, got %d", welded.TriangleCount())
	}
}

func TestWeldRemovesUnreferenced(t *testing.T) {
	b := quad()
	b.AddVertex(math.Vec3{X: 9}, Color{R: 1})
	b.AddVertex(math.Vec3{X: 10}, Color{G: 1})

	welded := Weld(b, 1e-6)
	if welded.VertexCount() != 4 {
		t.Fatalf("expected 4 vertices, got %d", welded.VertexCount())
	}
	if err := welded.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCompact(t *testing.T) {
	b := NewTriangles()
	b.AddVertex(math.Vec3{X: 5}, Color{R: 1}) // unused
	b.AddVertex(math.Vec3{}, Color{})
	b.AddVertex(math.Vec3{X: 1}, Color{})
	b.AddVertex(math.Vec3{Z: 1}, Color{})
	b.AddTriangle(1, 3, 2)

	c := Compact(b)
	if c.VertexCount() != 3 || len(c.Colors) != 3 {
		t.Fatalf("expected 3 vertices with colours, got %d/%d", c.VertexCount(), len(c.Colors))
	}
	if c.Indices[0] != 0 || c.Indices[1] != 2 || c.Indices[2] != 1 {
		t.Errorf("indices = %v, want [0 2 1]", c.Indices)
	}
	if c.Positions[0] != (math.Vec3{}) {
		t.Errorf("vertex order not kept: %v", c.Positions)
	}
	if b.VertexCount() != 4 {
		t.Error("input was modified")
	}
}

func TestFlipWindingAndNormals(t *testing.T) {
	b := quad()
	ComputeNormals(b)
	// (0,2,1) winds counter-clockwise seen from +Y.
	if b.Normals[0].Distance(math.UnitY) > 1e-9 {
		t.Fatalf("expected +Y normal, got %v", b.Normals[0])
	}

	FlipWinding(b)
	ComputeNormals(b)
	if b.Normals[0].Distance(math.Vec3{Y: -1}) > 1e-9 {
		t.Errorf("expected -Y normal after flip, got %v", b.Normals[0])
	}
}

func TestVerticalGradient(t *testing.T) {
	b := NewTriangles()
	b.AddVertex(math.Vec3{Y: 0}, Color{})
	b.AddVertex(math.Vec3{Y: 1}, Color{})
	b.AddVertex(math.Vec3{Y: 2}, Color{})

	base, ridge := Color{}, Color{R: 1, G: 1, B: 1}
	VerticalGradient(b, base, ridge)

	if b.Colors[0] != base || b.Colors[2] != ridge {
		t.Errorf("gradient endpoints wrong: %+v", b.Colors)
	}
	if b.Colors[1].R != 0.5 {
		t.Errorf("expected mid colour 0.5, got %f", b.Colors[1].R)
	}
}

func TestBoundsAndClone(t *testing.T) {
	b := quad()
	bounds := b.Bounds()
	if bounds.Min != (math.Vec3{}) || bounds.Max != (math.Vec3{X: 1, Z: 1}) {
		t.Errorf("unexpected bounds %+v", bounds)
	}

	c := b.Clone()
	c.Positions[0] = math.Vec3{X: 9}
	if b.Positions[0] == c.Positions[0] {
		t.Error("Clone shares position storage")
	}
}
