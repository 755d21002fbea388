package assemble

import (
	"testing"

	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/internal/growth"
	"github.com/Faultbox/sheath/pkg/math"
)

var (
	black = geom.Color{}
	white = geom.Color{R: 1, G: 1, B: 1}
)

func square(y float64, mask float64) growth.Ring {
	pts := []math.Vec3{{X: 1, Y: y}, {Z: 1, Y: y}, {X: -1, Y: y}, {Z: -1, Y: y}}
	return growth.NewRing(pts, []float64{mask, mask, mask, mask})
}

func TestMeshCounts(t *testing.T) {
	rings := []growth.Ring{square(0, 1), square(1, 1), square(2, 1)}
	b := Mesh(rings, black, white)
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	if b.VertexCount() != 12 {
		t.Errorf("expected 12 vertices, got %d", b.VertexCount())
	}
	if b.TriangleCount() != 16 {
		t.Errorf("expected 16 triangles, got %d", b.TriangleCount())
	}
}

func TestMeshColors(t *testing.T) {
	rings := []growth.Ring{square(0, 1), square(1, 0.5), square(2, 1)}
	b := Mesh(rings, black, white)

	// Ring 1 sits halfway through the gradient and is scaled by its mask.
	got := b.Colors[4]
	if got.R != 0.25 || got.G != 0.25 || got.B != 0.25 {
		t.Errorf("ring 1 colour = %+v, want 0.25 grey", got)
	}
	if b.Colors[8] != white {
		t.Errorf("tip colour = %+v, want white", b.Colors[8])
	}
}

func TestMeshSkipsInvisibleQuads(t *testing.T) {
	hidden := square(1, 0.01)
	rings := []growth.Ring{square(0, 0), hidden}
	if got := Mesh(rings, black, white).TriangleCount(); got != 0 {
		t.Errorf("expected no triangles, got %d", got)
	}

	// One visible corner is enough to keep the two quads that touch it.
	hidden.Mask[2] = 0.5
	if got := Mesh(rings, black, white).TriangleCount(); got != 4 {
		t.Errorf("expected 4 triangles, got %d", got)
	}
}

func TestLines(t *testing.T) {
	rings := []growth.Ring{square(0, 1), square(1, 1)}
	b := Lines(rings, black, white)
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	// 4 edges per ring plus 4 between the rings.
	if b.SegmentCount() != 12 {
		t.Errorf("expected 12 segments, got %d", b.SegmentCount())
	}

	rings[1].Mask[0] = 0
	// Drops two ring edges and one connecting edge.
	if got := Lines(rings, black, white).SegmentCount(); got != 9 {
		t.Errorf("expected 9 segments, got %d", got)
	}
}

func TestEmpty(t *testing.T) {
	if b := Mesh(nil, black, white); b.VertexCount() != 0 || b.Kind != geom.Triangles {
		t.Errorf("unexpected buffer %+v", b)
	}
	if b := Lines(nil, black, white); b.VertexCount() != 0 || b.Kind != geom.Lines {
		t.Errorf("unexpected buffer %+v", b)
	}
}
