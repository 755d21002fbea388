package bake

import (
	gomath "math"
	"sync"
	"testing"

	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/pkg/math"
)

func triangle() *geom.Buffer {
	b := geom.NewTriangles()
	b.AddVertex(math.Vec3{}, geom.Color{})
	b.AddVertex(math.Vec3{X: 1}, geom.Color{})
	b.AddVertex(math.Vec3{Z: 1}, geom.Color{})
	b.AddTriangle(0, 1, 2)
	geom.ComputeNormals(b)
	return b
}

func TestBakeTransforms(t *testing.T) {
	m := NewManager()
	src := triangle()
	c := m.Bake(src, math.Vec3{X: 5, Y: 1}, gomath.Pi/2)

	if c.ID == "" {
		t.Fatal("copy has no id")
	}
	// RotateY(pi/2) maps +X to -Z.
	want := math.Vec3{X: 5, Y: 1, Z: -1}
	if got := c.Mesh.Positions[1]; got.Distance(want) > 1e-9 {
		t.Errorf("vertex 1 = %v, want %v", got, want)
	}
	if src.Positions[1] != (math.Vec3{X: 1}) {
		t.Error("source buffer was modified")
	}
	if n := c.Mesh.Normals[0]; gomath.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("normal not unit length: %v", n)
	}
}

func TestListRemoveCombined(t *testing.T) {
	m := NewManager()
	a := m.Bake(triangle(), math.Vec3{}, 0)
	b := m.Bake(triangle(), math.Vec3{X: 3}, 0)
	if a.ID == b.ID {
		t.Fatal("ids must be unique")
	}

	all, err := m.Combined()
	if err != nil {
		t.Fatal(err)
	}
	if all.VertexCount() != 6 || all.TriangleCount() != 2 {
		t.Errorf("combined: %d vertices, %d triangles", all.VertexCount(), all.TriangleCount())
	}

	if !m.Remove(a.ID) {
		t.Error("Remove returned false for an existing copy")
	}
	if m.Remove(a.ID) {
		t.Error("Remove returned true twice")
	}
	list := m.List()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("unexpected list after remove: %v", list)
	}
}

func TestCombinedEmpty(t *testing.T) {
	if _, err := NewManager().Combined(); err == nil {
		t.Error("expected error with no copies")
	}
}

func TestConcurrentBake(t *testing.T) {
	m := NewManager()
	src := triangle()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Bake(src, math.Vec3{X: float64(i)}, 0)
		}()
	}
	wg.Wait()
	if m.Len() != 16 {
		t.Errorf("expected 16 copies, got %d", m.Len())
	}
}
