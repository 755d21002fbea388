// Package geom holds the geometry buffers exchanged between pipeline stages
// and the operations that act on whole buffers.
package geom

import (
	"fmt"

	"github.com/Faultbox/sheath/pkg/math"
)

// Kind tags what a Buffer's vertex stream means.
type Kind int

const (
	// Triangles buffers are indexed triangle lists.
	Triangles Kind = iota
	// Lines buffers hold consecutive position pairs, one segment per pair.
	Lines
)

func (k Kind) String() string {
	switch k {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Buffer is a renderable geometry buffer. Colors and Normals are either empty
// or parallel to Positions. Indices is used only by Triangles buffers.
type Buffer struct {
	Kind      Kind
	Positions []math.Vec3
	Colors    []Color
	Normals   []math.Vec3
	Indices   []uint32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Midpoint(b.Max)
}

// NewTriangles returns an empty indexed triangle buffer.
func NewTriangles() *Buffer {
	return &Buffer{Kind: Triangles}
}

// NewLines returns an empty line-segment buffer.
func NewLines() *Buffer {
	return &Buffer{Kind: Lines}
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Positions)
}

// TriangleCount returns the number of triangles, zero for line buffers.
func (b *Buffer) TriangleCount() int {
	if b.Kind != Triangles {
		return 0
	}
	return len(b.Indices) / 3
}

// SegmentCount returns the number of line segments, zero for triangle buffers.
func (b *Buffer) SegmentCount() int {
	if b.Kind != Lines {
		return 0
	}
	return len(b.Positions) / 2
}

// AddVertex appends a vertex and returns its index.
func (b *Buffer) AddVertex(p math.Vec3, c Color) uint32 {
	b.Positions = append(b.Positions, p)
	b.Colors = append(b.Colors, c)
	return uint32(len(b.Positions) - 1)
}

// AddTriangle appends one triangle by vertex index.
func (b *Buffer) AddTriangle(i0, i1, i2 uint32) {
	b.Indices = append(b.Indices, i0, i1, i2)
}

// AddSegment appends one line segment.
func (b *Buffer) AddSegment(p0, p1 math.Vec3, c0, c1 Color) {
	b.Positions = append(b.Positions, p0, p1)
	b.Colors = append(b.Colors, c0, c1)
}

// Validate checks the buffer invariants.
func (b *Buffer) Validate() error {
	n := len(b.Positions)
	if len(b.Colors) != 0 && len(b.Colors) != n {
		return fmt.Errorf("%d colors for %d vertices", len(b.Colors), n)
	}
	if len(b.Normals) != 0 && len(b.Normals) != n {
		return fmt.Errorf("%d normals for %d vertices", len(b.Normals), n)
	}
	switch b.Kind {
	case Triangles:
		if len(b.Indices)%3 != 0 {
			return fmt.Errorf("index count %d is not a multiple of 3", len(b.Indices))
		}
		for i, idx := range b.Indices {
			if int(idx) >= n {
				return fmt.Errorf("index %d at %d out of range (%d vertices)", idx, i, n)
			}
		}
	case Lines:
		if n%2 != 0 {
			return fmt.Errorf("odd vertex count %d in line buffer", n)
		}
		if len(b.Indices) != 0 {
			return fmt.Errorf("line buffer carries %d indices", len(b.Indices))
		}
	default:
		return fmt.Errorf("unknown buffer kind %v", b.Kind)
	}
	return nil
}

// Bounds returns the bounding box of all positions. An empty buffer yields a
// zero box.
func (b *Buffer) Bounds() Bounds {
	if len(b.Positions) == 0 {
		return Bounds{}
	}
	bounds := Bounds{Min: b.Positions[0], Max: b.Positions[0]}
	for _, p := range b.Positions[1:] {
		updateBounds(&bounds, p)
	}
	return bounds
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	return &Buffer{
		Kind:      b.Kind,
		Positions: append([]math.Vec3(nil), b.Positions...),
		Colors:    append([]Color(nil), b.Colors...),
		Normals:   append([]math.Vec3(nil), b.Normals...),
		Indices:   append([]uint32(nil), b.Indices...),
	}
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
