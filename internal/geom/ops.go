package geom

import (
	"fmt"

	"github.com/Faultbox/sheath/internal/spatial"
	"github.com/Faultbox/sheath/pkg/math"
)

var white = Color{R: 1, G: 1, B: 1}

// Merge concatenates buffers of the same kind into a new buffer, offsetting
// indices. Nil buffers are skipped. Normals are kept only when every input
// has them; missing colours are filled with white.
func Merge(bufs ...*Buffer) (*Buffer, error) {
	var out *Buffer
	keepNormals := true
	for _, b := range bufs {
		if b == nil {
			continue
		}
		if out == nil {
			out = &Buffer{Kind: b.Kind}
		} else if b.Kind != out.Kind {
			return nil, fmt.Errorf("merge %v into %v buffer", b.Kind, out.Kind)
		}
		if len(b.Normals) != len(b.Positions) {
			keepNormals = false
		}
	}
	if out == nil {
		return nil, fmt.Errorf("merge: no buffers")
	}

	for _, b := range bufs {
		if b == nil {
			continue
		}
		offset := uint32(len(out.Positions))
		out.Positions = append(out.Positions, b.Positions...)
		if len(b.Colors) == len(b.Positions) {
			out.Colors = append(out.Colors, b.Colors...)
		} else {
			for range b.Positions {
				out.Colors = append(out.Colors, white)
			}
		}
		if keepNormals {
			out.Normals = append(out.Normals, b.Normals...)
		}
		for _, idx := range b.Indices {
			out.Indices = append(out.Indices, idx+offset)
		}
	}
	return out, nil
}

// Weld merges vertices closer than eps into the first vertex seen and remaps
// indices. Triangles that collapse to fewer than three distinct vertices are
// dropped, then vertices no triangle references are removed. Line buffers are returned as a clone with zero-length segments
// removed.
func Weld(b *Buffer, eps float64) *Buffer {
	if b.Kind == Lines {
		return weldLines(b, eps)
	}

	grid := spatial.NewGrid(eps)
	remap := make([]uint32, len(b.Positions))
	out := &Buffer{Kind: Triangles}
	hasColors := len(b.Colors) == len(b.Positions)
	hasNormals := len(b.Normals) == len(b.Positions)

	for i, p := range b.Positions {
		if e, _, ok := grid.Nearest(p, eps); ok {
			remap[i] = uint32(e.ID)
			continue
		}
		id := len(out.Positions)
		out.Positions = append(out.Positions, p)
		if hasColors {
			out.Colors = append(out.Colors, b.Colors[i])
		}
		if hasNormals {
			out.Normals = append(out.Normals, b.Normals[i])
		}
		grid.Insert(spatial.Entry{Pos: p, ID: id})
		remap[i] = uint32(id)
	}

	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0, i1, i2 := remap[b.Indices[t]], remap[b.Indices[t+1]], remap[b.Indices[t+2]]
		if i0 == i1 || i1 == i2 || i0 == i2 {
			continue
		}
		out.Indices = append(out.Indices, i0, i1, i2)
	}
	return Compact(out)
}

// Compact returns a copy of a triangle buffer without the vertices that no
// triangle references. Line buffers are returned as a clone.
func Compact(b *Buffer) *Buffer {
	if b.Kind == Lines {
		return b.Clone()
	}
	hasColors := len(b.Colors) == len(b.Positions)
	hasNormals := len(b.Normals) == len(b.Positions)

	used := make([]bool, len(b.Positions))
	for _, idx := range b.Indices {
		used[idx] = true
	}
	remap := make([]uint32, len(b.Positions))
	out := &Buffer{Kind: Triangles, Indices: make([]uint32, len(b.Indices))}
	for i, p := range b.Positions {
		if !used[i] {
			continue
		}
		remap[i] = uint32(len(out.Positions))
		out.Positions = append(out.Positions, p)
		if hasColors {
			out.Colors = append(out.Colors, b.Colors[i])
		}
		if hasNormals {
			out.Normals = append(out.Normals, b.Normals[i])
		}
	}
	for k, idx := range b.Indices {
		out.Indices[k] = remap[idx]
	}
	return out
}

// FlipWinding reverses the orientation of every triangle in place.
func FlipWinding(b *Buffer) {
	for t := 0; t+2 < len(b.Indices); t += 3 {
		b.Indices[t+1], b.Indices[t+2] = b.Indices[t+2], b.Indices[t+1]
	}
}

// ComputeNormals recomputes area-weighted vertex normals. Vertices that touch
// no triangle get +Y.
func ComputeNormals(b *Buffer) {
	normals := make([]math.Vec3, len(b.Positions))
	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0, i1, i2 := b.Indices[t], b.Indices[t+1], b.Indices[t+2]
		p0 := b.Positions[i0]
		// Unnormalized cross product weights by twice the triangle area.
		n := b.Positions[i1].Sub(p0).Cross(b.Positions[i2].Sub(p0))
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}
	for i, n := range normals {
		if n.Length() < 1e-12 {
			normals[i] = math.UnitY
			continue
		}
		normals[i] = n.Normalize()
	}
	b.Normals = normals
}

// VerticalGradient recolours every vertex by its height within the buffer's
// bounding box, from base at the bottom to ridge at the top.
func VerticalGradient(b *Buffer, base, ridge Color) {
	bounds := b.Bounds()
	height := bounds.Max.Y - bounds.Min.Y
	colors := make([]Color, len(b.Positions))
	for i, p := range b.Positions {
		t := 0.0
		if height > 1e-12 {
			t = (p.Y - bounds.Min.Y) / height
		}
		colors[i] = base.Lerp(ridge, t)
	}
	b.Colors = colors
}
