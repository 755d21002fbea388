// Package assemble turns a sequence of grown rings into renderable geometry.
package assemble

import (
	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/internal/growth"
)

// VisibleThreshold is the mask value a point must exceed to contribute
// triangles or line segments.
const VisibleThreshold = 0.02

// ringColor returns the colour of ring i out of n before masking.
func ringColor(i, n int, base, ridge geom.Color) geom.Color {
	if n < 2 {
		return base
	}
	return base.Lerp(ridge, float64(i)/float64(n-1))
}

// Mesh builds an indexed triangle buffer with one vertex per ring point.
// Consecutive rings are joined by quads split into two triangles; a quad is
// skipped when none of its corners is visible. All rings must have the same
// length.
func Mesh(rings []growth.Ring, base, ridge geom.Color) *geom.Buffer {
	b := geom.NewTriangles()
	if len(rings) == 0 {
		return b
	}
	segs := rings[0].Len()
	for i, r := range rings {
		c := ringColor(i, len(rings), base, ridge)
		for j, p := range r.Points {
			b.AddVertex(p, c.Scale(r.Mask[j]))
		}
	}

	for i := 0; i+1 < len(rings); i++ {
		cur, next := rings[i], rings[i+1]
		for j := range segs {
			k := (j + 1) % segs
			if !visible(cur.Mask[j], cur.Mask[k], next.Mask[j], next.Mask[k]) {
				continue
			}
			a := uint32(i*segs + j)
			bb := uint32(i*segs + k)
			c := uint32((i+1)*segs + j)
			d := uint32((i+1)*segs + k)
			b.AddTriangle(a, bb, c)
			b.AddTriangle(bb, d, c)
		}
	}
	return b
}

// Lines builds a line buffer with ring edges and edges between consecutive
// rings, keeping only segments whose both endpoints are visible.
func Lines(rings []growth.Ring, base, ridge geom.Color) *geom.Buffer {
	b := geom.NewLines()
	for i, r := range rings {
		segs := r.Len()
		c := ringColor(i, len(rings), base, ridge)
		for j := range segs {
			k := (j + 1) % segs
			if r.Mask[j] > VisibleThreshold && r.Mask[k] > VisibleThreshold {
				b.AddSegment(r.Points[j], r.Points[k], c.Scale(r.Mask[j]), c.Scale(r.Mask[k]))
			}
			if i+1 >= len(rings) {
				continue
			}
			next := rings[i+1]
			if r.Mask[j] > VisibleThreshold && next.Mask[j] > VisibleThreshold {
				nc := ringColor(i+1, len(rings), base, ridge)
				b.AddSegment(r.Points[j], next.Points[j], c.Scale(r.Mask[j]), nc.Scale(next.Mask[j]))
			}
		}
	}
	return b
}

func visible(masks ...float64) bool {
	for _, m := range masks {
		if m > VisibleThreshold {
			return true
		}
	}
	return false
}
