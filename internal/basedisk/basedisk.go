// Package basedisk builds the cylindrical base the sheath grows from. The
// attractor cuts a window into it; the window's rim becomes the seam.
package basedisk

import (
	gomath "math"

	"github.com/Faultbox/sheath/internal/attractor"
	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/internal/resample"
	"github.com/Faultbox/sheath/pkg/math"
)

// CutThreshold is the selection influence above which a quad is removed.
const CutThreshold = 0.01

// seamQuantum is the grid used to deduplicate seam points.
const seamQuantum = 1e-6

// Params describes the base band.
type Params struct {
	RingRadius      float64
	Width           float64
	RadialDivisions int
	HeightDivisions int
	Lines           bool // emit quad edges instead of triangles
}

// Quad is one cell of the band. Corners are ordered bottom-left,
// bottom-right, top-right, top-left, walking around the Y axis
// counter-clockwise seen from above.
type Quad struct {
	Corners   [4]math.Vec3
	Center    math.Vec3
	Influence float64
}

// Disk is the classified base band and everything derived from it.
type Disk struct {
	Params Params

	// Quads and Keep are indexed [height][radial].
	Quads [][]Quad
	Keep  [][]bool

	KeptCount int
	Fallback  bool // no quad survived the cut, so all were kept

	Mesh *geom.Buffer
	Seam []math.Vec3 // deduplicated, ordered by angle around its centroid
}

// Build classifies the band against the attractor and emits geometry for the
// kept quads.
func Build(p Params, a attractor.Attractor, color geom.Color) *Disk {
	if p.RadialDivisions < 3 {
		p.RadialDivisions = 3
	}
	if p.HeightDivisions < 1 {
		p.HeightDivisions = 1
	}

	d := &Disk{Params: p}
	d.buildQuads(a)
	d.classify()
	if p.Lines {
		d.Mesh = d.emitLines(color)
	} else {
		d.Mesh = d.emitTriangles(color)
	}
	d.Seam = resample.OrderByAngle(d.collectSeam())
	return d
}

func (d *Disk) buildQuads(a attractor.Attractor) {
	p := d.Params
	corner := func(h, r int) math.Vec3 {
		angle := 2 * gomath.Pi * float64(r) / float64(p.RadialDivisions)
		y := -p.Width/2 + p.Width*float64(h)/float64(p.HeightDivisions)
		return math.Vec3{X: p.RingRadius * gomath.Cos(angle), Y: y, Z: p.RingRadius * gomath.Sin(angle)}
	}

	d.Quads = make([][]Quad, p.HeightDivisions)
	for h := range p.HeightDivisions {
		d.Quads[h] = make([]Quad, p.RadialDivisions)
		for r := range p.RadialDivisions {
			midAngle := 2 * gomath.Pi * (float64(r) + 0.5) / float64(p.RadialDivisions)
			midY := -p.Width/2 + p.Width*(float64(h)+0.5)/float64(p.HeightDivisions)
			center := math.Vec3{X: p.RingRadius * gomath.Cos(midAngle), Y: midY, Z: p.RingRadius * gomath.Sin(midAngle)}

			d.Quads[h][r] = Quad{
				Corners:   [4]math.Vec3{corner(h, r), corner(h, r+1), corner(h+1, r+1), corner(h+1, r)},
				Center:    center,
				Influence: a.Selection(center),
			}
		}
	}
}

func (d *Disk) classify() {
	d.Keep = make([][]bool, len(d.Quads))
	d.KeptCount = 0
	for h, row := range d.Quads {
		d.Keep[h] = make([]bool, len(row))
		for r, q := range row {
			if q.Influence <= CutThreshold {
				d.Keep[h][r] = true
				d.KeptCount++
			}
		}
	}
	if d.KeptCount > 0 {
		return
	}

	d.Fallback = true
	for h := range d.Keep {
		for r := range d.Keep[h] {
			d.Keep[h][r] = true
		}
		d.KeptCount += len(d.Keep[h])
	}
}

// kept reports whether cell (h, r) is kept. Radial indices wrap; height
// indices outside the band count as kept so the band edges are not seams.
func (d *Disk) kept(h, r int) bool {
	if h < 0 || h >= len(d.Keep) {
		return true
	}
	n := d.Params.RadialDivisions
	return d.Keep[h][((r%n)+n)%n]
}

// emitTriangles writes two triangles per kept quad. Triangles are wound
// clockwise seen from outside the band; the refinement pass flips the merged
// mesh.
func (d *Disk) emitTriangles(color geom.Color) *geom.Buffer {
	b := geom.NewTriangles()
	for h, row := range d.Quads {
		for r, q := range row {
			if !d.Keep[h][r] {
				continue
			}
			i0 := b.AddVertex(q.Corners[0], color)
			i1 := b.AddVertex(q.Corners[1], color)
			i2 := b.AddVertex(q.Corners[2], color)
			i3 := b.AddVertex(q.Corners[3], color)
			b.AddTriangle(i0, i1, i3)
			b.AddTriangle(i1, i2, i3)
		}
	}
	return b
}

// emitLines writes the bottom and left edge of every kept quad, plus its top
// and right edges where no kept quad will draw them.
func (d *Disk) emitLines(color geom.Color) *geom.Buffer {
	b := geom.NewLines()
	top := len(d.Quads) - 1
	for h, row := range d.Quads {
		for r, q := range row {
			if !d.Keep[h][r] {
				continue
			}
			c := q.Corners
			b.AddSegment(c[0], c[1], color, color)
			b.AddSegment(c[0], c[3], color, color)
			if h == top || !d.Keep[h+1][r] {
				b.AddSegment(c[3], c[2], color, color)
			}
			if !d.kept(h, r+1) {
				b.AddSegment(c[1], c[2], color, color)
			}
		}
	}
	return b
}

// collectSeam returns the midpoint of every edge shared by a kept quad and a
// cut quad, deduplicated by quantized position, in scan order.
func (d *Disk) collectSeam() []math.Vec3 {
	seen := make(map[[3]int64]bool)
	var seam []math.Vec3
	add := func(a, b math.Vec3) {
		m := a.Midpoint(b)
		key := [3]int64{
			int64(gomath.Round(m.X / seamQuantum)),
			int64(gomath.Round(m.Y / seamQuantum)),
			int64(gomath.Round(m.Z / seamQuantum)),
		}
		if seen[key] {
			return
		}
		seen[key] = true
		seam = append(seam, m)
	}

	for h, row := range d.Quads {
		for r, q := range row {
			if !d.Keep[h][r] {
				continue
			}
			c := q.Corners
			if !d.kept(h-1, r) {
				add(c[0], c[1])
			}
			if !d.kept(h+1, r) {
				add(c[3], c[2])
			}
			if !d.kept(h, r-1) {
				add(c[0], c[3])
			}
			if !d.kept(h, r+1) {
				add(c[1], c[2])
			}
		}
	}
	return seam
}
