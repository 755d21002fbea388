package refine

import (
	gomath "math"

	"github.com/Faultbox/sheath/internal/attractor"
	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/internal/spatial"
	"github.com/Faultbox/sheath/pkg/math"
)

// Laplacian moves every vertex toward the mean of the vertices it shares a
// triangle edge with, by rate per iteration. Vertices without neighbours stay
// where they are.
func Laplacian(b *geom.Buffer, iterations int, rate float64) {
	if iterations <= 0 || len(b.Indices) == 0 {
		return
	}
	neighbors := adjacency(b)
	next := make([]math.Vec3, len(b.Positions))
	for range iterations {
		for i, p := range b.Positions {
			ns := neighbors[i]
			if len(ns) == 0 {
				next[i] = p
				continue
			}
			var sum math.Vec3
			for _, n := range ns {
				sum = sum.Add(b.Positions[n])
			}
			avg := sum.Scale(1 / float64(len(ns)))
			next[i] = p.Lerp(avg, rate)
		}
		copy(b.Positions, next)
	}
}

// adjacency returns the unique neighbours of every vertex in first-seen order.
func adjacency(b *geom.Buffer) [][]uint32 {
	sets := make([]map[uint32]struct{}, len(b.Positions))
	lists := make([][]uint32, len(b.Positions))
	link := func(a, c uint32) {
		if sets[a] == nil {
			sets[a] = make(map[uint32]struct{})
		}
		if _, ok := sets[a][c]; ok {
			return
		}
		sets[a][c] = struct{}{}
		lists[a] = append(lists[a], c)
	}
	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0, i1, i2 := b.Indices[t], b.Indices[t+1], b.Indices[t+2]
		link(i0, i1)
		link(i0, i2)
		link(i1, i0)
		link(i1, i2)
		link(i2, i0)
		link(i2, i1)
	}
	return lists
}

// Stitch moves every growth vertex that has a base vertex within radius, and
// that base vertex, to their midpoint.
func Stitch(growth, base *geom.Buffer, radius float64) {
	if radius <= 0 || len(base.Positions) == 0 {
		return
	}
	entries := make([]spatial.Entry, len(base.Positions))
	for i, p := range base.Positions {
		entries[i] = spatial.Entry{Pos: p, ID: i}
	}
	grid := spatial.Build(entries, radius)

	for i, p := range growth.Positions {
		e, _, ok := grid.Nearest(p, radius)
		if !ok {
			continue
		}
		mid := p.Midpoint(e.Pos)
		growth.Positions[i] = mid
		base.Positions[e.ID] = mid
	}
}

// Bridge lofts rings between from and to, which must have equal length, and
// joins consecutive rings with triangle strips. The first ring equals from
// and the last equals to. Fewer than two rings are raised to two. It returns
// nil when the rings cannot be joined.
func Bridge(from, to []math.Vec3, rings int, start, end geom.Color) *geom.Buffer {
	segs := len(from)
	if segs < 2 || len(to) != segs {
		return nil
	}
	rings = max(rings, 2)

	b := geom.NewTriangles()
	for r := range rings {
		t := float64(r) / float64(rings-1)
		c := start.Lerp(end, t)
		for j := range segs {
			var p math.Vec3
			switch r {
			case 0:
				p = from[j]
			case rings - 1:
				p = to[j]
			default:
				p = from[j].Lerp(to[j], t)
			}
			b.AddVertex(p, c)
		}
	}

	for r := 0; r+1 < rings; r++ {
		for j := range segs {
			k := (j + 1) % segs
			a := uint32(r*segs + j)
			bb := uint32(r*segs + k)
			c := uint32((r+1)*segs + j)
			d := uint32((r+1)*segs + k)
			b.AddTriangle(a, bb, c)
			b.AddTriangle(bb, d, c)
		}
	}
	return b
}

// TrackRing returns the index of the vertex of b within eps of each ring
// point, or -1 when b has none.
func TrackRing(b *geom.Buffer, ring []math.Vec3, eps float64) []int {
	entries := make([]spatial.Entry, len(b.Positions))
	for i, p := range b.Positions {
		entries[i] = spatial.Entry{Pos: p, ID: i}
	}
	grid := spatial.Build(entries, gomath.Max(eps, 1e-9))

	ids := make([]int, len(ring))
	for j, p := range ring {
		ids[j] = -1
		if e, _, ok := grid.Nearest(p, gomath.Max(eps, 1e-9)); ok {
			ids[j] = e.ID
		}
	}
	return ids
}

// RingPositions reads the current position of each tracked ring vertex from
// b. Untracked points keep their position in ring.
func RingPositions(b *geom.Buffer, ring []math.Vec3, ids []int) []math.Vec3 {
	out := make([]math.Vec3, len(ring))
	for j, p := range ring {
		out[j] = p
		if j < len(ids) && ids[j] >= 0 && ids[j] < len(b.Positions) {
			out[j] = b.Positions[ids[j]]
		}
	}
	return out
}

// LockSeam pulls vertices near the seam toward the midpoint of the matching
// base and growth seam points, weighted by 1 - distance/radius.
func LockSeam(b *geom.Buffer, seam, growth []math.Vec3, radius float64) {
	n := min(len(seam), len(growth))
	if radius <= 0 || n == 0 {
		return
	}
	entries := make([]spatial.Entry, n)
	for j := range n {
		entries[j] = spatial.Entry{Pos: seam[j].Midpoint(growth[j]), ID: j}
	}
	grid := spatial.Build(entries, radius)

	for i, p := range b.Positions {
		e, d, ok := grid.Nearest(p, radius)
		if !ok {
			continue
		}
		b.Positions[i] = p.Lerp(e.Pos, 1-d/radius)
	}
}

// Roundness pulls vertices near the nominal band radius back onto it. Only
// vertices within p.RoundnessReach of a seam point are touched. The pull
// fades where the attractor selects the band, so the grown window stays free
// while the rest is forced circular.
func Roundness(b *geom.Buffer, att attractor.Attractor, seam []math.Vec3, p Params) {
	if p.RoundnessStrength <= 0 || p.RoundnessBand <= 0 || p.RoundnessReach <= 0 || len(seam) == 0 {
		return
	}
	entries := make([]spatial.Entry, len(seam))
	for j, s := range seam {
		entries[j] = spatial.Entry{Pos: s, ID: j}
	}
	grid := spatial.Build(entries, p.RoundnessReach)

	for i, v := range b.Positions {
		rho := v.XZ().Length()
		if rho < 1e-9 || gomath.Abs(rho-p.RingRadius) >= p.RoundnessBand {
			continue
		}
		if _, _, ok := grid.Nearest(v, p.RoundnessReach); !ok {
			continue
		}
		free := 1 - att.Selection(v)
		w := smoothstep(gomath.Pow(free, p.RoundnessExponent)) * p.RoundnessStrength
		w = gomath.Min(w, 1)
		target := rho + (p.RingRadius-rho)*w
		s := target / rho
		b.Positions[i] = math.Vec3{X: v.X * s, Y: v.Y, Z: v.Z * s}
	}
}

func smoothstep(x float64) float64 {
	x = gomath.Max(0, gomath.Min(1, x))
	return x * x * (3 - 2*x)
}
