// Package relax spreads ring points apart so they keep a minimum spacing.
package relax

import (
	gomath "math"

	"github.com/Faultbox/sheath/internal/growth"
	"github.com/Faultbox/sheath/internal/spatial"
	"github.com/Faultbox/sheath/pkg/math"
)

// ReferenceSegments is the segment count the global spacing values are
// tuned for. Other resolutions scale them by sqrt(segments/ReferenceSegments).
const ReferenceSegments = 140

// Options configures one relaxation.
type Options struct {
	MinDistance float64
	Range       float64
	Strength    float64
	Iterations  int
}

func (o Options) active() bool {
	return o.Strength > 0 && o.Iterations > 0 && o.Range > 0
}

// GentleRepel returns the push applied to a by b. It is zero when the pair
// is at least rng apart or coincident, and grows as they get closer, with an
// extra term once they are nearer than minDist.
func GentleRepel(a, b math.Vec3, minDist, rng, strength float64) math.Vec3 {
	diff := a.Sub(b)
	d := diff.Length()
	if d >= rng || d < 1e-12 {
		return math.Vec3{}
	}
	fall := 1 - d/rng
	mag := strength * (fall*fall*rng*0.25 + gomath.Max(0, minDist-d)*0.5)
	return diff.Scale(mag / d)
}

// GentleRelax pushes the points of ring apart from each other and from prev.
// prev points repel but never move. Points at or below the growth threshold
// stay anchored. A point the push brought closer to the centroid is moved
// back out to its original distance.
func GentleRelax(ring *growth.Ring, prev growth.Ring, o Options) {
	if !o.active() || len(ring.Points) == 0 {
		return
	}
	n := len(ring.Points)
	c := ring.Centroid

	origDist := make([]float64, n)
	for j, p := range ring.Points {
		origDist[j] = p.Distance(c)
	}

	entries := make([]spatial.Entry, 0, n+len(prev.Points))
	var buf []spatial.Entry
	for range o.Iterations {
		entries = entries[:0]
		for j, p := range ring.Points {
			entries = append(entries, spatial.Entry{Pos: p, ID: j})
		}
		for k, p := range prev.Points {
			entries = append(entries, spatial.Entry{Pos: p, ID: n + k})
		}
		grid := spatial.Build(entries, o.Range)

		next := make([]math.Vec3, n)
		for j, p := range ring.Points {
			if ring.Mask[j] <= growth.GrowThreshold {
				next[j] = p
				continue
			}
			var push math.Vec3
			buf = grid.Neighbors(p, buf[:0])
			for _, e := range buf {
				if e.ID == j {
					continue
				}
				push = push.Add(GentleRepel(p, e.Pos, o.MinDistance, o.Range, o.Strength))
			}
			np := p.Add(push)

			off := np.Sub(c)
			if l := off.Length(); l > 1e-9 && l < origDist[j] {
				np = c.Add(off.Scale(origDist[j] / l))
			}
			next[j] = np
		}
		ring.Points = next
	}
	ring.UpdateCentroid()
}

// ApplyGlobalRelax pushes apart points of non-adjacent rings that came too
// close. Only points with mask above the growth threshold take part. Spacing
// and range are divided by sqrt(segments/ReferenceSegments). Points on the
// same or an adjacent ring within one index of each other are exempt, and
// ring 0 repels but never moves.
func ApplyGlobalRelax(rings []growth.Ring, o Options, segments int) {
	if !o.active() || len(rings) < 2 {
		return
	}
	scale := gomath.Sqrt(float64(segments) / ReferenceSegments)
	if !(scale > 0) {
		scale = 1
	}
	minDist := o.MinDistance / scale
	rng := o.Range / scale

	type ref struct{ ring, idx int }
	var (
		refs    []ref
		entries []spatial.Entry
		buf     []spatial.Entry
	)
	for range o.Iterations {
		refs = refs[:0]
		entries = entries[:0]
		for r, ring := range rings {
			for j, p := range ring.Points {
				if ring.Mask[j] <= growth.GrowThreshold {
					continue
				}
				entries = append(entries, spatial.Entry{Pos: p, ID: len(refs)})
				refs = append(refs, ref{r, j})
			}
		}
		grid := spatial.Build(entries, rng)

		moves := make([]math.Vec3, len(refs))
		for k, a := range refs {
			if a.ring == 0 {
				continue
			}
			p := rings[a.ring].Points[a.idx]
			n := len(rings[a.ring].Points)
			buf = grid.Neighbors(p, buf[:0])
			for _, e := range buf {
				if e.ID == k {
					continue
				}
				b := refs[e.ID]
				if exempt(a.ring, a.idx, b.ring, b.idx, n) {
					continue
				}
				moves[k] = moves[k].Add(GentleRepel(p, e.Pos, minDist, rng, o.Strength))
			}
		}

		for k, a := range refs {
			if a.ring == 0 {
				continue
			}
			rings[a.ring].Points[a.idx] = rings[a.ring].Points[a.idx].Add(moves[k])
		}
	}
	for r := 1; r < len(rings); r++ {
		rings[r].UpdateCentroid()
	}
}

// exempt reports whether two points are immediate neighbours in the
// ring/index lattice.
func exempt(ra, ia, rb, ib, n int) bool {
	dr := ra - rb
	if dr < -1 || dr > 1 {
		return false
	}
	di := ia - ib
	if di < 0 {
		di = -di
	}
	if n > 0 && n-di < di {
		di = n - di
	}
	return di <= 1
}
