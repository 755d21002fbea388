// Package resample converts closed rings of points between segment counts.
package resample

import (
	gomath "math"

	"github.com/Faultbox/sheath/internal/growth"
	"github.com/Faultbox/sheath/pkg/math"
)

// ByIndex resamples a closed ring to target points by uniform parametric
// position: output i sits at fractional source index i/target*len(points),
// linearly interpolated and wrapping at the end. Equal counts return a copy.
// It returns false for fewer than 2 source points or a target below 1.
func ByIndex(points []math.Vec3, target int) ([]math.Vec3, bool) {
	n := len(points)
	if n < 2 || target < 1 {
		return nil, false
	}
	if target == n {
		return append([]math.Vec3(nil), points...), true
	}

	out := make([]math.Vec3, target)
	for i := range target {
		i0, i1, frac := indexPosition(i, target, n)
		out[i] = points[i0].Lerp(points[i1], frac)
	}
	return out, true
}

// ScalarsByIndex applies the ByIndex mapping to a parallel scalar array.
func ScalarsByIndex(values []float64, target int) ([]float64, bool) {
	n := len(values)
	if n < 2 || target < 1 {
		return nil, false
	}
	if target == n {
		return append([]float64(nil), values...), true
	}

	out := make([]float64, target)
	for i := range target {
		i0, i1, frac := indexPosition(i, target, n)
		out[i] = values[i0] + (values[i1]-values[i0])*frac
	}
	return out, true
}

// Ring resamples a ring's points and mask by index and recomputes its
// centroid. On failure the ring is returned unchanged with false.
func Ring(r growth.Ring, target int) (growth.Ring, bool) {
	pts, ok := ByIndex(r.Points, target)
	if !ok {
		return r, false
	}
	mask, ok := ScalarsByIndex(r.Mask, target)
	if !ok {
		return r, false
	}
	return growth.Ring{Points: pts, Centroid: math.Centroid(pts), Mask: mask}, true
}

func indexPosition(i, target, n int) (i0, i1 int, frac float64) {
	f := float64(i) / float64(target) * float64(n)
	base := gomath.Floor(f)
	i0 = int(base) % n
	i1 = (i0 + 1) % n
	return i0, i1, f - base
}

// ByArcLength reorders the points by angle around their centroid, then
// samples target points at uniform intervals of the closed polyline's length.
// It returns false for fewer than 2 points, a target below 1 or a zero-length
// polyline.
func ByArcLength(points []math.Vec3, target int) ([]math.Vec3, bool) {
	if len(points) < 2 || target < 1 {
		return nil, false
	}
	ordered := OrderByAngle(points)
	n := len(ordered)

	// cum[i] is the length from ordered[0] to ordered[i]; cum[n] closes the loop.
	cum := make([]float64, n+1)
	for i := range n {
		cum[i+1] = cum[i] + ordered[i].Distance(ordered[(i+1)%n])
	}
	total := cum[n]
	if total <= 1e-12 {
		return nil, false
	}

	out := make([]math.Vec3, target)
	seg := 0
	for i := range target {
		s := total * float64(i) / float64(target)
		for seg < n-1 && cum[seg+1] < s {
			seg++
		}
		length := cum[seg+1] - cum[seg]
		frac := 0.0
		if length > 1e-12 {
			frac = (s - cum[seg]) / length
		}
		out[i] = ordered[seg].Lerp(ordered[(seg+1)%n], frac)
	}
	return out, true
}
