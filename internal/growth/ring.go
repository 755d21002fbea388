// Package growth grows the sheath outward from the seam, one ring at a time.
package growth

import "github.com/Faultbox/sheath/pkg/math"

// Ring is one closed loop of points produced by a growth iteration.
// Points and Mask always have the same length.
type Ring struct {
	Points   []math.Vec3
	Centroid math.Vec3
	Mask     []float64 // growth/visibility weight in [0,1]
}

// NewRing builds a ring from points. A nil or mismatched mask is replaced by
// a mask of ones.
func NewRing(points []math.Vec3, mask []float64) Ring {
	pts := append([]math.Vec3(nil), points...)
	var m []float64
	if len(mask) == len(points) {
		m = append([]float64(nil), mask...)
	} else {
		m = make([]float64, len(points))
		for i := range m {
			m[i] = 1
		}
	}
	return Ring{Points: pts, Centroid: math.Centroid(pts), Mask: m}
}

// Len returns the segment count.
func (r Ring) Len() int {
	return len(r.Points)
}

// Clone returns a deep copy.
func (r Ring) Clone() Ring {
	return Ring{
		Points:   append([]math.Vec3(nil), r.Points...),
		Centroid: r.Centroid,
		Mask:     append([]float64(nil), r.Mask...),
	}
}

// UpdateCentroid recomputes the centroid from the current points.
func (r *Ring) UpdateCentroid() {
	r.Centroid = math.Centroid(r.Points)
}
