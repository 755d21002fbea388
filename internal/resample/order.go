package resample

import (
	"sort"

	"github.com/Faultbox/sheath/pkg/math"
)

// OrderByAngle returns points sorted by their angle around the centroid. The
// angle is measured in the plane tangent to a Y-axis cylinder through the
// centroid; when the centroid sits on the axis the XZ plane is used instead.
// Equal angles keep their input order.
func OrderByAngle(points []math.Vec3) []math.Vec3 {
	c := math.Centroid(points)
	u, v := angularFrame(c)

	type keyed struct {
		p     math.Vec3
		angle float64
	}
	ks := make([]keyed, len(points))
	for i, p := range points {
		d := p.Sub(c)
		ks[i] = keyed{p: p, angle: math.Vec2{X: d.Dot(u), Y: d.Dot(v)}.Angle()}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].angle < ks[j].angle })

	out := make([]math.Vec3, len(ks))
	for i, k := range ks {
		out[i] = k.p
	}
	return out
}

// angularFrame returns two orthonormal axes spanning the plane in which
// angles around c are measured.
func angularFrame(c math.Vec3) (u, v math.Vec3) {
	n := math.Vec3{X: c.X, Z: c.Z}
	if n.Length() < 1e-9 {
		return math.UnitX, math.UnitZ
	}
	n = n.Normalize()
	return math.Vec3{X: -n.Z, Z: n.X}, math.UnitY
}
