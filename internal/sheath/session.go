// Package sheath runs generation passes: base disk, ring growth, relaxation,
// assembly and refinement, in that order.
package sheath

import (
	gomath "math"
	"time"

	"github.com/Faultbox/sheath/internal/assemble"
	"github.com/Faultbox/sheath/internal/attractor"
	"github.com/Faultbox/sheath/internal/basedisk"
	"github.com/Faultbox/sheath/internal/config"
	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/internal/growth"
	"github.com/Faultbox/sheath/internal/logger"
	"github.com/Faultbox/sheath/internal/refine"
	"github.com/Faultbox/sheath/internal/relax"
	"github.com/Faultbox/sheath/internal/resample"
	"github.com/Faultbox/sheath/pkg/math"
	"go.uber.org/zap"
)

// Pass holds everything one generation pass produced.
type Pass struct {
	Attractor attractor.Attractor
	Disk      *basedisk.Disk
	Seed      growth.Ring

	// Rings are at simulation resolution, Display at display resolution.
	Rings   []growth.Ring
	Display []growth.Ring

	Growth *geom.Buffer // assembled sheath before refinement
	Mesh   *geom.Buffer // final geometry for the renderer and exporters

	Refined         bool
	BridgeTriangles int // loft triangles between seam and growth edge
	Duration        time.Duration
}

// Session owns the state that survives between passes: the cached seam ring,
// the last mesh and an optional attractor position override. A Session is
// not safe for concurrent use.
type Session struct {
	log *zap.Logger

	seamRing []math.Vec3
	lastMesh *geom.Buffer

	attractorPos *math.Vec3
}

// NewSession creates a session. A nil logger uses the package logger.
func NewSession(log *zap.Logger) *Session {
	if log == nil {
		log = logger.Named("sheath")
	}
	return &Session{log: log}
}

// MoveAttractor sets the attractor centre used by later passes, overriding
// the configured position.
func (s *Session) MoveAttractor(x, y, z float64) {
	s.attractorPos = &math.Vec3{X: x, Y: y, Z: z}
}

// SeamRing returns a copy of the cached seam ring.
func (s *Session) SeamRing() []math.Vec3 {
	return append([]math.Vec3(nil), s.seamRing...)
}

// LastMesh returns the mesh produced by the most recent pass.
func (s *Session) LastMesh() *geom.Buffer {
	return s.lastMesh
}

// Regenerate runs a full pass and returns the final geometry.
func (s *Session) Regenerate(cfg *config.Config) *geom.Buffer {
	return s.Run(cfg).Mesh
}

// Run executes one pass. cfg is not modified; a sanitized copy is used.
func (s *Session) Run(cfg *config.Config) *Pass {
	start := time.Now()
	c := *cfg
	c.Sanitize()

	base := geom.ParseColor(c.Material.BaseColor)
	ridge := geom.ParseColor(c.Material.RidgeColor)
	segs := c.Resolution.Segments

	p := &Pass{Attractor: attractorFrom(&c)}
	if s.attractorPos != nil {
		p.Attractor.Center = *s.attractorPos
	}

	p.Disk = basedisk.Build(diskParams(&c), p.Attractor, base)
	if p.Disk.Fallback {
		s.log.Debug("no base quad survived the cut, keeping all")
	}

	p.Seed = growth.NewRing(s.seedPoints(p.Disk, segs), nil)

	ringOpts := ringRelax(&c)
	p.Rings = growth.Generate(p.Seed, p.Attractor, growthParams(&c), func(r *growth.Ring, prev growth.Ring) {
		relax.GentleRelax(r, prev, ringOpts)
	})
	relax.ApplyGlobalRelax(p.Rings, globalRelax(&c), segs)

	p.Display = s.displayRings(p.Rings, c.Resolution.DisplaySegments)

	if c.Mode == config.ModeLines {
		p.Growth = assemble.Lines(p.Display, base, ridge)
		p.Mesh = s.mergeLines(p.Disk.Mesh, p.Growth)
	} else {
		p.Growth = assemble.Mesh(p.Display, base, ridge)
		p.Mesh, p.BridgeTriangles, p.Refined = s.refine(&c, p, base, ridge)
	}

	s.lastMesh = p.Mesh
	p.Duration = time.Since(start)
	s.log.Info("generation pass complete",
		zap.String("mode", string(c.Mode)),
		zap.Int("rings", len(p.Rings)),
		zap.Int("segments", segs),
		zap.Int("seamPoints", len(p.Disk.Seam)),
		zap.Int("vertices", p.Mesh.VertexCount()),
		zap.Int("triangles", p.Mesh.TriangleCount()),
		zap.Bool("refined", p.Refined),
		zap.Int("bridgeTriangles", p.BridgeTriangles),
		zap.Duration("took", p.Duration))
	return p
}

// seedPoints returns the seed ring: the disk seam resampled by arc length,
// the cached ring when the seam is degenerate, or a circle on the disk's top
// rim when nothing has been cached yet.
func (s *Session) seedPoints(d *basedisk.Disk, segs int) []math.Vec3 {
	if pts, ok := resample.ByArcLength(d.Seam, segs); ok {
		s.seamRing = pts
		return pts
	}
	if pts, ok := resample.ByIndex(s.seamRing, segs); ok {
		s.log.Debug("degenerate seam, reusing cached ring", zap.Int("seamPoints", len(d.Seam)))
		return pts
	}
	s.log.Debug("degenerate seam, seeding from the top rim", zap.Int("seamPoints", len(d.Seam)))
	return rimCircle(d.Params.RingRadius, d.Params.Width/2, segs)
}

func rimCircle(radius, y float64, segs int) []math.Vec3 {
	pts := make([]math.Vec3, segs)
	for i := range segs {
		a := 2 * gomath.Pi * float64(i) / float64(segs)
		pts[i] = math.Vec3{X: radius * gomath.Cos(a), Y: y, Z: radius * gomath.Sin(a)}
	}
	return pts
}

func (s *Session) displayRings(rings []growth.Ring, display int) []growth.Ring {
	if len(rings) == 0 || rings[0].Len() == display {
		return rings
	}
	out := make([]growth.Ring, len(rings))
	for i, r := range rings {
		rr, ok := resample.Ring(r, display)
		if !ok {
			// Mixed lengths cannot be assembled, so keep the simulation rings.
			s.log.Debug("display resample failed", zap.Int("ring", i))
			return rings
		}
		out[i] = rr
	}
	return out
}

func (s *Session) mergeLines(base, grown *geom.Buffer) *geom.Buffer {
	merged, err := geom.Merge(base, grown)
	if err != nil {
		s.log.Warn("merging line geometry failed", zap.Error(err))
		return grown
	}
	return merged
}

// refine runs the refinement pipeline, falling back to the assembled sheath
// with fresh normals when it fails or is disabled.
func (s *Session) refine(c *config.Config, p *Pass, base, ridge geom.Color) (*geom.Buffer, int, bool) {
	fallback := func() *geom.Buffer {
		out := geom.Compact(p.Growth)
		geom.FlipWinding(out)
		geom.ComputeNormals(out)
		return out
	}
	if !c.Refine.Enabled {
		return fallback(), 0, false
	}

	out, stats, err := refine.RunWithStats(refine.Input{
		Base:       p.Disk.Mesh,
		Growth:     p.Growth,
		SeamRing:   p.Seed.Points,
		GrowthRing: p.Display[0].Points,
		Attractor:  p.Attractor,
	}, refineParams(c, base, ridge))
	if err != nil {
		s.log.Warn("refinement skipped", zap.Error(err))
		return fallback(), 0, false
	}
	return out, stats.BridgeTriangles, true
}
