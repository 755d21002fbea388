package export

import (
	"fmt"
	"io"
	gomath "math"
	"sort"

	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/pkg/math"
	"github.com/gogpu/gg"
)

// Default preview size.
const (
	DefaultPreviewWidth  = 1024
	DefaultPreviewHeight = 768
)

// previewBackground is the clear colour of preview images.
var previewBackground = geom.Color{R: 0.08, G: 0.09, B: 0.11}

// viewDirection points from the model toward the camera.
var viewDirection = math.Vec3{X: 1, Y: 0.8, Z: 1.3}

// Preview renders an orthographic three-quarter view to PNG. Triangles are
// filled back to front and shaded by their facing; lines are stroked.
type Preview struct {
	Width  int
	Height int
}

type projected struct {
	pts   [3]math.Vec3 // screen x, y and view depth
	color geom.Color
	depth float64
}

// Encode implements Encoder.
func (p Preview) Encode(w io.Writer, b *geom.Buffer) error {
	if err := check(b); err != nil {
		return err
	}
	width, height := p.Width, p.Height
	if width <= 0 {
		width = DefaultPreviewWidth
	}
	if height <= 0 {
		height = DefaultPreviewHeight
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(previewBackground.RGBA())

	cam := newCamera(b, width, height)
	var err error
	if b.Kind == geom.Lines {
		err = drawLines(dc, cam, b)
	} else {
		err = drawTriangles(dc, cam, b)
	}
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return dc.EncodePNG(w)
}

type camera struct {
	view   math.Mat4
	scale  float64
	cx, cy float64
}

// newCamera fits the buffer's bounding sphere into the image.
func newCamera(b *geom.Buffer, width, height int) camera {
	bounds := b.Bounds()
	center := bounds.Center()
	radius := bounds.Size().Length() / 2
	if radius < 1e-9 {
		radius = 1
	}
	eye := center.Add(viewDirection.Normalize().Scale(radius * 4))
	return camera{
		view:  math.LookAt(eye, center, math.UnitY),
		scale: 0.92 * float64(min(width, height)) / (2 * radius),
		cx:    float64(width) / 2,
		cy:    float64(height) / 2,
	}
}

// project returns screen coordinates with view-space depth in Z.
func (c camera) project(p math.Vec3) math.Vec3 {
	v := c.view.TransformVec3(p)
	return math.Vec3{X: c.cx + v.X*c.scale, Y: c.cy - v.Y*c.scale, Z: v.Z}
}

func drawTriangles(dc *gg.Context, cam camera, b *geom.Buffer) error {
	light := cam.view.TransformDirection(viewDirection.Add(math.Vec3{Y: 1.5}).Normalize()).Normalize()
	hasColors := len(b.Colors) == len(b.Positions)

	tris := make([]projected, 0, b.TriangleCount())
	for t := 0; t+2 < len(b.Indices); t += 3 {
		idx := [3]uint32{b.Indices[t], b.Indices[t+1], b.Indices[t+2]}
		var tri projected
		var c geom.Color
		for k, i := range idx {
			tri.pts[k] = cam.project(b.Positions[i])
			tri.depth += tri.pts[k].Z / 3
			if hasColors {
				c = c.Add(b.Colors[i].Scale(1.0 / 3))
			}
		}
		if !hasColors {
			c = geom.Color{R: 0.8, G: 0.8, B: 0.8}
		}

		p0, p1, p2 := b.Positions[idx[0]], b.Positions[idx[1]], b.Positions[idx[2]]
		n := cam.view.TransformDirection(p1.Sub(p0).Cross(p2.Sub(p0))).Normalize()
		tri.color = c.Scale(0.3 + 0.7*gomath.Abs(n.Dot(light)))
		tris = append(tris, tri)
	}

	// Farther triangles have more negative view depth.
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth < tris[j].depth })

	for _, tri := range tris {
		dc.SetRGB(tri.color.R, tri.color.G, tri.color.B)
		dc.MoveTo(tri.pts[0].X, tri.pts[0].Y)
		dc.LineTo(tri.pts[1].X, tri.pts[1].Y)
		dc.LineTo(tri.pts[2].X, tri.pts[2].Y)
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func drawLines(dc *gg.Context, cam camera, b *geom.Buffer) error {
	hasColors := len(b.Colors) == len(b.Positions)
	dc.SetLineWidth(1.2)
	for i := 0; i+1 < len(b.Positions); i += 2 {
		c := geom.Color{R: 0.8, G: 0.8, B: 0.8}
		if hasColors {
			c = b.Colors[i].Lerp(b.Colors[i+1], 0.5)
		}
		p0, p1 := cam.project(b.Positions[i]), cam.project(b.Positions[i+1])
		dc.SetRGB(c.R, c.G, c.B)
		dc.MoveTo(p0.X, p0.Y)
		dc.LineTo(p1.X, p1.Y)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}
