package export

import (
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/sheath/internal/geom"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXFLayer is the layer every entity is written to.
const DXFLayer = "sheath"

// DXF writes LINE entities. Line buffers are written segment by segment;
// triangle buffers as the set of their unique edges.
type DXF struct{}

// Encode implements Encoder. The drawing is staged in a temporary file since
// it can only be written by path.
func (d DXF) Encode(w io.Writer, b *geom.Buffer) error {
	tmp, err := os.CreateTemp("", "sheath-*.dxf")
	if err != nil {
		return fmt.Errorf("dxf: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	defer os.Remove(name)

	if err := d.SaveAs(name, b); err != nil {
		return err
	}
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("dxf: %w", err)
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// SaveAs writes b as a DXF drawing at path.
func (DXF) SaveAs(path string, b *geom.Buffer) error {
	if err := check(b); err != nil {
		return err
	}
	drawing := dxf.NewDrawing()
	drawing.Header().LtScale = 1.0
	drawing.AddLayer(DXFLayer, color.Red, dxf.DefaultLineType, true)
	drawing.ChangeLayer(DXFLayer)

	for _, e := range edges(b) {
		p, q := b.Positions[e[0]], b.Positions[e[1]]
		if _, err := drawing.Line(p.X, p.Y, p.Z, q.X, q.Y, q.Z); err != nil {
			return fmt.Errorf("dxf: line: %w", err)
		}
	}
	if err := drawing.SaveAs(path); err != nil {
		return fmt.Errorf("dxf: save %s: %w", path, err)
	}
	return nil
}

// edges returns vertex index pairs to draw. Triangle edges shared by two
// triangles are emitted once, in first-seen order.
func edges(b *geom.Buffer) [][2]uint32 {
	var out [][2]uint32
	if b.Kind == geom.Lines {
		for i := 0; i+1 < len(b.Positions); i += 2 {
			out = append(out, [2]uint32{uint32(i), uint32(i + 1)})
		}
		return out
	}

	seen := make(map[[2]uint32]bool)
	add := func(a, c uint32) {
		key := [2]uint32{min(a, c), max(a, c)}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, [2]uint32{a, c})
	}
	for t := 0; t+2 < len(b.Indices); t += 3 {
		i0, i1, i2 := b.Indices[t], b.Indices[t+1], b.Indices[t+2]
		add(i0, i1)
		add(i1, i2)
		add(i2, i0)
	}
	return out
}
