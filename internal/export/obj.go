package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/sheath/internal/geom"
)

// OBJ writes Wavefront OBJ. Vertex colours follow the position on each "v"
// line. Triangle buffers use "f" with normals when present, line buffers "l".
type OBJ struct{}

// Encode implements Encoder.
func (OBJ) Encode(w io.Writer, b *geom.Buffer) error {
	if err := check(b); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# sheath %s: %d vertices\n", b.Kind, b.VertexCount())
	fmt.Fprintln(bw, "o sheath")

	hasColors := len(b.Colors) == len(b.Positions)
	for i, p := range b.Positions {
		if hasColors {
			c := b.Colors[i]
			fmt.Fprintf(bw, "v %.6f %.6f %.6f %.4f %.4f %.4f\n", p.X, p.Y, p.Z, c.R, c.G, c.B)
		} else {
			fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p.X, p.Y, p.Z)
		}
	}

	switch b.Kind {
	case geom.Triangles:
		hasNormals := len(b.Normals) == len(b.Positions)
		if hasNormals {
			for _, n := range b.Normals {
				fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
			}
		}
		for t := 0; t+2 < len(b.Indices); t += 3 {
			a, c, d := b.Indices[t]+1, b.Indices[t+1]+1, b.Indices[t+2]+1
			if hasNormals {
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, c, c, d, d)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, c, d)
			}
		}
	case geom.Lines:
		for i := 0; i+1 < len(b.Positions); i += 2 {
			fmt.Fprintf(bw, "l %d %d\n", i+1, i+2)
		}
	}
	return bw.Flush()
}
