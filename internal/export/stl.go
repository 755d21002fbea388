package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/pkg/math"
)

// STL writes binary STL. Only triangle buffers can be encoded.
type STL struct{}

const stlHeaderSize = 80

// Encode implements Encoder.
func (STL) Encode(w io.Writer, b *geom.Buffer) error {
	if err := check(b); err != nil {
		return err
	}
	if b.Kind != geom.Triangles {
		return fmt.Errorf("stl: %v: %w", b.Kind, ErrUnsupported)
	}

	bw := bufio.NewWriter(w)
	var header [stlHeaderSize]byte
	copy(header[:], "sheath binary stl")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(b.TriangleCount())); err != nil {
		return err
	}

	// normal, three vertices, attribute byte count
	var facet struct {
		Normal   [3]float32
		Vertices [3][3]float32
		Attr     uint16
	}
	for t := 0; t+2 < len(b.Indices); t += 3 {
		p0 := b.Positions[b.Indices[t]]
		p1 := b.Positions[b.Indices[t+1]]
		p2 := b.Positions[b.Indices[t+2]]
		facet.Normal = vec32(p1.Sub(p0).Cross(p2.Sub(p0)).Normalize())
		facet.Vertices = [3][3]float32{vec32(p0), vec32(p1), vec32(p2)}
		if err := binary.Write(bw, binary.LittleEndian, &facet); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func vec32(v math.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
