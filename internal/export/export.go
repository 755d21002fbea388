// Package export serializes finished geometry into interchange formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/sheath/internal/geom"
)

// ErrUnsupported is returned when a format cannot represent a buffer kind.
var ErrUnsupported = errors.New("unsupported geometry for format")

// ErrEmpty is returned for buffers without vertices.
var ErrEmpty = errors.New("empty geometry")

// Encoder writes one geometry buffer as a byte stream.
type Encoder interface {
	Encode(w io.Writer, b *geom.Buffer) error
}

// Options configures Save.
type Options struct {
	PreviewWidth  int
	PreviewHeight int
}

// ForPath returns the encoder matching the file extension of path.
func ForPath(path string, opts Options) (Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return OBJ{}, nil
	case ".stl":
		return STL{}, nil
	case ".dxf":
		return DXF{}, nil
	case ".png":
		return Preview{Width: opts.PreviewWidth, Height: opts.PreviewHeight}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", filepath.Ext(path))
	}
}

// Save encodes b into the file at path, picking the format by extension.
func Save(path string, b *geom.Buffer, opts Options) error {
	enc, err := ForPath(path, opts)
	if err != nil {
		return err
	}
	if err := check(b); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	// DXF drawings are written by path.
	if d, ok := enc.(DXF); ok {
		return d.SaveAs(path, b)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := enc.Encode(f, b); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func check(b *geom.Buffer) error {
	if b == nil || len(b.Positions) == 0 {
		return ErrEmpty
	}
	return b.Validate()
}
