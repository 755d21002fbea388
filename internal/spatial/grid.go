// Package spatial provides a uniform-cell spatial hash used for neighbour
// queries between thousands of points.
package spatial

import (
	gomath "math"

	"github.com/Faultbox/sheath/pkg/math"
)

// Key is an integer cell coordinate.
type Key [3]int

// Entry is a point stored in the grid. ID is an opaque caller handle, usually
// an index into the caller's own point arrays.
type Entry struct {
	Pos math.Vec3
	ID  int
}

// Grid buckets entries by cell. A grid is built per pass and discarded.
type Grid struct {
	cellSize float64
	cells    map[Key][]Entry
}

// NewGrid returns an empty grid. A non-positive cell size is replaced by 1.
func NewGrid(cellSize float64) *Grid {
	if !(cellSize > 0) || gomath.IsInf(cellSize, 0) {
		cellSize = 1
	}
	return &Grid{cellSize: cellSize, cells: make(map[Key][]Entry)}
}

// Build buckets all entries into a new grid with the given cell size.
func Build(entries []Entry, cellSize float64) *Grid {
	g := NewGrid(cellSize)
	for _, e := range entries {
		g.Insert(e)
	}
	return g
}

// CellSize returns the edge length of one cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// KeyOf returns the cell containing p.
func (g *Grid) KeyOf(p math.Vec3) Key {
	return Key{
		int(gomath.Floor(p.X / g.cellSize)),
		int(gomath.Floor(p.Y / g.cellSize)),
		int(gomath.Floor(p.Z / g.cellSize)),
	}
}

// Insert adds one entry.
func (g *Grid) Insert(e Entry) {
	k := g.KeyOf(e.Pos)
	g.cells[k] = append(g.cells[k], e)
}

// Len returns the number of stored entries.
func (g *Grid) Len() int {
	n := 0
	for _, c := range g.cells {
		n += len(c)
	}
	return n
}

// Neighbors appends to dst every entry in the 3x3x3 block of cells around p
// and returns the extended slice. The order is deterministic: cells are
// visited in x, y, z order and entries in insertion order.
func (g *Grid) Neighbors(p math.Vec3, dst []Entry) []Entry {
	k := g.KeyOf(p)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				dst = append(dst, g.cells[Key{k[0] + dx, k[1] + dy, k[2] + dz}]...)
			}
		}
	}
	return dst
}

// Nearest returns the closest entry to p within maxDist. Only the 3x3x3 block
// is searched, so maxDist should not exceed the cell size. Ties keep the
// entry found first.
func (g *Grid) Nearest(p math.Vec3, maxDist float64) (Entry, float64, bool) {
	var (
		best     Entry
		bestDist = maxDist
		found    bool
	)
	k := g.KeyOf(p)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				for _, e := range g.cells[Key{k[0] + dx, k[1] + dy, k[2] + dz}] {
					d := e.Pos.Distance(p)
					if d < bestDist || (!found && d <= maxDist) {
						best, bestDist, found = e, d, true
					}
				}
			}
		}
	}
	return best, bestDist, found
}
