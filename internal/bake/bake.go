// Package bake keeps independent, positioned copies of finished geometry.
// Copies never feed back into generation.
package bake

import (
	"sync"

	"github.com/Faultbox/sheath/internal/geom"
	"github.com/Faultbox/sheath/pkg/math"
	"github.com/google/uuid"
)

// Copy is one baked instance.
type Copy struct {
	ID     string
	Offset math.Vec3
	Yaw    float64 // rotation about +Y, radians
	Mesh   *geom.Buffer
}

// Manager holds baked copies. It is safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	copies []*Copy
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Bake clones b, rotates it by yaw about +Y, moves it by offset and stores
// the result. b itself is not modified.
func (m *Manager) Bake(b *geom.Buffer, offset math.Vec3, yaw float64) *Copy {
	mesh := b.Clone()
	xf := math.Translate(offset.X, offset.Y, offset.Z).Mul(math.RotateY(yaw))
	for i, p := range mesh.Positions {
		mesh.Positions[i] = xf.TransformVec3(p)
	}
	for i, n := range mesh.Normals {
		mesh.Normals[i] = xf.TransformDirection(n).Normalize()
	}

	c := &Copy{ID: uuid.NewString(), Offset: offset, Yaw: yaw, Mesh: mesh}
	m.mu.Lock()
	m.copies = append(m.copies, c)
	m.mu.Unlock()
	return c
}

// List returns the copies in bake order.
func (m *Manager) List() []*Copy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Copy(nil), m.copies...)
}

// Len returns the number of copies.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.copies)
}

// Remove deletes the copy with the given id and reports whether it existed.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.copies {
		if c.ID == id {
			m.copies = append(m.copies[:i], m.copies[i+1:]...)
			return true
		}
	}
	return false
}

// Combined merges every copy into one buffer for export.
func (m *Manager) Combined() (*geom.Buffer, error) {
	copies := m.List()
	bufs := make([]*geom.Buffer, len(copies))
	for i, c := range copies {
		bufs[i] = c.Mesh
	}
	return geom.Merge(bufs...)
}
