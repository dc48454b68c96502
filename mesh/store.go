package mesh

import "github.com/gogpu/gputypes"

// ID is a handle to a mesh slot in a Store.
type ID uint32

// MaterialID is a handle to a material slot in a Store.
type MaterialID uint32

// Material is a flat-colored surface.
type Material struct {
	Color gputypes.Color
}

// Store allocates mesh and material slots. Handles stay valid for the
// lifetime of the store.
type Store interface {
	AddMesh(g *Geometry) ID
	AddMaterial(c gputypes.Color) MaterialID
}

// Arena is an in-memory Store. Identical colors share one material slot.
// The zero value is an empty arena ready to use.
//
// Arena is not safe for concurrent use.
type Arena struct {
	meshes    []*Geometry
	materials []Material
	byColor   map[gputypes.Color]MaterialID
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{byColor: make(map[gputypes.Color]MaterialID)}
}

// AddMesh implements Store.
func (a *Arena) AddMesh(g *Geometry) ID {
	a.meshes = append(a.meshes, g)
	return ID(len(a.meshes) - 1) //nolint:gosec // arena size fits in uint32
}

// AddMaterial implements Store.
func (a *Arena) AddMaterial(c gputypes.Color) MaterialID {
	if id, ok := a.byColor[c]; ok {
		return id
	}
	if a.byColor == nil {
		a.byColor = make(map[gputypes.Color]MaterialID)
	}
	a.materials = append(a.materials, Material{Color: c})
	id := MaterialID(len(a.materials) - 1) //nolint:gosec // arena size fits in uint32
	a.byColor[c] = id
	return id
}

// Mesh returns the geometry for id, or nil if id is unknown.
func (a *Arena) Mesh(id ID) *Geometry {
	if int(id) >= len(a.meshes) {
		return nil
	}
	return a.meshes[id]
}

// Material returns the material for id.
func (a *Arena) Material(id MaterialID) (Material, bool) {
	if int(id) >= len(a.materials) {
		return Material{}, false
	}
	return a.materials[id], true
}

// MeshCount returns the number of allocated meshes.
func (a *Arena) MeshCount() int {
	return len(a.meshes)
}

// MaterialCount returns the number of allocated materials.
func (a *Arena) MaterialCount() int {
	return len(a.materials)
}
