package text3d

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/text3d/fonts"
	"github.com/gogpu/text3d/mesh"
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Transform places a glyph mesh relative to its block.
type Transform struct {
	Translation Vec3
	Scale       Vec3
}

// RenderMode selects how instances are drawn.
type RenderMode uint8

const (
	// RenderSolid draws filled triangles.
	RenderSolid RenderMode = iota

	// RenderOutline draws triangle edges only.
	RenderOutline
)

// String returns a string representation of the mode.
func (m RenderMode) String() string {
	switch m {
	case RenderSolid:
		return "Solid"
	case RenderOutline:
		return "Outline"
	default:
		return "Unknown"
	}
}

// Toggle returns the other mode.
func (m RenderMode) Toggle() RenderMode {
	if m == RenderOutline {
		return RenderSolid
	}
	return RenderOutline
}

// Instance is one renderable glyph of a block.
type Instance struct {
	Mesh      mesh.ID
	Material  mesh.MaterialID
	Transform Transform
	Mode      RenderMode
}

// BlockID identifies a text block.
type BlockID uint64

// Style is the appearance of a section.
type Style struct {
	Font  fonts.ID
	Size  float32
	Color gputypes.Color
}

// Section is a run of text in one style.
type Section struct {
	Text  string
	Style Style
}

// TextBlock is a piece of multi-section text laid out as a unit.
type TextBlock struct {
	Sections []Section
}

// Target receives laid out blocks.
//
// ReplaceChildren replaces every child of block with children in one step.
// size is the extent of the block's bounding box in layout units; it is
// zero when the block has no visible glyph.
type Target interface {
	ReplaceChildren(block BlockID, children []Instance, size Vec2)
}
