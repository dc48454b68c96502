package mesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/text3d/internal/fill"
	"github.com/gogpu/text3d/outline"
)

// ErrNoGeometry is returned by Assemble when the contours produce no
// triangles, e.g. for the space glyph.
var ErrNoGeometry = errors.New("mesh: no geometry")

// Filler triangulates closed contours under the nonzero fill rule.
//
// Any correct planar tessellator qualifies. Vertices are returned in the
// contour coordinate space and indices list triangles three at a time,
// wound clockwise with Y up.
type Filler interface {
	Fill(contours []outline.Contour) (vertices []outline.Point, indices []uint32, err error)
}

// FillError wraps a failure of the Filler.
type FillError struct {
	Err error
}

func (e *FillError) Error() string {
	return fmt.Sprintf("mesh: tessellation failed: %v", e.Err)
}

func (e *FillError) Unwrap() error {
	return e.Err
}

// Normal is the normal assigned to every assembled vertex.
var Normal = [3]float32{0, 0, 1}

// Assembler turns contours into renderable geometry.
// It is not safe for concurrent use when its Filler is not.
type Assembler struct {
	filler Filler
}

// NewAssembler creates an Assembler around filler.
// A nil filler selects the built-in slab tessellator with the given
// flattening tolerance (0 for the default).
func NewAssembler(filler Filler, tolerance float32) *Assembler {
	if filler == nil {
		filler = &fill.Tessellator{Rule: fill.NonZero, Tolerance: tolerance}
	}
	return &Assembler{filler: filler}
}

// Assemble triangulates contours and computes UVs from bounds, the glyph box
// reported by the font. The V axis is flipped so the top of the box maps to
// V=0. When bounds have zero width or height every UV is (0, 0).
//
// The filler's index order is reversed to match the target handedness:
// indices [0 1 2] come out as [2 1 0].
func (a *Assembler) Assemble(contours []outline.Contour, bounds outline.Rect) (*Geometry, error) {
	if len(contours) == 0 {
		return nil, ErrNoGeometry
	}

	vertices, indices, err := a.filler.Fill(contours)
	if err != nil {
		return nil, &FillError{Err: err}
	}
	if len(indices) == 0 {
		return nil, ErrNoGeometry
	}

	bounds = bounds.Canon()
	width, height := bounds.Width(), bounds.Height()
	degenerate := width == 0 || height == 0

	g := &Geometry{
		Positions: make([][3]float32, len(vertices)),
		Normals:   make([][3]float32, len(vertices)),
		UVs:       make([][2]float32, len(vertices)),
		Indices:   make([]uint32, len(indices)),
		Bounds:    bounds,
	}

	for i, v := range vertices {
		g.Positions[i] = [3]float32{v.X, v.Y, 0}
		g.Normals[i] = Normal
		if !degenerate {
			g.UVs[i] = [2]float32{
				(v.X - bounds.MinX) / width,
				1 - (v.Y-bounds.MinY)/height,
			}
		}
	}

	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, &FillError{Err: fmt.Errorf("index %d out of range [0,%d)", idx, len(vertices))}
		}
		g.Indices[len(indices)-1-i] = idx
	}

	return g, nil
}
