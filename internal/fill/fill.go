// Package fill triangulates glyph contours under a fill rule.
//
// The tessellator decomposes the plane into horizontal slabs bounded by every
// vertex and every edge crossing, so no two edges cross inside a slab. Within
// a slab the active edges are ordered by x and the winding number is
// accumulated from left to right; each span with an inside winding becomes a
// trapezoid emitted as up to two triangles.
//
// Triangles are wound clockwise in the Y-up input space, which is
// counter-clockwise in Y-down screen space, the convention of most 2D
// tessellators.
//
// This works for any contour topology: holes, overlapping contours and
// self-intersections are all resolved by the winding rule.
package fill

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/text3d/outline"
)

// Rule selects how the winding number maps to inside/outside.
type Rule uint8

const (
	// NonZero treats any non-zero winding number as inside.
	NonZero Rule = iota

	// EvenOdd treats odd winding numbers as inside.
	EvenOdd
)

// String returns a string representation of the rule.
func (r Rule) String() string {
	switch r {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}

// DefaultMaxEdges is the default edge limit for a single Fill call.
const DefaultMaxEdges = 1 << 14

// yEpsilon merges slab boundaries closer than this (font units).
const yEpsilon = 1e-6

// ErrTooComplex is returned when the flattened input has more edges than
// the tessellator accepts.
var ErrTooComplex = errors.New("fill: too many edges")

// InputError reports a contour point that is not a finite number.
type InputError struct {
	Contour int
	Point   outline.Point
}

func (e *InputError) Error() string {
	return fmt.Sprintf("fill: contour %d has non-finite point (%v, %v)", e.Contour, e.Point.X, e.Point.Y)
}

// edge is a non-horizontal polygon edge with y0 < y1.
type edge struct {
	x0, y0 float64
	y1     float64
	dxdy   float64
	wind   int
}

func (e *edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

// span is an edge clipped to the current slab.
type span struct {
	xa, xm, xb float64
	wind       int
}

// Tessellator triangulates contours. The zero value is ready to use with
// the NonZero rule and default tolerance.
//
// A Tessellator reuses internal buffers between calls and is not safe for
// concurrent use.
type Tessellator struct {
	// Tolerance is the curve flattening tolerance in font units.
	// Zero selects outline.DefaultTolerance.
	Tolerance float32

	// Rule is the fill rule.
	Rule Rule

	// MaxEdges bounds the number of flattened edges. Zero selects DefaultMaxEdges.
	MaxEdges int

	edges  []edge
	ys     []float64
	active []span
	index  map[outline.Point]uint32
}

// New creates a tessellator using the nonzero rule.
func New() *Tessellator {
	return &Tessellator{Rule: NonZero}
}

// Fill triangulates the contours. Vertices are in the input coordinate space;
// indices reference vertices in clockwise triangles (Y up).
// Empty or zero-area input yields no triangles and no error.
func (t *Tessellator) Fill(contours []outline.Contour) ([]outline.Point, []uint32, error) {
	if err := t.collectEdges(contours); err != nil {
		return nil, nil, err
	}
	if len(t.edges) == 0 {
		return nil, nil, nil
	}

	t.collectCrossings()
	t.ys = dedupe(t.ys)

	if t.index == nil {
		t.index = make(map[outline.Point]uint32)
	}
	clear(t.index)

	var (
		vertices []outline.Point
		indices  []uint32
	)
	vertex := func(x, y float64) uint32 {
		p := outline.Point{X: float32(x), Y: float32(y)}
		if i, ok := t.index[p]; ok {
			return i
		}
		i := uint32(len(vertices)) //nolint:gosec // bounded by MaxEdges
		vertices = append(vertices, p)
		t.index[p] = i
		return i
	}
	triangle := func(a, b, c uint32) {
		pa, pb, pc := vertices[a], vertices[b], vertices[c]
		cross := (pb.X-pa.X)*(pc.Y-pa.Y) - (pb.Y-pa.Y)*(pc.X-pa.X)
		if cross >= 0 {
			return
		}
		indices = append(indices, a, b, c)
	}

	for k := 0; k+1 < len(t.ys); k++ {
		ya, yb := t.ys[k], t.ys[k+1]
		ym := (ya + yb) / 2

		t.active = t.active[:0]
		for i := range t.edges {
			e := &t.edges[i]
			if e.y0 <= ym && e.y1 >= ym {
				t.active = append(t.active, span{xa: e.xAt(ya), xm: e.xAt(ym), xb: e.xAt(yb), wind: e.wind})
			}
		}
		slices.SortFunc(t.active, func(a, b span) int { return cmp.Compare(a.xm, b.xm) })

		winding := 0
		var left span
		for _, s := range t.active {
			wasInside := t.inside(winding)
			winding += s.wind
			isInside := t.inside(winding)

			switch {
			case !wasInside && isInside:
				left = s
			case wasInside && !isInside:
				v0 := vertex(left.xa, ya)
				v1 := vertex(s.xa, ya)
				v2 := vertex(s.xb, yb)
				v3 := vertex(left.xb, yb)
				triangle(v0, v2, v1)
				triangle(v0, v3, v2)
			}
		}
	}

	return vertices, indices, nil
}

func (t *Tessellator) inside(winding int) bool {
	if t.Rule == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// collectEdges flattens the contours into non-horizontal edges and records
// every vertex y as a slab boundary.
func (t *Tessellator) collectEdges(contours []outline.Contour) error {
	t.edges = t.edges[:0]
	t.ys = t.ys[:0]

	maxEdges := t.MaxEdges
	if maxEdges <= 0 {
		maxEdges = DefaultMaxEdges
	}

	for ci, c := range contours {
		pts := c.Flatten(t.Tolerance)
		for _, p := range pts {
			if !finite(p) {
				return &InputError{Contour: ci, Point: p}
			}
		}
		if len(pts) < 3 {
			continue
		}

		for i, a := range pts {
			b := pts[(i+1)%len(pts)]
			t.ys = append(t.ys, float64(a.Y))
			if a.Y == b.Y {
				continue
			}

			e := edge{wind: 1}
			ax, ay, bx, by := float64(a.X), float64(a.Y), float64(b.X), float64(b.Y)
			if ay > by {
				ax, ay, bx, by = bx, by, ax, ay
				e.wind = -1
			}
			e.x0, e.y0, e.y1 = ax, ay, by
			e.dxdy = (bx - ax) / (by - ay)
			t.edges = append(t.edges, e)
		}
		if len(t.edges) > maxEdges {
			return fmt.Errorf("%w: %d > %d", ErrTooComplex, len(t.edges), maxEdges)
		}
	}
	return nil
}

// collectCrossings adds the y of every proper crossing between two edges.
func (t *Tessellator) collectCrossings() {
	slices.SortFunc(t.edges, func(a, b edge) int { return cmp.Compare(a.y0, b.y0) })

	for i := range t.edges {
		ei := &t.edges[i]
		for j := i + 1; j < len(t.edges); j++ {
			ej := &t.edges[j]
			if ej.y0 >= ei.y1 {
				break
			}
			ya := ej.y0 // ej.y0 >= ei.y0 by sort order
			yb := math.Min(ei.y1, ej.y1)
			if yb <= ya {
				continue
			}
			da := ei.xAt(ya) - ej.xAt(ya)
			db := ei.xAt(yb) - ej.xAt(yb)
			if (da < 0 && db > 0) || (da > 0 && db < 0) {
				t.ys = append(t.ys, ya+(yb-ya)*da/(da-db))
			}
		}
	}
}

// dedupe sorts ys and drops values within yEpsilon of their predecessor.
func dedupe(ys []float64) []float64 {
	slices.Sort(ys)
	out := ys[:0]
	for _, y := range ys {
		if len(out) > 0 && y-out[len(out)-1] < yEpsilon {
			continue
		}
		out = append(out, y)
	}
	return out
}

func finite(p outline.Point) bool {
	x, y := float64(p.X), float64(p.Y)
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}
