// Package outline models glyph outlines as lists of Bezier curves and
// reconstructs closed contours from them.
//
// All coordinates are in font design units with the Y axis pointing up.
package outline

import "math"

// Point is a point in font design units.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// CurveOp is the kind of an outline curve.
type CurveOp uint8

const (
	// CurveLine is a straight segment from From to To.
	CurveLine CurveOp = iota

	// CurveQuad is a quadratic Bezier with control point Ctrl1.
	CurveQuad

	// CurveCubic is a cubic Bezier with control points Ctrl1 and Ctrl2.
	CurveCubic
)

// String returns a string representation of the curve kind.
func (op CurveOp) String() string {
	switch op {
	case CurveLine:
		return "Line"
	case CurveQuad:
		return "Quad"
	case CurveCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// Curve is one segment of a glyph boundary.
// Every curve carries both of its endpoints, so consecutive curves in a list
// may or may not be contiguous.
type Curve struct {
	Op CurveOp

	From Point

	// Ctrl1 is used by CurveQuad and CurveCubic, Ctrl2 only by CurveCubic.
	Ctrl1, Ctrl2 Point

	To Point
}

// Line returns a straight curve.
func Line(from, to Point) Curve {
	return Curve{Op: CurveLine, From: from, To: to}
}

// Quad returns a quadratic Bezier curve.
func Quad(from, ctrl, to Point) Curve {
	return Curve{Op: CurveQuad, From: from, Ctrl1: ctrl, To: to}
}

// Cubic returns a cubic Bezier curve.
func Cubic(from, ctrl1, ctrl2, to Point) Curve {
	return Curve{Op: CurveCubic, From: from, Ctrl1: ctrl1, Ctrl2: ctrl2, To: to}
}

// Rect is an axis-aligned rectangle in font design units.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Canon returns r with Min and Max swapped where needed so that Min <= Max.
func (r Rect) Canon() Rect {
	return Rect{
		MinX: min(r.MinX, r.MaxX),
		MinY: min(r.MinY, r.MaxY),
		MaxX: max(r.MinX, r.MaxX),
		MaxY: max(r.MinY, r.MaxY),
	}
}

// ControlBounds returns the box enclosing every endpoint and control point of
// curves. It contains the true outline bounds but may be larger.
func ControlBounds(curves []Curve) Rect {
	if len(curves) == 0 {
		return Rect{}
	}
	r := Rect{MinX: curves[0].From.X, MinY: curves[0].From.Y, MaxX: curves[0].From.X, MaxY: curves[0].From.Y}
	add := func(p Point) {
		r.MinX, r.MaxX = min(r.MinX, p.X), max(r.MaxX, p.X)
		r.MinY, r.MaxY = min(r.MinY, p.Y), max(r.MaxY, p.Y)
	}
	for _, c := range curves {
		add(c.From)
		add(c.To)
		switch c.Op {
		case CurveQuad:
			add(c.Ctrl1)
		case CurveCubic:
			add(c.Ctrl1)
			add(c.Ctrl2)
		}
	}
	return r
}

// Glyph is the vector outline of one glyph together with the bounding box
// reported by the font.
type Glyph struct {
	Curves []Curve

	// Bounds comes from font metadata; it is not recomputed from Curves.
	Bounds Rect
}

// IsEmpty reports whether the glyph has no curves (e.g. the space glyph).
func (g Glyph) IsEmpty() bool {
	return len(g.Curves) == 0
}

// finite reports whether both coordinates are finite numbers.
func (p Point) finite() bool {
	x, y := float64(p.X), float64(p.Y)
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}
