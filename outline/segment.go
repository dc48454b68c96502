package outline

// SegmentOp is the operator of a pen-style path segment.
type SegmentOp uint8

const (
	// SegmentMoveTo starts a new sub-path without drawing.
	SegmentMoveTo SegmentOp = iota

	// SegmentLineTo draws a straight line.
	SegmentLineTo

	// SegmentQuadTo draws a quadratic Bezier curve.
	SegmentQuadTo

	// SegmentCubeTo draws a cubic Bezier curve.
	SegmentCubeTo
)

// Segment is a pen-style path command as produced by font parsers: the
// starting point is implicit (the previous segment's end).
//
//   - MoveTo, LineTo: Args[0] is the target point
//   - QuadTo: Args[0] is the control, Args[1] the target
//   - CubeTo: Args[0], Args[1] are controls, Args[2] the target
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// FromSegments converts a pen-style segment stream into curves with explicit
// endpoints. A MoveTo emits nothing; it only relocates the pen, which then
// shows up as a discontinuity for Build. Zero-length lines are dropped.
func FromSegments(segments []Segment) []Curve {
	if len(segments) == 0 {
		return nil
	}

	curves := make([]Curve, 0, len(segments))
	var pen Point
	for _, s := range segments {
		switch s.Op {
		case SegmentMoveTo:
			pen = s.Args[0]
		case SegmentLineTo:
			if s.Args[0] != pen {
				curves = append(curves, Line(pen, s.Args[0]))
			}
			pen = s.Args[0]
		case SegmentQuadTo:
			curves = append(curves, Quad(pen, s.Args[0], s.Args[1]))
			pen = s.Args[1]
		case SegmentCubeTo:
			curves = append(curves, Cubic(pen, s.Args[0], s.Args[1], s.Args[2]))
			pen = s.Args[2]
		}
	}
	return curves
}
