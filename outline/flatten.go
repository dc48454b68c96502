package outline

import "math"

// DefaultTolerance is the default flattening tolerance in font design units.
const DefaultTolerance = 0.5

// maxFlattenDepth bounds curve subdivision.
const maxFlattenDepth = 16

// Flatten approximates the contour by a closed polyline.
// The returned slice starts with Start and does not repeat it at the end.
// Curves are subdivided until their control points lie within tolerance of
// the chord; tolerance <= 0 selects DefaultTolerance.
func (c Contour) Flatten(tolerance float32) []Point {
	tol := float64(tolerance)
	if tol <= 0 {
		tol = DefaultTolerance
	}

	points := make([]Point, 0, len(c.Curves)*2+1)
	points = append(points, c.Start)
	current := c.Start

	for _, cv := range c.Curves {
		// A curve whose From differs from the pen only happens when Build was
		// bypassed; bridge it with a straight edge.
		if cv.From != current {
			points = append(points, cv.From)
		}
		switch cv.Op {
		case CurveLine:
			points = append(points, cv.To)
		case CurveQuad:
			flattenQuad(vec(cv.From), vec(cv.Ctrl1), vec(cv.To), tol, 0, &points)
		case CurveCubic:
			flattenCubic(vec(cv.From), vec(cv.Ctrl1), vec(cv.Ctrl2), vec(cv.To), tol, 0, &points)
		}
		current = cv.To
	}

	if n := len(points); n > 1 && points[n-1] == points[0] {
		points = points[:n-1]
	}
	return points
}

// v2 is a float64 point used during subdivision.
type v2 struct {
	x, y float64
}

func vec(p Point) v2 {
	return v2{float64(p.X), float64(p.Y)}
}

func (p v2) point() Point {
	return Point{X: float32(p.x), Y: float32(p.y)}
}

func (p v2) lerp(q v2, t float64) v2 {
	return v2{p.x + (q.x-p.x)*t, p.y + (q.y-p.y)*t}
}

func flattenQuad(p0, p1, p2 v2, tol float64, depth int, out *[]Point) {
	if depth >= maxFlattenDepth || distanceToLine(p1, p0, p2) < tol || !p1.point().finite() {
		*out = append(*out, p2.point())
		return
	}

	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := q0.lerp(q1, 0.5)

	flattenQuad(p0, q0, q2, tol, depth+1, out)
	flattenQuad(q2, q1, p2, tol, depth+1, out)
}

func flattenCubic(p0, p1, p2, p3 v2, tol float64, depth int, out *[]Point) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxFlattenDepth || dist < tol || !p1.point().finite() || !p2.point().finite() {
		*out = append(*out, p3.point())
		return
	}

	// de Casteljau split at t=0.5
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := p2.lerp(p3, 0.5)
	r0 := q0.lerp(q1, 0.5)
	r1 := q1.lerp(q2, 0.5)
	s := r0.lerp(r1, 0.5)

	flattenCubic(p0, q0, r0, s, tol, depth+1, out)
	flattenCubic(s, r1, q2, p3, tol, depth+1, out)
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b v2) float64 {
	abx, aby := b.x-a.x, b.y-a.y
	lenSq := abx*abx + aby*aby
	if lenSq < 1e-20 {
		return math.Hypot(p.x-a.x, p.y-a.y)
	}

	t := ((p.x-a.x)*abx + (p.y-a.y)*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.x-(a.x+abx*t), p.y-(a.y+aby*t))
}
