package outline

// Sink receives the path commands produced by Build.
// Each contour is bracketed by exactly one Begin and one Close.
type Sink interface {
	Begin(p Point)
	Add(c Curve)
	Close()
}

// Contour is a closed loop of curves. The closing edge from the end of the
// last curve back to Start is implicit.
type Contour struct {
	Start  Point
	Curves []Curve
}

// End returns the point where the last curve of the contour ends.
func (c Contour) End() Point {
	if len(c.Curves) == 0 {
		return c.Start
	}
	return c.Curves[len(c.Curves)-1].To
}

// Build walks curves with a pen and reports contours to sink.
//
// The first curve begins a contour at its From point. A curve whose From
// differs from the pen closes the current contour and begins a new one there.
// The final contour is always closed. An empty list produces no calls.
func Build(curves []Curve, sink Sink) {
	if len(curves) == 0 {
		return
	}

	pen := curves[0].From
	sink.Begin(pen)
	for i, c := range curves {
		if i > 0 && c.From != pen {
			sink.Close()
			sink.Begin(c.From)
		}
		sink.Add(c)
		pen = c.To
	}
	sink.Close()
}

// BuildContours reconstructs closed contours from an outline curve list.
// It returns nil for an empty list.
func BuildContours(curves []Curve) []Contour {
	var b contourBuilder
	Build(curves, &b)
	return b.contours
}

// contourBuilder is a Sink that collects Contours.
type contourBuilder struct {
	contours []Contour
	current  *Contour
}

func (b *contourBuilder) Begin(p Point) {
	b.contours = append(b.contours, Contour{Start: p})
	b.current = &b.contours[len(b.contours)-1]
}

func (b *contourBuilder) Add(c Curve) {
	b.current.Curves = append(b.current.Curves, c)
}

func (b *contourBuilder) Close() {
	b.current = nil
}
