package mesh

import (
	"errors"
	"testing"

	"github.com/gogpu/text3d/outline"
)

// fakeFiller returns fixed output and counts calls.
type fakeFiller struct {
	vertices []outline.Point
	indices  []uint32
	err      error
	calls    int
}

func (f *fakeFiller) Fill([]outline.Contour) ([]outline.Point, []uint32, error) {
	f.calls++
	return f.vertices, f.indices, f.err
}

func triangleContours() []outline.Contour {
	a, b, c := outline.Pt(0, 0), outline.Pt(500, 0), outline.Pt(250, 700)
	return outline.BuildContours([]outline.Curve{
		outline.Line(a, b), outline.Line(b, c), outline.Line(c, a),
	})
}

func TestAssemble_ReversesIndices(t *testing.T) {
	f := &fakeFiller{
		vertices: []outline.Point{outline.Pt(0, 0), outline.Pt(10, 0), outline.Pt(0, 10)},
		indices:  []uint32{0, 1, 2},
	}
	g, err := NewAssembler(f, 0).Assemble(triangleContours(), outline.Rect{MaxX: 10, MaxY: 10})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []uint32{2, 1, 0}
	for i, idx := range want {
		if g.Indices[i] != idx {
			t.Fatalf("Indices = %v, want %v", g.Indices, want)
		}
	}
}

func TestAssemble_UVsAndNormals(t *testing.T) {
	f := &fakeFiller{
		vertices: []outline.Point{outline.Pt(100, 0), outline.Pt(300, 0), outline.Pt(200, 400), outline.Pt(150, 100)},
		indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
	bounds := outline.Rect{MinX: 100, MinY: 0, MaxX: 300, MaxY: 400}
	g, err := NewAssembler(f, 0).Assemble(triangleContours(), bounds)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	wantUV := [][2]float32{{0, 1}, {1, 1}, {0.5, 0}, {0.25, 0.75}}
	for i, uv := range wantUV {
		if g.UVs[i] != uv {
			t.Errorf("UV[%d] = %v, want %v", i, g.UVs[i], uv)
		}
		if g.Normals[i] != Normal {
			t.Errorf("Normal[%d] = %v, want %v", i, g.Normals[i], Normal)
		}
		if g.Positions[i][2] != 0 {
			t.Errorf("Position[%d].z = %v, want 0", i, g.Positions[i][2])
		}
	}
	if g.Bounds != bounds {
		t.Errorf("Bounds = %+v, want %+v", g.Bounds, bounds)
	}
}

func TestAssemble_DegenerateBounds(t *testing.T) {
	tests := []struct {
		name   string
		bounds outline.Rect
	}{
		{"zero width", outline.Rect{MinX: 5, MaxX: 5, MaxY: 10}},
		{"zero height", outline.Rect{MaxX: 10, MinY: 3, MaxY: 3}},
		{"zero both", outline.Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFiller{
				vertices: []outline.Point{outline.Pt(0, 0), outline.Pt(10, 0), outline.Pt(0, 10)},
				indices:  []uint32{0, 1, 2},
			}
			g, err := NewAssembler(f, 0).Assemble(triangleContours(), tt.bounds)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			for i, uv := range g.UVs {
				if uv != [2]float32{0, 0} {
					t.Errorf("UV[%d] = %v, want (0,0)", i, uv)
				}
			}
		})
	}
}

func TestAssemble_NoContours(t *testing.T) {
	f := &fakeFiller{}
	_, err := NewAssembler(f, 0).Assemble(nil, outline.Rect{})
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
	if f.calls != 0 {
		t.Errorf("filler called %d times for empty input", f.calls)
	}
}

func TestAssemble_NoTriangles(t *testing.T) {
	_, err := NewAssembler(&fakeFiller{}, 0).Assemble(triangleContours(), outline.Rect{MaxX: 1, MaxY: 1})
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}

func TestAssemble_FillerError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewAssembler(&fakeFiller{err: boom}, 0).Assemble(triangleContours(), outline.Rect{})

	var fillErr *FillError
	if !errors.As(err, &fillErr) {
		t.Fatalf("err = %v, want *FillError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("FillError does not wrap the filler error")
	}
}

func TestAssemble_IndexOutOfRange(t *testing.T) {
	f := &fakeFiller{
		vertices: []outline.Point{outline.Pt(0, 0)},
		indices:  []uint32{0, 0, 7},
	}
	_, err := NewAssembler(f, 0).Assemble(triangleContours(), outline.Rect{})
	var fillErr *FillError
	if !errors.As(err, &fillErr) {
		t.Errorf("err = %v, want *FillError", err)
	}
}

func TestAssemble_DefaultTessellator(t *testing.T) {
	bounds := outline.Rect{MinX: 0, MinY: 0, MaxX: 500, MaxY: 700}
	g, err := NewAssembler(nil, 0).Assemble(triangleContours(), bounds)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if g.TriangleCount() == 0 {
		t.Fatal("no triangles")
	}

	// After reversal every triangle is counter-clockwise seen from +Z.
	for i := 0; i < len(g.Indices); i += 3 {
		a, b, c := g.Positions[g.Indices[i]], g.Positions[g.Indices[i+1]], g.Positions[g.Indices[i+2]]
		cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		if cross <= 0 {
			t.Errorf("triangle %d is not counter-clockwise", i/3)
		}
	}

	for i, uv := range g.UVs {
		if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
			t.Errorf("UV[%d] = %v outside unit square", i, uv)
		}
	}
}
