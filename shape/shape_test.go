package shape

import (
	"math"
	"testing"

	"github.com/go-text/typesetting/di"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/text3d/fonts"
	"github.com/gogpu/text3d/outline"
)

// testFont has natural scale 1000 (ascent 800, descent -200), a 500 unit
// advance for every glyph, glyph ids equal to runes, and kerns "AV" by -100.
type testFont struct{}

func (testFont) Scale() float32                { return 1000 }
func (testFont) Descent() float32              { return -200 }
func (testFont) Advance(fonts.GlyphID) float32 { return 500 }

func (testFont) Outline(fonts.GlyphID) (outline.Glyph, bool) {
	return outline.Glyph{}, false
}

func (testFont) GlyphIndex(r rune) (fonts.GlyphID, bool) {
	return fonts.GlyphID(r), true
}

func (testFont) Kern(a, b fonts.GlyphID) float32 {
	if a == 'A' && b == 'V' {
		return -100
	}
	return 0
}

// unmappedFont implements only fonts.Font.
type unmappedFont struct{}

func (unmappedFont) Scale() float32                { return 1000 }
func (unmappedFont) Descent() float32              { return -200 }
func (unmappedFont) Advance(fonts.GlyphID) float32 { return 500 }

func (unmappedFont) Outline(fonts.GlyphID) (outline.Glyph, bool) {
	return outline.Glyph{}, false
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func checkGlyphs(t *testing.T, got []Glyph, want []Glyph) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d glyphs %+v, want %d", len(got), got, len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Section != w.Section || !near(g.X, w.X) || !near(g.Y, w.Y) {
			t.Errorf("glyph %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestSimpleShaper(t *testing.T) {
	f := testFont{}
	tests := []struct {
		name     string
		sections []Section
		want     []Glyph
	}{
		{
			name:     "single glyph",
			sections: []Section{{Text: "A", Font: f, Size: 40}},
			want:     []Glyph{{ID: 'A', X: 0, Y: 32}},
		},
		{
			name:     "advance",
			sections: []Section{{Text: "AB", Font: f, Size: 40}},
			want:     []Glyph{{ID: 'A', X: 0, Y: 32}, {ID: 'B', X: 20, Y: 32}},
		},
		{
			name:     "kerning",
			sections: []Section{{Text: "AV", Font: f, Size: 40}},
			want:     []Glyph{{ID: 'A', X: 0, Y: 32}, {ID: 'V', X: 16, Y: 32}},
		},
		{
			name:     "space still advances",
			sections: []Section{{Text: "A B", Font: f, Size: 40}},
			want:     []Glyph{{ID: 'A', X: 0, Y: 32}, {ID: ' ', X: 20, Y: 32}, {ID: 'B', X: 40, Y: 32}},
		},
		{
			name:     "newline",
			sections: []Section{{Text: "A\r\nB", Font: f, Size: 40}},
			want:     []Glyph{{ID: 'A', X: 0, Y: 32}, {ID: 'B', X: 0, Y: 72}},
		},
		{
			name:     "empty line keeps height",
			sections: []Section{{Text: "A\n\nB", Font: f, Size: 40}},
			want:     []Glyph{{ID: 'A', X: 0, Y: 32}, {ID: 'B', X: 0, Y: 112}},
		},
		{
			name: "sections share a line",
			sections: []Section{
				{Text: "A", Font: f, Size: 40},
				{Text: "B", Font: f, Size: 80},
			},
			want: []Glyph{{ID: 'A', X: 0, Y: 64}, {ID: 'B', Section: 1, X: 20, Y: 64}},
		},
		{
			name: "section starting with newline",
			sections: []Section{
				{Text: "A", Font: f, Size: 40},
				{Text: "\nB", Font: f, Size: 80},
			},
			want: []Glyph{{ID: 'A', X: 0, Y: 32}, {ID: 'B', Section: 1, X: 0, Y: 40 + 64}},
		},
		{
			name: "unusable sections are skipped",
			sections: []Section{
				{Text: "X", Font: nil, Size: 40},
				{Text: "Y", Font: f, Size: 0},
				{Text: "A", Font: f, Size: 40},
			},
			want: []Glyph{{ID: 'A', Section: 2, X: 0, Y: 32}},
		},
		{
			name:     "no rune mapper",
			sections: []Section{{Text: "A", Font: unmappedFont{}, Size: 40}},
			want:     []Glyph{},
		},
		{
			name:     "empty",
			sections: nil,
			want:     []Glyph{},
		},
	}

	s := &SimpleShaper{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGlyphs(t, s.Shape(tt.sections), tt.want)
		})
	}
}

func goRegular(t *testing.T) *fonts.GoTextFont {
	t.Helper()
	f, err := fonts.NewGoTextFont(goregular.TTF)
	if err != nil {
		t.Fatalf("NewGoTextFont: %v", err)
	}
	return f
}

func TestGoTextShaper_BasicLatin(t *testing.T) {
	f := goRegular(t)
	s := NewGoTextShaper()

	got := s.Shape([]Section{{Text: "Hello", Font: f, Size: 32}})
	if len(got) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(got))
	}

	baseline := fonts.Ascent(f) * 32 / f.Scale()
	var prevX float32 = -1
	for i, g := range got {
		if g.X <= prevX {
			t.Errorf("glyph %d: X=%v not after %v", i, g.X, prevX)
		}
		if math.Abs(float64(g.Y-baseline)) > 0.1 {
			t.Errorf("glyph %d: Y=%v, want baseline %v", i, g.Y, baseline)
		}
		prevX = g.X
	}

	simple := (&SimpleShaper{}).Shape([]Section{{Text: "Hello", Font: f, Size: 32}})
	for i := range got {
		if got[i].ID != simple[i].ID {
			t.Errorf("glyph %d: HarfBuzz id %d, simple id %d", i, got[i].ID, simple[i].ID)
		}
	}
	// Advances agree to within fixed-point rounding.
	last := len(got) - 1
	if math.Abs(float64(got[last].X-simple[last].X)) > 1 {
		t.Errorf("last X: HarfBuzz %v, simple %v", got[last].X, simple[last].X)
	}
}

func TestGoTextShaper_FallsBackWithoutFace(t *testing.T) {
	sections := []Section{{Text: "AV B", Font: testFont{}, Size: 40}}
	got := NewGoTextShaper().Shape(sections)
	want := (&SimpleShaper{}).Shape(sections)
	checkGlyphs(t, got, want)
}

func TestGoTextShaper_RunCache(t *testing.T) {
	f := goRegular(t)
	s := NewGoTextShaper(WithRunCacheSize(8))
	sections := []Section{{Text: "cached", Font: f, Size: 20}}

	first := s.Shape(sections)
	second := s.Shape(sections)
	checkGlyphs(t, second, first)

	st := s.RunCacheStats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 1/1", st.Hits, st.Misses)
	}

	uncached := NewGoTextShaper(WithRunCacheSize(0))
	checkGlyphs(t, uncached.Shape(sections), first)
	if st := uncached.RunCacheStats(); st.Hits+st.Misses != 0 {
		t.Errorf("disabled cache recorded lookups: %+v", st)
	}
}

func TestGoTextShaper_Multiline(t *testing.T) {
	f := goRegular(t)
	got := NewGoTextShaper(WithLanguage("en")).Shape([]Section{{Text: "a\nb", Font: f, Size: 10}})
	if len(got) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(got))
	}
	if !near(got[1].Y-got[0].Y, 10) {
		t.Errorf("line advance = %v, want 10", got[1].Y-got[0].Y)
	}
	if got[1].X != 0 {
		t.Errorf("second line starts at X=%v", got[1].X)
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		text string
		want di.Direction
	}{
		{"hello", di.DirectionLTR},
		{"  123 abc", di.DirectionLTR},
		{"שלום", di.DirectionRTL},
		{"12 مرحبا", di.DirectionRTL},
		{"", di.DirectionLTR},
	}
	for _, tt := range tests {
		if got := detectDirection([]rune(tt.text)); got != tt.want {
			t.Errorf("detectDirection(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
