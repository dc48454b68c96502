package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/text3d/outline"
)

// SFNTFont adapts golang.org/x/image/font/sfnt.
//
// Queries run at ppem equal to the font's units per em, so every 26.6 value
// returned by sfnt is a design unit times 64. sfnt reports Y down; SFNTFont
// flips it.
//
// SFNTFont is not safe for concurrent use: it owns one sfnt.Buffer.
type SFNTFont struct {
	font    *sfnt.Font
	buf     sfnt.Buffer
	ppem    fixed.Int26_6
	name    string
	ascent  float32
	descent float32
}

// NewSFNTFont parses TrueType or OpenType data with x/image/font/sfnt.
func NewSFNTFont(data []byte) (*SFNTFont, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, &ParseError{Parser: "sfnt", Err: err}
	}

	f := &SFNTFont{
		font: parsed,
		ppem: fixed.Int26_6(parsed.UnitsPerEm()) << 6,
	}
	if name, err := parsed.Name(&f.buf, sfnt.NameIDFamily); err == nil {
		f.name = name
	}

	m, err := parsed.Metrics(&f.buf, f.ppem, font.HintingNone)
	if err != nil {
		return nil, &ParseError{Parser: "sfnt", Err: err}
	}
	f.ascent = fixedToFloat(m.Ascent)
	f.descent = -fixedToFloat(m.Descent)
	if f.ascent == 0 && f.descent == 0 {
		f.ascent = float32(parsed.UnitsPerEm())
	}
	return f, nil
}

// Name implements Namer.
func (f *SFNTFont) Name() string {
	return f.name
}

// Scale implements Font.
func (f *SFNTFont) Scale() float32 {
	return f.ascent - f.descent
}

// Descent implements Font.
func (f *SFNTFont) Descent() float32 {
	return f.descent
}

// Advance implements Font.
func (f *SFNTFont) Advance(gid GlyphID) float32 {
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.ppem, font.HintingNone) //nolint:gosec // glyph ids fit in uint16 for sfnt fonts
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// GlyphIndex implements RuneMapper. Index 0 (.notdef) counts as missing.
func (f *SFNTFont) GlyphIndex(r rune) (GlyphID, bool) {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

// Kern implements Kerner. Fonts without a kern table return 0.
func (f *SFNTFont) Kern(left, right GlyphID) float32 {
	k, err := f.font.Kern(&f.buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), f.ppem, font.HintingNone) //nolint:gosec // glyph ids fit in uint16 for sfnt fonts
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// Outline implements Font. Colored glyphs (sfnt.ErrColoredGlyph) have no
// outline.
func (f *SFNTFont) Outline(gid GlyphID) (outline.Glyph, bool) {
	x := sfnt.GlyphIndex(gid) //nolint:gosec // glyph ids fit in uint16 for sfnt fonts
	segs, err := f.font.LoadGlyph(&f.buf, x, f.ppem, nil)
	if err != nil {
		return outline.Glyph{}, false
	}

	converted := make([]outline.Segment, len(segs))
	for i, s := range segs {
		var op outline.SegmentOp
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			op = outline.SegmentMoveTo
		case sfnt.SegmentOpLineTo:
			op = outline.SegmentLineTo
		case sfnt.SegmentOpQuadTo:
			op = outline.SegmentQuadTo
		case sfnt.SegmentOpCubeTo:
			op = outline.SegmentCubeTo
		}
		converted[i].Op = op
		for j, p := range s.Args {
			converted[i].Args[j] = outline.Pt(fixedToFloat(p.X), -fixedToFloat(p.Y))
		}
	}

	g := outline.Glyph{Curves: outline.FromSegments(converted)}
	bounds, _, err := f.font.GlyphBounds(&f.buf, x, f.ppem, font.HintingNone)
	if err == nil {
		g.Bounds = outline.Rect{
			MinX: fixedToFloat(bounds.Min.X),
			MinY: -fixedToFloat(bounds.Max.Y),
			MaxX: fixedToFloat(bounds.Max.X),
			MaxY: -fixedToFloat(bounds.Min.Y),
		}
	} else {
		g.Bounds = outline.ControlBounds(g.Curves)
	}
	return g, true
}

// fixedToFloat converts fixed.Int26_6 to float32.
func fixedToFloat(x fixed.Int26_6) float32 {
	return float32(x) / 64.0
}
