package fonts

import (
	"bytes"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/text3d/outline"
)

// GoTextFont adapts a go-text/typesetting face.
//
// GoTextFont is not safe for concurrent use: the underlying face caches
// glyph extents.
type GoTextFont struct {
	face    *font.Face
	name    string
	ascent  float32
	descent float32
}

// NewGoTextFont parses TrueType or OpenType data with go-text/typesetting.
func NewGoTextFont(data []byte) (*GoTextFont, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Parser: "gotext", Err: err}
	}
	return NewGoTextFontFromFace(face), nil
}

// NewGoTextFontFromFace wraps an already parsed face.
func NewGoTextFontFromFace(face *font.Face) *GoTextFont {
	f := &GoTextFont{
		face: face,
		name: face.Describe().Family,
	}

	ext, _ := face.FontHExtents()
	f.ascent, f.descent = ext.Ascender, ext.Descender
	if f.ascent == 0 && f.descent == 0 {
		// No hhea or OS/2 extents: treat the em box as the line.
		f.ascent = float32(face.Upem())
	}
	return f
}

// Face implements FaceProvider.
func (f *GoTextFont) Face() *font.Face {
	return f.face
}

// Name implements Namer.
func (f *GoTextFont) Name() string {
	return f.name
}

// Scale implements Font.
func (f *GoTextFont) Scale() float32 {
	return f.ascent - f.descent
}

// Descent implements Font.
func (f *GoTextFont) Descent() float32 {
	return f.descent
}

// Advance implements Font.
func (f *GoTextFont) Advance(gid GlyphID) float32 {
	return f.face.HorizontalAdvance(font.GID(gid))
}

// GlyphIndex implements RuneMapper.
func (f *GoTextFont) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.face.NominalGlyph(r)
	return GlyphID(gid), ok
}

// Outline implements Font. Bitmap and SVG glyphs contribute their fallback
// outline when they carry one.
func (f *GoTextFont) Outline(gid GlyphID) (outline.Glyph, bool) {
	var segs []ot.Segment
	switch data := f.face.GlyphData(font.GID(gid)).(type) {
	case font.GlyphOutline:
		segs = data.Segments
	case font.GlyphSVG:
		segs = data.Outline.Segments
	case font.GlyphBitmap:
		if data.Outline == nil {
			return outline.Glyph{}, false
		}
		segs = data.Outline.Segments
	default:
		return outline.Glyph{}, false
	}

	curves := outline.FromSegments(convertGoTextSegments(segs))
	g := outline.Glyph{Curves: curves}
	if ext, ok := f.face.GlyphExtents(font.GID(gid)); ok {
		g.Bounds = outline.Rect{
			MinX: ext.XBearing,
			MinY: ext.YBearing + ext.Height,
			MaxX: ext.XBearing + ext.Width,
			MaxY: ext.YBearing,
		}.Canon()
	} else {
		g.Bounds = outline.ControlBounds(curves)
	}
	return g, true
}

func convertGoTextSegments(segs []ot.Segment) []outline.Segment {
	if len(segs) == 0 {
		return nil
	}
	out := make([]outline.Segment, len(segs))
	for i, s := range segs {
		var op outline.SegmentOp
		switch s.Op {
		case ot.SegmentOpMoveTo:
			op = outline.SegmentMoveTo
		case ot.SegmentOpLineTo:
			op = outline.SegmentLineTo
		case ot.SegmentOpQuadTo:
			op = outline.SegmentQuadTo
		case ot.SegmentOpCubeTo:
			op = outline.SegmentCubeTo
		}
		out[i].Op = op
		for j, p := range s.Args {
			out[i].Args[j] = outline.Pt(p.X, p.Y)
		}
	}
	return out
}
