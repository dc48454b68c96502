package shape

import "github.com/gogpu/text3d/fonts"

// SimpleShaper places glyphs left to right by advance width, adding pair
// kerning when the font implements fonts.Kerner.
//
// It does not substitute ligatures, reorder right-to-left text or apply
// contextual forms. Fonts that do not implement fonts.RuneMapper produce no
// glyphs.
//
// SimpleShaper is stateless and safe for concurrent use.
type SimpleShaper struct{}

// Shape implements Shaper.
func (s *SimpleShaper) Shape(sections []Section) []Glyph {
	return layout(sections, shapeSimple)
}

func shapeSimple(sec Section, k float32, text []rune) ([]placed, float32) {
	mapper, ok := sec.Font.(fonts.RuneMapper)
	if !ok {
		return nil, 0
	}
	kerner, _ := sec.Font.(fonts.Kerner)

	out := make([]placed, 0, len(text))
	var (
		x    float32
		prev fonts.GlyphID
	)
	for i, r := range text {
		gid, ok := mapper.GlyphIndex(r)
		if !ok {
			gid = 0 // .notdef
		}
		if kerner != nil && i > 0 {
			x += kerner.Kern(prev, gid) * k
		}
		out = append(out, placed{id: gid, x: x})
		x += sec.Font.Advance(gid) * k
		prev = gid
	}
	return out, x
}
