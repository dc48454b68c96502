// Package fonts defines the font capability consumed by text3d and adapters
// over real font parsers.
//
// A Font reports metrics and outlines in unscaled design units with Y up.
// Two adapters are provided:
//
//   - GoTextFont, backed by github.com/go-text/typesetting. It also exposes
//     the underlying face, which enables HarfBuzz shaping.
//   - SFNTFont, backed by golang.org/x/image/font/sfnt. It supports rune
//     lookup and kerning through the kern table.
//
// Fonts are registered in a Library, which hands out stable IDs and resolves
// them back to fonts once they are available.
package fonts

import (
	"github.com/go-text/typesetting/font"

	"github.com/gogpu/text3d/outline"
)

// ID identifies a font in a Resolver.
type ID uint32

// GlyphID is a glyph index within a font.
type GlyphID uint32

// Font is the font capability used for tessellation and layout.
//
// Implementations are not required to be safe for concurrent use. They must
// be comparable with ==, typically pointers: caches use identity to notice
// that a Resolver now returns a different font for an ID.
type Font interface {
	// Scale returns the natural height of the font: ascent minus descent,
	// in design units. Layout divides the requested size by it.
	Scale() float32

	// Descent returns the unscaled descent. It is negative for fonts whose
	// descenders extend below the baseline.
	Descent() float32

	// Advance returns the unscaled horizontal advance of gid.
	Advance(gid GlyphID) float32

	// Outline returns the vector outline of gid. ok is false when the font
	// has no such glyph. An existing glyph without contours, such as the
	// space, returns ok with an empty outline.
	Outline(gid GlyphID) (g outline.Glyph, ok bool)
}

// RuneMapper is implemented by fonts that can map runes to glyphs.
type RuneMapper interface {
	GlyphIndex(r rune) (GlyphID, bool)
}

// Kerner is implemented by fonts that provide pair kerning.
// The result is in unscaled design units.
type Kerner interface {
	Kern(left, right GlyphID) float32
}

// FaceProvider is implemented by fonts backed by go-text/typesetting.
type FaceProvider interface {
	Face() *font.Face
}

// Namer is implemented by fonts that know their family name.
type Namer interface {
	Name() string
}

// Resolver looks fonts up by ID. A font that is registered but not yet
// loaded resolves to (nil, false).
type Resolver interface {
	Font(id ID) (Font, bool)
}

// Ascent returns the unscaled ascent of f, derived from its scale and descent.
func Ascent(f Font) float32 {
	return f.Scale() + f.Descent()
}
