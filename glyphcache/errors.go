package glyphcache

import (
	"errors"
	"fmt"

	"github.com/gogpu/text3d/fonts"
)

// Sentinel errors for the glyphcache package.
var (
	// ErrFontNotLoaded is returned when the font cannot be resolved yet.
	// It is transient: the same call may succeed once the font is loaded.
	ErrFontNotLoaded = errors.New("glyphcache: font not loaded")

	// ErrNoOutline is returned for glyphs without renderable geometry, such
	// as the space or a glyph id missing from the font. It is permanent.
	ErrNoOutline = errors.New("glyphcache: glyph has no outline")
)

// TessellationError reports a glyph whose outline could not be filled.
// It is permanent for the (font, glyph) pair.
type TessellationError struct {
	Font  fonts.ID
	Glyph fonts.GlyphID
	Err   error
}

func (e *TessellationError) Error() string {
	return fmt.Sprintf("glyphcache: glyph %d of font %d: %v", e.Glyph, e.Font, e.Err)
}

func (e *TessellationError) Unwrap() error {
	return e.Err
}
