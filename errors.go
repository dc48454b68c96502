package text3d

import (
	"fmt"

	"github.com/gogpu/text3d/fonts"
	"github.com/gogpu/text3d/glyphcache"
)

// FontNotLoadedError is the reason a block was deferred.
// It wraps glyphcache.ErrFontNotLoaded.
type FontNotLoadedError struct {
	Block BlockID
	Font  fonts.ID
}

func (e *FontNotLoadedError) Error() string {
	return fmt.Sprintf("text3d: block %d: font %d not loaded", e.Block, e.Font)
}

func (e *FontNotLoadedError) Unwrap() error {
	return glyphcache.ErrFontNotLoaded
}
