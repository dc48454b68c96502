package shape

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/text3d/fonts"
	"github.com/gogpu/text3d/internal/cache"
)

// DefaultRunCacheSize is the number of shaped runs a GoTextShaper keeps.
const DefaultRunCacheSize = 256

// GoTextShaper shapes with the HarfBuzz port in go-text/typesetting.
//
// Sections whose font does not implement fonts.FaceProvider fall back to
// SimpleShaper placement. Each run is shaped in a single direction taken
// from its first strong bidi character, and a single script taken from its
// first non-space rune; split mixed runs into separate sections.
//
// Shaped runs are memoized in an LRU keyed by face, size and text, so
// re-laying out unchanged text does not reshape it.
//
// GoTextShaper is safe for concurrent use as long as the fonts it is given
// are not used concurrently elsewhere: go-text faces are not thread-safe.
type GoTextShaper struct {
	// shaperPool holds HarfbuzzShaper instances, which keep internal buffers
	// and are not safe for concurrent use.
	shaperPool sync.Pool

	lang language.Language
	runs *cache.LRU[runKey, shapedRun]
}

// GoTextOption configures a GoTextShaper.
type GoTextOption func(*goTextConfig)

type goTextConfig struct {
	lang      string
	cacheSize int
}

// WithLanguage sets the BCP 47 language tag passed to HarfBuzz.
// The default is "en".
func WithLanguage(tag string) GoTextOption {
	return func(c *goTextConfig) {
		c.lang = tag
	}
}

// WithRunCacheSize sets how many shaped runs are memoized.
// Zero or less disables memoization.
func WithRunCacheSize(n int) GoTextOption {
	return func(c *goTextConfig) {
		c.cacheSize = n
	}
}

// NewGoTextShaper creates a GoTextShaper.
func NewGoTextShaper(opts ...GoTextOption) *GoTextShaper {
	cfg := goTextConfig{lang: "en", cacheSize: DefaultRunCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		lang: language.NewLanguage(cfg.lang),
	}
	if cfg.cacheSize > 0 {
		s.runs = cache.New[runKey, shapedRun](cfg.cacheSize)
	}
	return s
}

// Shape implements Shaper.
func (s *GoTextShaper) Shape(sections []Section) []Glyph {
	return layout(sections, s.shapeRun)
}

// RunCacheStats returns statistics of the shaped-run cache.
func (s *GoTextShaper) RunCacheStats() cache.Stats {
	if s.runs == nil {
		return cache.Stats{}
	}
	return s.runs.Stats()
}

// runKey identifies a shaped run.
type runKey struct {
	face *font.Face
	size fixed.Int26_6
	text string
}

type shapedRun struct {
	glyphs  []placed
	advance float32
}

func (s *GoTextShaper) shapeRun(sec Section, k float32, text []rune) ([]placed, float32) {
	fp, ok := sec.Font.(fonts.FaceProvider)
	if !ok || fp.Face() == nil {
		return shapeSimple(sec, k, text)
	}
	face := fp.Face()

	// ppem such that one design unit maps to k layout units.
	size := floatToFixed(k * float32(face.Upem()))

	if s.runs == nil {
		r := s.harfbuzz(face, size, text)
		return r.glyphs, r.advance
	}
	key := runKey{face: face, size: size, text: string(text)}
	r := s.runs.GetOrCreate(key, func() shapedRun {
		return s.harfbuzz(face, size, text)
	})
	return r.glyphs, r.advance
}

func (s *GoTextShaper) harfbuzz(face *font.Face, size fixed.Int26_6, text []rune) shapedRun {
	dir := detectDirection(text)
	input := shaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    len(text),
		Direction: dir,
		Face:      face,
		Size:      size,
		Script:    detectScript(text),
		Language:  s.lang,
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	// Glyphs come back in visual order for both directions.
	out := shapedRun{glyphs: make([]placed, len(output.Glyphs))}
	var x float32
	for i, g := range output.Glyphs {
		out.glyphs[i] = placed{
			id: fonts.GlyphID(g.GlyphID),
			x:  x + fixedToFloat(g.XOffset),
			y:  fixedToFloat(g.YOffset),
		}
		x += fixedToFloat(g.Advance)
	}
	out.advance = x
	return out
}

// detectDirection returns RTL when the first strong character of text is
// right-to-left.
func detectDirection(text []rune) di.Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(text []rune) language.Script {
	for _, r := range text {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float32 size to fixed.Int26_6.
func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float32.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}
