// Package glyphcache memoizes glyph meshes per font and glyph.
//
// The first request for a (font, glyph) pair fetches the outline, rebuilds
// its contours, tessellates them and stores the mesh; later requests return
// the same Entry without touching the font. Failures are memoized too, so a
// glyph is tessellated at most once for the lifetime of the cache.
package glyphcache

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/text3d/fonts"
	"github.com/gogpu/text3d/mesh"
	"github.com/gogpu/text3d/outline"
)

// Entry is the cached mesh of one glyph. Measurements are unscaled design
// units.
type Entry struct {
	Mesh mesh.ID

	// Advance is the horizontal advance of the glyph.
	Advance float32

	// Width and Height are the size of the glyph's bounding box.
	Width, Height float32
}

// Metrics are the per-font values needed to scale glyphs.
type Metrics struct {
	// Scale is the natural height of the font (ascent minus descent).
	Scale float32

	// Descent is the unscaled descent, usually negative.
	Descent float32
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits           uint64
	Misses         uint64
	Tessellations  uint64
	Failures       uint64
	MetricsQueries uint64
}

// HitRate returns the hit rate as a percentage, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// fontEntry holds everything cached for one font.
type fontEntry struct {
	// font is the instance the entry was built from.
	font    fonts.Font
	metrics Metrics
	glyphs  map[fonts.GlyphID]Entry

	// failed holds permanent failures: ErrNoOutline or *TessellationError.
	failed map[fonts.GlyphID]error
}

// counters holds cache statistics. Fields are atomic so Stats may be
// read from another goroutine.
type counters struct {
	hits           atomic.Uint64
	misses         atomic.Uint64
	tessellations  atomic.Uint64
	failures       atomic.Uint64
	metricsQueries atomic.Uint64
}

// Cache maps (font, glyph) to mesh entries. Entries are never evicted; see
// ForgetFont for explicit unloading. When the resolver returns a different
// font instance for an ID, everything cached for that ID is dropped and
// rebuilt from the new font.
//
// Cache is not safe for concurrent use. Stats may be called concurrently.
type Cache struct {
	resolver  fonts.Resolver
	store     mesh.Store
	assembler *mesh.Assembler
	logger    func() *slog.Logger
	onError   func(error)

	fonts map[fonts.ID]*fontEntry
	stats counters
}

// New creates a cache resolving fonts through resolver and allocating
// meshes in store.
func New(resolver fonts.Resolver, store mesh.Store, opts ...Option) *Cache {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache{
		resolver:  resolver,
		store:     store,
		assembler: cfg.assembler,
		logger:    cfg.logger,
		onError:   cfg.onError,
		fonts:     make(map[fonts.ID]*fontEntry),
	}
	if c.assembler == nil {
		c.assembler = mesh.NewAssembler(nil, cfg.tolerance)
	}
	if c.onError == nil {
		c.onError = c.logError
	}
	return c
}

// GetOrCreate returns the mesh entry for glyph gid of font id, together with
// the font's metrics.
//
// Errors:
//   - ErrFontNotLoaded when the resolver does not have the font; nothing is
//     cached and the call may be retried later.
//   - ErrNoOutline when the glyph has no geometry.
//   - *TessellationError when the fill failed. The error handler sees it
//     once; later calls return the memoized error.
func (c *Cache) GetOrCreate(id fonts.ID, gid fonts.GlyphID) (Entry, Metrics, error) {
	font, ok := c.resolver.Font(id)
	if !ok || font == nil {
		return Entry{}, Metrics{}, ErrFontNotLoaded
	}

	fe := c.fontEntry(id, font)
	if e, ok := fe.glyphs[gid]; ok {
		c.stats.hits.Add(1)
		return e, fe.metrics, nil
	}
	if err, ok := fe.failed[gid]; ok {
		c.stats.hits.Add(1)
		return Entry{}, fe.metrics, err
	}
	c.stats.misses.Add(1)

	e, err := c.build(id, gid, font)
	if err != nil {
		fe.failed[gid] = err
		var tessErr *TessellationError
		if errors.As(err, &tessErr) {
			c.stats.failures.Add(1)
			c.onError(err)
		}
		return Entry{}, fe.metrics, err
	}
	fe.glyphs[gid] = e
	return e, fe.metrics, nil
}

// Metrics returns the memoized metrics of font id, computing them if the
// font is loaded.
func (c *Cache) Metrics(id fonts.ID) (Metrics, error) {
	font, ok := c.resolver.Font(id)
	if !ok || font == nil {
		return Metrics{}, ErrFontNotLoaded
	}
	return c.fontEntry(id, font).metrics, nil
}

// fontEntry returns the entry for id, creating it and querying the font's
// metrics on first use or after the font was replaced.
func (c *Cache) fontEntry(id fonts.ID, font fonts.Font) *fontEntry {
	if fe, ok := c.fonts[id]; ok {
		if fe.font == font {
			return fe
		}
		c.logger().Debug("glyphcache: font replaced", "font", id, "dropped", len(fe.glyphs))
	}
	c.stats.metricsQueries.Add(1)
	fe := &fontEntry{
		font:    font,
		metrics: Metrics{Scale: font.Scale(), Descent: font.Descent()},
		glyphs:  make(map[fonts.GlyphID]Entry),
		failed:  make(map[fonts.GlyphID]error),
	}
	c.fonts[id] = fe
	c.logger().Debug("glyphcache: font metrics",
		"font", id, "scale", fe.metrics.Scale, "descent", fe.metrics.Descent)
	return fe
}

// build tessellates one glyph and allocates its mesh.
func (c *Cache) build(id fonts.ID, gid fonts.GlyphID, font fonts.Font) (Entry, error) {
	g, ok := font.Outline(gid)
	if !ok || g.IsEmpty() {
		c.logger().Debug("glyphcache: no outline", "font", id, "glyph", gid)
		return Entry{}, ErrNoOutline
	}

	c.stats.tessellations.Add(1)
	geom, err := c.assembler.Assemble(outline.BuildContours(g.Curves), g.Bounds)
	if errors.Is(err, mesh.ErrNoGeometry) {
		c.logger().Debug("glyphcache: empty geometry", "font", id, "glyph", gid)
		return Entry{}, ErrNoOutline
	}
	if err != nil {
		return Entry{}, &TessellationError{Font: id, Glyph: gid, Err: err}
	}

	bounds := g.Bounds.Canon()
	e := Entry{
		Mesh:    c.store.AddMesh(geom),
		Advance: font.Advance(gid),
		Width:   bounds.Width(),
		Height:  bounds.Height(),
	}
	c.logger().Debug("glyphcache: tessellated",
		"font", id, "glyph", gid,
		"vertices", geom.VertexCount(), "triangles", geom.TriangleCount())
	return e, nil
}

// Len returns the number of cached glyph meshes.
func (c *Cache) Len() int {
	n := 0
	for _, fe := range c.fonts {
		n += len(fe.glyphs)
	}
	return n
}

// ForgetFont drops everything cached for font id, including its metrics and
// memoized failures. Meshes already allocated stay in the store.
func (c *Cache) ForgetFont(id fonts.ID) {
	delete(c.fonts, id)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:           c.stats.hits.Load(),
		Misses:         c.stats.misses.Load(),
		Tessellations:  c.stats.tessellations.Load(),
		Failures:       c.stats.failures.Load(),
		MetricsQueries: c.stats.metricsQueries.Load(),
	}
}

func (c *Cache) logError(err error) {
	c.logger().Error("glyphcache: tessellation failed", "err", err)
}
