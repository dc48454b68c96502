package text3d

import (
	"github.com/gogpu/text3d/glyphcache"
	"github.com/gogpu/text3d/mesh"
	"github.com/gogpu/text3d/shape"
)

// Option configures a System during creation.
//
// Example:
//
//	// Defaults: HarfBuzz shaping, in-memory mesh arena
//	sys := text3d.New(graph, lib)
//
//	// Plain advance-and-kern placement, wireframe output
//	sys := text3d.New(graph, lib,
//	    text3d.WithShaper(&shape.SimpleShaper{}),
//	    text3d.WithRenderMode(text3d.RenderOutline))
type Option func(*options)

// options holds optional configuration for System creation.
type options struct {
	shaper    shape.Shaper
	store     mesh.Store
	cache     *glyphcache.Cache
	onError   func(error)
	mode      RenderMode
	tolerance float32
}

// defaultOptions returns the default system options.
func defaultOptions() options {
	return options{
		shaper: nil, // shape.NewGoTextShaper() if nil
		store:  nil, // mesh.NewArena() if nil
		mode:   RenderSolid,
	}
}

// WithShaper sets the shaper used for layout.
func WithShaper(s shape.Shaper) Option {
	return func(o *options) {
		o.shaper = s
	}
}

// WithStore sets where meshes and materials are allocated.
func WithStore(s mesh.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithCache shares an existing glyph cache, for example between systems
// drawing into the same scene. The cache must allocate meshes in the same
// store as the system; WithTolerance has no effect on it.
func WithCache(c *glyphcache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithErrorHandler sets the function that receives every tessellation
// failure, once per font and glyph. By default failures are logged at
// error level.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithRenderMode sets the mode of emitted instances.
func WithRenderMode(m RenderMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithTolerance sets the curve flattening tolerance in font design units.
func WithTolerance(tolerance float32) Option {
	return func(o *options) {
		o.tolerance = tolerance
	}
}
