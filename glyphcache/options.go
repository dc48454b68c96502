package glyphcache

import (
	"log/slog"

	"github.com/gogpu/text3d/mesh"
)

// Option configures a Cache.
type Option func(*config)

type config struct {
	assembler *mesh.Assembler
	tolerance float32
	logger    func() *slog.Logger
	onError   func(error)
}

func defaultConfig() config {
	discard := slog.New(slog.DiscardHandler)
	return config{logger: func() *slog.Logger { return discard }}
}

// WithAssembler sets the mesh assembler. It overrides WithTolerance.
func WithAssembler(a *mesh.Assembler) Option {
	return func(c *config) {
		c.assembler = a
	}
}

// WithTolerance sets the curve flattening tolerance of the default
// assembler, in font design units.
func WithTolerance(tolerance float32) Option {
	return func(c *config) {
		c.tolerance = tolerance
	}
}

// WithLogger sets the logger. By default the cache is silent.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = func() *slog.Logger { return l }
		}
	}
}

// WithLoggerFunc makes the cache fetch its logger from fn on every log call,
// so a logger swapped at runtime takes effect immediately. fn must not
// return nil.
func WithLoggerFunc(fn func() *slog.Logger) Option {
	return func(c *config) {
		if fn != nil {
			c.logger = fn
		}
	}
}

// WithErrorHandler sets the function that receives each tessellation
// failure once. The default logs it at error level.
func WithErrorHandler(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}
