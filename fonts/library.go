package fonts

import (
	"fmt"
	"os"
	"sync"
)

// Parser turns font file data into a Font.
type Parser func(data []byte) (Font, error)

// ParseGoText is the Parser backed by go-text/typesetting.
func ParseGoText(data []byte) (Font, error) {
	return NewGoTextFont(data)
}

// ParseSFNT is the Parser backed by x/image/font/sfnt.
func ParseSFNT(data []byte) (Font, error) {
	return NewSFNTFont(data)
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithParser sets the parser used by Load and LoadFile.
// The default is ParseGoText.
func WithParser(p Parser) LibraryOption {
	return func(l *Library) {
		if p != nil {
			l.parser = p
		}
	}
}

// Library is the default Resolver. IDs are issued in increasing order and are
// never reused.
//
// An ID can be reserved before its font is available; it then resolves to
// (nil, false) until Set provides the font. This mirrors an asset system
// where handles exist before loading completes.
//
// Library is safe for concurrent use, so fonts may be loaded from a
// background goroutine while layout runs.
type Library struct {
	mu     sync.RWMutex
	fonts  map[ID]Font
	issued ID
	parser Parser
}

// NewLibrary creates an empty library.
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		fonts:  make(map[ID]Font),
		parser: ParseGoText,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reserve issues a new ID without a font.
func (l *Library) Reserve() ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reserveLocked()
}

func (l *Library) reserveLocked() ID {
	l.issued++
	return l.issued
}

// Add registers f under a new ID.
func (l *Library) Add(f Font) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.reserveLocked()
	l.fonts[id] = f
	return id
}

// Set provides the font for a previously issued ID, replacing any font
// already there.
func (l *Library) Set(id ID, f Font) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id == 0 || id > l.issued {
		return fmt.Errorf("%w: %d", ErrUnknownFont, id)
	}
	l.fonts[id] = f
	return nil
}

// Load parses data with the library's parser and registers the result.
func (l *Library) Load(data []byte) (ID, error) {
	f, err := l.parser(data)
	if err != nil {
		return 0, err
	}
	return l.Add(f), nil
}

// SetData parses data with the library's parser and provides the result
// for a reserved id.
func (l *Library) SetData(id ID, data []byte) error {
	f, err := l.parser(data)
	if err != nil {
		return err
	}
	return l.Set(id, f)
}

// LoadFile reads and registers a font file.
func (l *Library) LoadFile(path string) (ID, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("fonts: failed to read font file: %w", err)
	}
	return l.Load(data)
}

// Remove unloads the font for id. The ID stays issued and resolves to
// (nil, false) until Set is called again.
func (l *Library) Remove(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.fonts, id)
}

// Font implements Resolver.
func (l *Library) Font(id ID) (Font, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	f, ok := l.fonts[id]
	return f, ok
}

// Len returns the number of loaded fonts.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.fonts)
}
