package text3d

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/text3d/glyphcache"
	"github.com/gogpu/text3d/mesh"
	"github.com/gogpu/text3d/shape"
)

// layoutResult is a fully resolved block.
type layoutResult struct {
	children []Instance
	size     Vec2
}

// pending is a glyph that resolved but has no material yet.
type pending struct {
	mesh  mesh.ID
	x, y  float32
	scale float32
	color gputypes.Color
}

// bbox is a running union of rectangles in layout space.
type bbox struct {
	minX, minY, maxX, maxY float32
	valid                  bool
}

func (b *bbox) add(minX, minY, maxX, maxY float32) {
	if !b.valid {
		*b = bbox{minX: minX, minY: minY, maxX: maxX, maxY: maxY, valid: true}
		return
	}
	b.minX, b.minY = min(b.minX, minX), min(b.minY, minY)
	b.maxX, b.maxY = max(b.maxX, maxX), max(b.maxY, maxY)
}

func (b *bbox) center() (float32, float32) {
	return (b.minX + b.maxX) / 2, (b.minY + b.maxY) / 2
}

func (b *bbox) size() Vec2 {
	if !b.valid {
		return Vec2{}
	}
	return Vec2{X: b.maxX - b.minX, Y: b.maxY - b.minY}
}

// layout resolves every glyph of block. It returns *FontNotLoadedError when
// the block must wait; nothing is allocated in that case.
func (s *System) layout(id BlockID, block TextBlock) (layoutResult, error) {
	sections := make([]shape.Section, len(block.Sections))
	for i, sec := range block.Sections {
		font, ok := s.resolver.Font(sec.Style.Font)
		if !ok || font == nil {
			return layoutResult{}, &FontNotLoadedError{Block: id, Font: sec.Style.Font}
		}
		sections[i] = shape.Section{Text: sec.Text, Font: font, Size: sec.Style.Size}
	}

	glyphs := s.shaper.Shape(sections)

	var (
		box   bbox
		found = make([]pending, 0, len(glyphs))
	)
	for _, g := range glyphs {
		style := block.Sections[g.Section].Style
		entry, metrics, err := s.cache.GetOrCreate(style.Font, g.ID)
		switch {
		case errors.Is(err, glyphcache.ErrFontNotLoaded):
			return layoutResult{}, &FontNotLoadedError{Block: id, Font: style.Font}
		case errors.Is(err, glyphcache.ErrNoOutline):
			continue
		case err != nil:
			Logger().Warn("text3d: glyph skipped", "block", id, "glyph", g.ID, "err", err)
			continue
		}
		if metrics.Scale <= 0 {
			continue
		}

		k := style.Size / metrics.Scale
		box.add(g.X, 0, g.X+entry.Advance*k, g.Y-metrics.Descent*k)
		found = append(found, pending{
			mesh:  entry.Mesh,
			x:     g.X,
			y:     g.Y,
			scale: k,
			color: style.Color,
		})
	}

	cx, cy := box.center()
	children := make([]Instance, len(found))
	for i, p := range found {
		children[i] = Instance{
			Mesh:     p.mesh,
			Material: s.store.AddMaterial(p.color),
			Transform: Transform{
				Translation: Vec3{X: p.x - cx, Y: cy - p.y},
				Scale:       Vec3{X: p.scale, Y: p.scale, Z: 1},
			},
			Mode: s.mode,
		}
	}
	return layoutResult{children: children, size: box.size()}, nil
}
