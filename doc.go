// Package text3d turns styled text into triangle meshes placed in 3D space.
//
// # Overview
//
// A System owns a set of text blocks. Each block is a list of sections,
// each with its own font, size and color. On every Update the system lays
// out the blocks that changed, plus any that were waiting for a font, and
// hands each finished block to a Target as one mesh instance per visible
// glyph:
//
//	lib := fonts.NewLibrary()
//	id, _ := lib.Load(goregular.TTF)
//
//	graph := scene.NewGraph()
//	sys := text3d.New(graph, lib)
//	sys.Set(1, text3d.TextBlock{Sections: []text3d.Section{{
//	    Text:  "Hello",
//	    Style: text3d.Style{Font: id, Size: 40, Color: gputypes.ColorWhite},
//	}}})
//	sys.Update()
//
// # Pipeline
//
// Glyph outlines come from the fonts package. They are rebuilt into closed
// contours (outline), filled into triangles (mesh) and memoized per font
// and glyph (glyphcache), so every glyph is tessellated once no matter how
// many blocks use it. Glyph positions come from a shape.Shaper.
//
// # Missing fonts
//
// A block whose font is not loaded yet produces no output and is retried on
// the next Update, and on every Update after that until the font appears or
// the block is removed. A block is never committed partially: its children
// are replaced only when every glyph resolved.
//
// # Coordinates
//
// Layout runs in a Y-down space with the first baseline at the top line's
// ascent. Instances are emitted in a Y-up space centered on the block: a
// glyph at layout position (x, y) is translated to (x-cx, cy-y), where
// (cx, cy) is the center of the block's bounding box. Glyph meshes are in
// font design units and are scaled by size / (ascent - descent).
//
// # Concurrency
//
// System is not safe for concurrent use; call Update from one goroutine.
// fonts.Library may be filled from other goroutines.
package text3d
