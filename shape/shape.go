// Package shape positions glyphs for multi-section text.
//
// A Shaper receives the sections of a text block, each with its own font and
// size, and returns one Glyph per shaped glyph with a scaled pen position.
// Positions use a Y-down layout space whose origin is the top-left of the
// block: the first baseline sits at the largest scaled ascent on the first
// line, and each '\n' starts a new line one line height below.
//
// Two shapers are provided:
//   - GoTextShaper uses HarfBuzz from go-text/typesetting for fonts that
//     implement fonts.FaceProvider (ligatures, kerning, complex scripts).
//   - SimpleShaper places glyphs by advance and pair kerning, and works with
//     any font implementing fonts.RuneMapper.
package shape

import (
	"strings"

	"github.com/gogpu/text3d/fonts"
)

// Section is a run of text in a single font and size.
type Section struct {
	Text string
	Font fonts.Font

	// Size is the requested line size; the font is scaled by
	// Size / Font.Scale().
	Size float32
}

// scale returns the design-unit to layout-unit factor, or 0 when the
// section cannot be laid out.
func (s Section) scale() float32 {
	if s.Font == nil || s.Size <= 0 {
		return 0
	}
	natural := s.Font.Scale()
	if natural <= 0 {
		return 0
	}
	return s.Size / natural
}

// Glyph is a positioned glyph.
type Glyph struct {
	ID fonts.GlyphID

	// Section is the index of the section the glyph came from.
	Section int

	// X, Y is the scaled pen position on the baseline, Y down.
	X, Y float32
}

// Shaper lays out sections into positioned glyphs.
type Shaper interface {
	Shape(sections []Section) []Glyph
}

// placed is a glyph positioned relative to the start of its run, Y up.
type placed struct {
	id   fonts.GlyphID
	x, y float32
}

// runFunc shapes one single-line run of a section. It returns the glyphs
// and the total advance, both in scaled units.
type runFunc func(sec Section, k float32, text []rune) ([]placed, float32)

// run is the part of a section that falls on one line.
type run struct {
	section int
	text    string
}

// splitLines breaks sections at '\n'. Every line holds at least one run,
// possibly with empty text, so empty lines keep the metrics of their section.
func splitLines(sections []Section) [][]run {
	var lines [][]run
	var cur []run
	for i, s := range sections {
		pieces := strings.Split(s.Text, "\n")
		for j, p := range pieces {
			if j > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			cur = append(cur, run{section: i, text: strings.TrimSuffix(p, "\r")})
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// lineMetrics returns the largest scaled ascent and the lowest scaled
// descent (negative) among the runs of a line. Runs without text count only
// when the whole line is empty.
func lineMetrics(sections []Section, line []run) (ascent, descent float32) {
	hasText := false
	for _, r := range line {
		if r.text != "" {
			hasText = true
			break
		}
	}

	for _, r := range line {
		if hasText && r.text == "" {
			continue
		}
		sec := sections[r.section]
		k := sec.scale()
		if k == 0 {
			continue
		}
		ascent = max(ascent, fonts.Ascent(sec.Font)*k)
		descent = min(descent, sec.Font.Descent()*k)
	}
	return ascent, descent
}

// layout runs shapeRun over every line and converts run-relative positions
// to block positions.
func layout(sections []Section, shapeRun runFunc) []Glyph {
	var (
		out []Glyph
		top float32
	)
	for _, line := range splitLines(sections) {
		ascent, descent := lineMetrics(sections, line)
		baseline := top + ascent

		var x float32
		for _, r := range line {
			sec := sections[r.section]
			k := sec.scale()
			if r.text == "" || k == 0 {
				continue
			}
			glyphs, advance := shapeRun(sec, k, []rune(r.text))
			for _, g := range glyphs {
				out = append(out, Glyph{
					ID:      g.id,
					Section: r.section,
					X:       x + g.x,
					Y:       baseline - g.y,
				})
			}
			x += advance
		}
		top = baseline - descent
	}
	return out
}
