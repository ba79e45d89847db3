// Package layout rebuilds reading-order text from positioned PDF glyphs.
//
// Glyphs are chained into lines when they overlap vertically and sit close
// horizontally, spaces are inserted at word gaps, and consecutive lines that
// are vertically close are grouped into boxes. Each line ends with a newline
// and each box with an extra blank line.
package layout

import (
	"math"
	"strings"
	"unicode"

	"github.com/nodewee/doc-to-json/pkg/constants"
)

// Params are the grouping thresholds, all relative to glyph dimensions
type Params struct {
	// LineOverlap is the minimum vertical overlap, as a fraction of the
	// smaller glyph height, for two glyphs to share a line
	LineOverlap float64
	// CharMargin is the maximum horizontal gap, in glyph widths, between
	// two glyphs of one line
	CharMargin float64
	// LineMargin is the maximum vertical gap, in line heights, between two
	// lines of one box
	LineMargin float64
	// WordMargin is the horizontal gap, in glyph widths, above which a space
	// is inserted
	WordMargin float64
	// AllTexts keeps every glyph; when false, glyphs with no font size are
	// dropped
	AllTexts bool
}

// DefaultParams returns the fixed parameters used for every page
func DefaultParams() Params {
	return Params{
		LineOverlap: constants.LayoutLineOverlap,
		CharMargin:  constants.LayoutCharMargin,
		LineMargin:  constants.LayoutLineMargin,
		WordMargin:  constants.LayoutWordMargin,
		AllTexts:    constants.LayoutAllTexts,
	}
}

// Glyph is one positioned run of text, X/Y being the baseline origin
type Glyph struct {
	X, Y  float64
	Width float64
	Size  float64
	Text  string
}

type box struct {
	x0, y0, x1, y1 float64
}

func (b box) width() float64  { return b.x1 - b.x0 }
func (b box) height() float64 { return b.y1 - b.y0 }

func glyphBox(g Glyph) box {
	w := g.Width
	if w < 0 {
		w = 0
	}
	return box{x0: g.X, y0: g.Y, x1: g.X + w, y1: g.Y + g.Size}
}

func voverlap(a, b box) float64 {
	return math.Min(a.y1, b.y1) - math.Max(a.y0, b.y0)
}

func hoverlap(a, b box) float64 {
	return math.Min(a.x1, b.x1) - math.Max(a.x0, b.x0)
}

func hdistance(a, b box) float64 {
	if hoverlap(a, b) > 0 {
		return 0
	}
	return math.Min(math.Abs(a.x0-b.x1), math.Abs(a.x1-b.x0))
}

func vdistance(a, b box) float64 {
	if voverlap(a, b) > 0 {
		return 0
	}
	return math.Min(math.Abs(a.y0-b.y1), math.Abs(a.y1-b.y0))
}

func union(a, b box) box {
	return box{
		x0: math.Min(a.x0, b.x0), y0: math.Min(a.y0, b.y0),
		x1: math.Max(a.x1, b.x1), y1: math.Max(a.y1, b.y1),
	}
}

// span is the horizontal yardstick of a pair, falling back to height for
// fonts that report no advance widths
func span(a, b box) float64 {
	if s := math.Max(a.width(), b.width()); s > 0 {
		return s
	}
	return math.Max(a.height(), b.height())
}

type line struct {
	bounds box
	last   box
	text   strings.Builder
}

// Reconstruct returns the page text for glyphs in content-stream order.
func Reconstruct(glyphs []Glyph, p Params) string {
	lines := groupLines(filter(glyphs, p), p)
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	prev := lines[0].bounds
	for i, ln := range lines {
		if i > 0 && !sameBox(prev, ln.bounds, p) {
			sb.WriteString("\n")
		}
		sb.WriteString(ln.text.String())
		sb.WriteString("\n")
		prev = ln.bounds
	}
	sb.WriteString("\n")
	return sb.String()
}

func filter(glyphs []Glyph, p Params) []Glyph {
	if p.AllTexts {
		return glyphs
	}
	kept := make([]Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.Size <= 0 {
			continue
		}
		kept = append(kept, g)
	}
	return kept
}

func groupLines(glyphs []Glyph, p Params) []*line {
	var lines []*line
	var cur *line

	for _, g := range glyphs {
		if g.Text == "" {
			continue
		}
		gb := glyphBox(g)

		if cur != nil && sameLine(cur.last, gb, p) {
			if wordGap(cur.last, gb, p) && !endsWithSpace(&cur.text) && !startsWithSpace(g.Text) {
				cur.text.WriteByte(' ')
			}
			cur.text.WriteString(g.Text)
			cur.bounds = union(cur.bounds, gb)
			cur.last = gb
			continue
		}

		cur = &line{bounds: gb, last: gb}
		cur.text.WriteString(g.Text)
		lines = append(lines, cur)
	}

	for _, ln := range lines {
		trimmed := strings.TrimRightFunc(ln.text.String(), unicode.IsSpace)
		ln.text.Reset()
		ln.text.WriteString(trimmed)
	}
	return lines
}

func sameLine(prev, next box, p Params) bool {
	minHeight := math.Min(prev.height(), next.height())
	if voverlap(prev, next) <= minHeight*p.LineOverlap && !(minHeight == 0 && prev.y0 == next.y0) {
		return false
	}
	// text running backwards starts a new line
	if next.x1 < prev.x0 {
		return false
	}
	return hdistance(prev, next) <= span(prev, next)*p.CharMargin
}

func wordGap(prev, next box, p Params) bool {
	return next.x0-prev.x1 > p.WordMargin*span(prev, next)
}

func sameBox(prev, next box, p Params) bool {
	if hoverlap(prev, next) <= 0 {
		return false
	}
	return vdistance(prev, next) <= math.Max(prev.height(), next.height())*p.LineMargin
}

func endsWithSpace(sb *strings.Builder) bool {
	s := sb.String()
	return s != "" && unicode.IsSpace(rune(s[len(s)-1]))
}

func startsWithSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[0]))
}
