package rendering

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextAlign controls horizontal placement of laid-out lines.
type TextAlign int

const (
	TextAlignStart TextAlign = iota
	TextAlignCenter
)

// Color is a terminal foreground colour.
type Color int

const (
	ColorDefault Color = iota
	ColorGray
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
)

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color  Color
	Bold   bool
	Italic bool
	Align  TextAlign
}

// TextLine represents a single laid-out line of text.
type TextLine struct {
	Text  string
	Width float64
}

// TextLayout contains measured text metrics.
type TextLayout struct {
	Text       string
	Style      TextStyle
	Width      float64
	LineHeight float64
	Lines      []TextLine
}

// Height returns the total height of the laid-out text.
func (l *TextLayout) Height() float64 {
	return l.LineHeight * float64(len(l.Lines))
}

// DefaultFace is the fixed-width face used to measure terminal text.
// Every glyph advances by the same width, so one cell maps to one column.
func DefaultFace() font.Face {
	return basicfont.Face7x13
}

// CellWidth returns the advance of a single glyph in face.
func CellWidth(face font.Face) float64 {
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return 1
	}
	return float64(advance.Ceil())
}

// LayoutText measures text with face and wraps it within maxWidth.
// A maxWidth of zero disables wrapping.
func LayoutText(text string, style TextStyle, face font.Face, maxWidth float64) *TextLayout {
	if face == nil {
		face = DefaultFace()
	}
	measure := func(s string) float64 {
		return float64(font.MeasureString(face, s).Ceil())
	}
	metrics := face.Metrics()
	lineHeight := float64(metrics.Height.Ceil())
	if lineHeight == 0 {
		lineHeight = float64((metrics.Ascent + metrics.Descent).Ceil())
	}

	lines := layoutLines(text, maxWidth, measure)
	if len(lines) == 0 {
		lines = []TextLine{{}}
	}
	width := 0.0
	for _, line := range lines {
		width = math.Max(width, line.Width)
	}
	return &TextLayout{
		Text:       text,
		Style:      style,
		Width:      width,
		LineHeight: lineHeight,
		Lines:      lines,
	}
}

func layoutLines(text string, maxWidth float64, measure func(string) float64) []TextLine {
	if maxWidth < 0 || math.IsInf(maxWidth, 0) {
		maxWidth = 0
	}
	paragraphs := strings.Split(text, "\n")
	lines := make([]TextLine, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if paragraph == "" {
			lines = append(lines, TextLine{})
			continue
		}
		if maxWidth == 0 {
			lines = append(lines, TextLine{Text: paragraph, Width: measure(paragraph)})
			continue
		}
		for _, line := range wrapParagraph(paragraph, maxWidth, measure) {
			lines = append(lines, TextLine{Text: line, Width: measure(line)})
		}
	}
	return lines
}

// wrapParagraph breaks text at the last space that fits, or mid-word when a
// single word is wider than maxWidth.
func wrapParagraph(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	start := 0
	for start < len(text) {
		lastBreak := -1
		lastFit := -1
		for i := start; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size
			if measure(text[start:next]) > maxWidth {
				break
			}
			lastFit = next
			if unicode.IsSpace(r) {
				lastBreak = next
			}
			i = next
		}
		if lastFit == -1 {
			_, size := utf8.DecodeRuneInString(text[start:])
			lastFit = start + size
		}
		cut := lastFit
		if lastFit < len(text) && lastBreak > start && lastBreak < lastFit {
			cut = lastBreak
		}
		lines = append(lines, strings.TrimRightFunc(text[start:cut], unicode.IsSpace))
		start = cut
		for start < len(text) {
			r, size := utf8.DecodeRuneInString(text[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
