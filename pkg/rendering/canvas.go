// Package rendering paints a widget tree onto a headless text canvas.
package rendering

import (
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/image/font"

	"github.com/go-drift/postboard/pkg/core"
)

// Painter is implemented by widgets that draw themselves.
// Paint runs before the widget's children are painted.
type Painter interface {
	Paint(c *Canvas)
}

// PostPainter is implemented by widgets that draw after their children,
// such as the closing edge of a card.
type PostPainter interface {
	PaintAfter(c *Canvas)
}

// Canvas accumulates painted lines for one frame.
// Widths are in pixels of the canvas face; one cell is one terminal column.
type Canvas struct {
	width  float64
	face   font.Face
	cell   float64
	indent float64
	plain  []string
	styled []string
	color  bool
}

// NewCanvas creates a canvas columns cells wide.
func NewCanvas(columns int, colorEnabled bool) *Canvas {
	face := DefaultFace()
	cell := CellWidth(face)
	return &Canvas{
		width: float64(columns) * cell,
		face:  face,
		cell:  cell,
		color: colorEnabled,
	}
}

// Columns returns the canvas width in cells.
func (c *Canvas) Columns() int {
	return int(c.width / c.cell)
}

// Indent shifts subsequent lines right by cells columns.
func (c *Canvas) Indent(cells int) {
	c.indent += float64(cells) * c.cell
}

// Outdent reverses a previous Indent.
func (c *Canvas) Outdent(cells int) {
	c.indent -= float64(cells) * c.cell
	if c.indent < 0 {
		c.indent = 0
	}
}

// DrawText lays out text within the remaining width and appends its lines.
func (c *Canvas) DrawText(text string, style TextStyle) {
	available := c.width - c.indent
	layout := LayoutText(text, style, c.face, available)
	for _, line := range layout.Lines {
		pad := c.indent
		if style.Align == TextAlignCenter && line.Width < available {
			pad += (available - line.Width) / 2
		}
		prefix := strings.Repeat(" ", int(pad/c.cell))
		c.plain = append(c.plain, prefix+line.Text)
		c.styled = append(c.styled, prefix+c.colorize(line.Text, style))
	}
}

// DrawRule draws a horizontal rule across the remaining width.
func (c *Canvas) DrawRule(ch rune) {
	cells := int((c.width - c.indent) / c.cell)
	if cells < 0 {
		cells = 0
	}
	line := strings.Repeat(" ", int(c.indent/c.cell)) + strings.Repeat(string(ch), cells)
	c.plain = append(c.plain, line)
	c.styled = append(c.styled, line)
}

// DrawSpace appends n blank lines.
func (c *Canvas) DrawSpace(n int) {
	for i := 0; i < n; i++ {
		c.plain = append(c.plain, "")
		c.styled = append(c.styled, "")
	}
}

// DrawGap appends blank lines covering height pixels of the canvas face.
// Any positive height yields at least one line.
func (c *Canvas) DrawGap(height float64) {
	if height <= 0 {
		return
	}
	lineHeight := float64(c.face.Metrics().Height.Ceil())
	if lineHeight <= 0 {
		lineHeight = 1
	}
	rows := int(math.Round(height / lineHeight))
	if rows < 1 {
		rows = 1
	}
	c.DrawSpace(rows)
}

// Lines returns the painted lines without colour codes.
func (c *Canvas) Lines() []string {
	return c.plain
}

// String returns the painted lines joined by newlines, without colour codes.
func (c *Canvas) String() string {
	return strings.Join(c.plain, "\n")
}

// WriteTo writes the styled frame to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for _, line := range c.styled {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (c *Canvas) colorize(text string, style TextStyle) string {
	if !c.color || text == "" {
		return text
	}
	var attrs []color.Attribute
	switch style.Color {
	case ColorGray:
		attrs = append(attrs, color.FgHiBlack)
	case ColorRed:
		attrs = append(attrs, color.FgRed)
	case ColorGreen:
		attrs = append(attrs, color.FgGreen)
	case ColorBlue:
		attrs = append(attrs, color.FgBlue)
	case ColorYellow:
		attrs = append(attrs, color.FgYellow)
	}
	if style.Bold {
		attrs = append(attrs, color.Bold)
	}
	if style.Italic {
		attrs = append(attrs, color.Italic)
	}
	if len(attrs) == 0 {
		return text
	}
	printer := color.New(attrs...)
	printer.EnableColor()
	return printer.Sprint(text)
}

// PaintTree paints root and its descendants in pre-order.
func PaintTree(root core.Element, c *Canvas) {
	if root == nil {
		return
	}
	widget := root.Widget()
	if p, ok := widget.(Painter); ok {
		p.Paint(c)
	}
	root.VisitChildren(func(child core.Element) bool {
		PaintTree(child, c)
		return true
	})
	if p, ok := widget.(PostPainter); ok {
		p.PaintAfter(c)
	}
}
