package widgets

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/rendering"
)

// Text displays a string with a single style. Text wraps at the width left
// on the canvas after indentation; explicit newlines start new paragraphs.
//
//	Text{Content: post.Title, Style: rendering.TextStyle{Bold: true}}
type Text struct {
	core.NodeBase
	// Content is the text string to display.
	Content string
	// Style controls colour, weight and alignment.
	Style rendering.TextStyle
}

// TextOf creates a Text with the default style.
func TextOf(content string) Text {
	return Text{Content: content}
}

func (t Text) ChildWidgets() []core.Widget { return nil }

// Paint draws the text.
func (t Text) Paint(c *rendering.Canvas) {
	c.DrawText(t.Content, t.Style)
}

// HeaderStyle is used for list headers and footers.
var HeaderStyle = rendering.TextStyle{Bold: true, Align: rendering.TextAlignCenter}

// MutedStyle is used for placeholders and secondary text.
var MutedStyle = rendering.TextStyle{Color: rendering.ColorGray, Italic: true}
