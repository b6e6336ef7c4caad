package widgets

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/rendering"
)

// Card frames its child between two rules and indents it.
// ID, when set, is used as the widget key. Children are matched by
// position, so a card whose key differs from the one it replaces is
// remounted rather than updated.
type Card struct {
	ID    any
	Child core.Widget
}

func (c Card) CreateElement() core.Element { return &core.NodeElement{} }

func (c Card) Key() any { return c.ID }

func (c Card) ChildWidgets() []core.Widget {
	if c.Child == nil {
		return nil
	}
	return []core.Widget{c.Child}
}

const cardInset = 2

// Paint draws the top edge and opens the inset.
func (c Card) Paint(canvas *rendering.Canvas) {
	canvas.DrawRule('-')
	canvas.Indent(cardInset)
}

// PaintAfter closes the inset and draws the bottom edge.
func (c Card) PaintAfter(canvas *rendering.Canvas) {
	canvas.Outdent(cardInset)
	canvas.DrawRule('-')
}
