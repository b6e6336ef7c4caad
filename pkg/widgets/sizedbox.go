package widgets

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/rendering"
)

// SizedBox reserves vertical space. Without a child it paints Height
// logical pixels of blank lines; with a child it paints only the child.
//
//	// Separator between list items
//	SizedBox{Height: 16}
type SizedBox struct {
	core.NodeBase
	Height float64
	Child  core.Widget
}

func (s SizedBox) ChildWidgets() []core.Widget {
	if s.Child == nil {
		return nil
	}
	return []core.Widget{s.Child}
}

// Paint draws the gap when the box is empty.
func (s SizedBox) Paint(c *rendering.Canvas) {
	if s.Child == nil {
		c.DrawGap(s.Height)
	}
}

// VSpace creates a vertical spacer.
func VSpace(height float64) SizedBox {
	return SizedBox{Height: height}
}
