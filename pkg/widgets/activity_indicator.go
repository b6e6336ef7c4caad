package widgets

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/rendering"
)

// ActivityIndicatorSize selects the indicator glyph.
type ActivityIndicatorSize int

const (
	ActivityIndicatorSmall ActivityIndicatorSize = iota
	ActivityIndicatorLarge
)

// ActivityIndicator shows that work is in progress.
type ActivityIndicator struct {
	core.NodeBase
	Size ActivityIndicatorSize
}

func (a ActivityIndicator) ChildWidgets() []core.Widget { return nil }

// Paint draws the indicator.
func (a ActivityIndicator) Paint(c *rendering.Canvas) {
	glyph := "~"
	if a.Size == ActivityIndicatorLarge {
		glyph = "( ~ ~ ~ )"
	}
	c.DrawText(glyph, rendering.TextStyle{Color: rendering.ColorBlue, Align: rendering.TextAlignCenter})
}
