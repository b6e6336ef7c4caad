package widgets

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/rendering"
)

// TextField displays an editable single value. The field does not own its
// text: the parent keeps the value in state and passes it back in on every
// build, updating it from OnChanged.
//
//	TextField{
//	    ID:          "title",
//	    Value:       s.draft.Title,
//	    Placeholder: "Post title",
//	    OnChanged:   s.UpdateTitle,
//	}
type TextField struct {
	core.NodeBase
	// ID identifies the field; it doubles as the widget key.
	ID string
	// Label is shown before the value when set.
	Label string
	// Value is the current text.
	Value string
	// Placeholder is shown when Value is empty.
	Placeholder string
	// OnChanged is called with the new text on input.
	OnChanged func(string)
	// Disabled rejects input when true.
	Disabled bool
}

func (f TextField) Key() any {
	if f.ID == "" {
		return nil
	}
	return f.ID
}

func (f TextField) ChildWidgets() []core.Widget { return nil }

// HandleInput forwards text to OnChanged.
func (f TextField) HandleInput(text string) bool {
	if f.Disabled || f.OnChanged == nil {
		return false
	}
	f.OnChanged(text)
	return true
}

// Paint draws the value, or the placeholder when the value is empty.
func (f TextField) Paint(c *rendering.Canvas) {
	prefix := "> "
	if f.Label != "" {
		prefix = f.Label + ": "
	}
	if f.Value == "" {
		c.DrawText(prefix+f.Placeholder, MutedStyle)
		return
	}
	style := rendering.TextStyle{}
	if f.Disabled {
		style.Color = rendering.ColorGray
	}
	c.DrawText(prefix+f.Value, style)
}
