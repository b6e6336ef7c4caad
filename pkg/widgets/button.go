package widgets

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/rendering"
)

// Button is a tappable label.
//
//	Button{
//	    Label:    "Add",
//	    OnTap:    s.Submit,
//	    Disabled: s.busy,
//	}
//
// A disabled button paints greyed out and ignores taps.
type Button struct {
	core.NodeBase
	// Label is the text displayed on the button.
	Label string
	// OnTap is called when the button is tapped.
	OnTap func()
	// Disabled disables the button when true.
	Disabled bool
}

// ButtonOf creates a button with the given label and tap handler.
func ButtonOf(label string, onTap func()) Button {
	return Button{Label: label, OnTap: onTap}
}

// WithDisabled returns a copy of the button with the disabled flag set.
func (b Button) WithDisabled(disabled bool) Button {
	b.Disabled = disabled
	return b
}

func (b Button) ChildWidgets() []core.Widget { return nil }

// Enabled reports whether a tap would reach OnTap.
func (b Button) Enabled() bool {
	return !b.Disabled && b.OnTap != nil
}

// HandleTap invokes OnTap when the button is enabled.
func (b Button) HandleTap() bool {
	if !b.Enabled() {
		return false
	}
	b.OnTap()
	return true
}

// Paint draws the label in brackets.
func (b Button) Paint(c *rendering.Canvas) {
	style := rendering.TextStyle{Color: rendering.ColorBlue, Bold: true}
	if !b.Enabled() {
		style = rendering.TextStyle{Color: rendering.ColorGray}
	}
	c.DrawText("[ "+b.Label+" ]", style)
}
