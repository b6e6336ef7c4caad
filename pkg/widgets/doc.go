// Package widgets provides the presentation nodes the Networking screen is
// built from.
//
// Every widget here is a [core.NodeWidget]: it has no Build method, only
// child widgets, and paints itself onto a [rendering.Canvas] during
// [rendering.PaintTree]. Stateful screens compose these nodes in their
// Build methods:
//
//	widgets.Column{Children: []core.Widget{
//	    widgets.Text{Content: "Post list", Style: widgets.HeaderStyle},
//	    widgets.Button{Label: "Retry", OnTap: s.Retry},
//	}}
//
// # Input
//
// Widgets that accept input implement [Tappable], [Editable] or
// [Refreshable]. The engine's line reader and the widget tester deliver
// input through these interfaces rather than through pointer events.
package widgets
