package widgets

// Tappable is implemented by widgets that respond to a tap.
// HandleTap reports whether the tap was delivered.
type Tappable interface {
	HandleTap() bool
}

// Editable is implemented by widgets that accept text input.
// HandleInput replaces the current value and reports whether it was accepted.
type Editable interface {
	HandleInput(text string) bool
}

// Refreshable is implemented by widgets that support pull-to-refresh.
type Refreshable interface {
	HandleRefresh() bool
}
