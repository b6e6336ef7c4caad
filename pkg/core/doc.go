// Package core provides the widget and element framework interfaces and lifecycle.
//
// This package defines the foundational types for building reactive user interfaces:
// Widget, Element, State, and BuildContext. Widgets describe what the UI should
// look like; elements hold their place in the tree and rebuild them when state
// changes.
//
// # Core Types
//
// Widget is an immutable description of part of the UI. NodeWidget is a widget
// that is itself a presentation node (text, column, list). StatelessWidget and
// StatefulWidget compose other widgets.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type myState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: fmt.Sprintf("Count: %d", s.count)}
//	}
//
// SetState must run on the UI thread. Work started on other goroutines hands
// its results back through platform.Dispatch.
//
// # Hooks
//
// UseController and UseContext tie resources to the state's lifetime: the
// controller is disposed and the context cancelled when the state is disposed.
// Managed wraps a single value and rebuilds on Set.
package core
