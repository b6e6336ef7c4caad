package engine

import (
	"context"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/widgets"
)

// Action runs against the mounted tree on the UI goroutine and reports
// whether it found something to act on.
type Action func(root core.Element) bool

// Send runs action on the UI goroutine during the next frame and waits for
// its result. It returns ctx.Err() if ctx ends first.
func (e *Engine) Send(ctx context.Context, action Action) (bool, error) {
	result := make(chan bool, 1)
	e.Dispatch(func() {
		result <- action(e.root)
	})
	select {
	case ok := <-result:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Find returns the elements under root, in pre-order, that match pred.
func Find(root core.Element, pred func(core.Element) bool) []core.Element {
	var out []core.Element
	core.Walk(root, func(e core.Element) bool {
		if pred(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

func first(root core.Element, pred func(core.Element) bool) core.Element {
	var found core.Element
	core.Walk(root, func(e core.Element) bool {
		if found != nil {
			return false
		}
		if pred(e) {
			found = e
			return false
		}
		return true
	})
	return found
}

// TapButton taps the first button labelled label.
func TapButton(label string) Action {
	return func(root core.Element) bool {
		e := first(root, func(e core.Element) bool {
			b, ok := e.Widget().(widgets.Button)
			return ok && b.Label == label
		})
		if e == nil {
			return false
		}
		return e.Widget().(widgets.Button).HandleTap()
	}
}

// EnterText replaces the value of the text field with the given ID.
func EnterText(id, text string) Action {
	return func(root core.Element) bool {
		e := first(root, func(e core.Element) bool {
			f, ok := e.Widget().(widgets.TextField)
			return ok && f.ID == id
		})
		if e == nil {
			return false
		}
		return e.Widget().(widgets.TextField).HandleInput(text)
	}
}

// Refresh triggers the first refreshable widget.
func Refresh() Action {
	return func(root core.Element) bool {
		e := first(root, func(e core.Element) bool {
			_, ok := e.Widget().(widgets.Refreshable)
			return ok
		})
		if e == nil {
			return false
		}
		return e.Widget().(widgets.Refreshable).HandleRefresh()
	}
}
