package testing

import (
	"fmt"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/widgets"
)

// target returns the first element matched by finder whose widget, or
// nearest ancestor's widget, satisfies accepts.
func (t *WidgetTester) target(gesture string, finder Finder, accepts func(core.Widget) bool) (core.Element, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return nil, fmt.Errorf("%s: finder matched no elements: %s", gesture, finder.Description())
	}
	e := result.First()
	if accepts(e.Widget()) {
		return e, nil
	}
	if ancestor := e.FindAncestor(func(a core.Element) bool { return accepts(a.Widget()) }); ancestor != nil {
		return ancestor, nil
	}
	return nil, fmt.Errorf("%s: no handler at or above %s", gesture, finder.Description())
}

// Tap delivers a tap to the first element matched by finder, or to its
// nearest tappable ancestor. Returns an error if the widget ignored the tap,
// as a disabled button does.
func (t *WidgetTester) Tap(finder Finder) error {
	e, err := t.target("Tap", finder, func(w core.Widget) bool {
		_, ok := w.(widgets.Tappable)
		return ok
	})
	if err != nil {
		return err
	}
	if !e.Widget().(widgets.Tappable).HandleTap() {
		return fmt.Errorf("Tap: %s ignored the tap", finder.Description())
	}
	return nil
}

// EnterText replaces the text of the first editable element matched by
// finder.
func (t *WidgetTester) EnterText(finder Finder, text string) error {
	e, err := t.target("EnterText", finder, func(w core.Widget) bool {
		_, ok := w.(widgets.Editable)
		return ok
	})
	if err != nil {
		return err
	}
	if !e.Widget().(widgets.Editable).HandleInput(text) {
		return fmt.Errorf("EnterText: %s rejected input", finder.Description())
	}
	return nil
}

// Refresh performs a pull-to-refresh on the first refreshable element
// matched by finder, or its nearest refreshable ancestor.
func (t *WidgetTester) Refresh(finder Finder) error {
	e, err := t.target("Refresh", finder, func(w core.Widget) bool {
		_, ok := w.(widgets.Refreshable)
		return ok
	})
	if err != nil {
		return err
	}
	if !e.Widget().(widgets.Refreshable).HandleRefresh() {
		return fmt.Errorf("Refresh: %s ignored the refresh", finder.Description())
	}
	return nil
}
