package testing

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/platform"
	"github.com/go-drift/postboard/pkg/rendering"
)

// DefaultColumns is the default canvas width for rendering.
const DefaultColumns = 60

// ErrPumpTimeout is returned when PumpUntil exceeds its timeout.
var ErrPumpTimeout = errors.New("PumpUntil timed out: condition not met")

// WidgetTester provides isolated widget testing without a running engine.
// It drives the same dispatch, build and paint phases as the engine, on the
// test goroutine.
type WidgetTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	columns    int

	mu         sync.Mutex
	dispatches []func()
	wake       chan struct{}
}

// NewWidgetTester creates a tester. Call Cleanup() when done, or use
// NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	t := &WidgetTester{
		buildOwner: core.NewBuildOwner(),
		columns:    DefaultColumns,
		wake:       make(chan struct{}, 1),
	}
	// Register this tester's dispatch function with the platform package
	// so that platform.Dispatch works during tests
	platform.RegisterDispatch(t.Dispatch)
	return t
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t testing.TB) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree, disposing every state, and unregisters the
// dispatcher.
func (t *WidgetTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	platform.RegisterDispatch(nil)
}

// SetColumns sets the canvas width used by Render.
func (t *WidgetTester) SetColumns(columns int) {
	if columns > 0 {
		t.columns = columns
	}
}

// PumpWidget mounts (or remounts) a widget and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	t.root = core.MountRoot(widget, t.buildOwner)
	return t.Pump()
}

// Unmount tears the tree down, as when a screen is closed.
func (t *WidgetTester) Unmount() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// Pump runs a single frame: queued dispatches, then dirty builds.
func (t *WidgetTester) Pump() error {
	t.mu.Lock()
	dispatches := t.dispatches
	t.dispatches = nil
	t.mu.Unlock()
	for _, fn := range dispatches {
		fn()
	}
	t.buildOwner.FlushBuild()
	return nil
}

// PumpUntil pumps frames until cond returns true or timeout elapses. Between
// frames it waits for background work to dispatch back.
func (t *WidgetTester) PumpUntil(cond func() bool, timeout time.Duration) error {
	const poll = 10 * time.Millisecond
	deadline := time.Now().Add(timeout)
	for {
		if err := t.Pump(); err != nil {
			return err
		}
		if cond() {
			return nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrPumpTimeout
		}
		timer := time.NewTimer(min(remaining, poll))
		select {
		case <-t.wake:
		case <-timer.C:
		}
		timer.Stop()
	}
}

// PumpUntilFound pumps until finder matches at least one element.
func (t *WidgetTester) PumpUntilFound(finder Finder, timeout time.Duration) error {
	return t.PumpUntil(func() bool { return t.Find(finder).Exists() }, timeout)
}

// Dispatch queues a callback for the next frame, mirroring engine.Dispatch.
// Safe to call from any goroutine.
func (t *WidgetTester) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	t.dispatches = append(t.dispatches, fn)
	t.mu.Unlock()
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// PendingDispatches returns the number of queued callbacks.
func (t *WidgetTester) PendingDispatches() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.dispatches)
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}

// Render paints the current tree onto a fresh canvas without colour.
func (t *WidgetTester) Render() *rendering.Canvas {
	c := rendering.NewCanvas(t.columns, false)
	rendering.PaintTree(t.root, c)
	return c
}

// RenderText paints the current tree and returns it as text.
func (t *WidgetTester) RenderText() string {
	return t.Render().String()
}
