package core

import "context"

// Disposable is implemented by controllers that hold resources.
type Disposable interface {
	Dispose()
}

// UseController creates a controller and registers it for automatic disposal.
// The controller will be disposed when the state is disposed.
//
// Example:
//
//	func (s *myState) InitState() {
//	    s.ticker = core.UseController(s, func() *Ticker {
//	        return NewTicker(time.Second)
//	    })
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// UseContext returns a context that is cancelled when the state is disposed.
// Pass it to requests started by the state so they stop with the widget:
//
//	func (s *listerState) InitState() {
//	    s.ctx = core.UseContext(s)
//	    s.load(10)
//	}
func UseContext(s stateBase) context.Context {
	base := s.state()
	ctx, cancel := context.WithCancel(context.Background())
	base.OnDispose(cancel)
	return ctx
}

// Managed holds a value and triggers rebuilds when it changes.
// It is tied to a specific StateBase.
//
// Managed is NOT thread-safe. It must only be accessed from the UI thread.
// To update from a background goroutine, use platform.Dispatch:
//
//	go func() {
//	    result := doExpensiveWork()
//	    platform.Dispatch(func() {
//	        s.data.Set(result)  // Safe - runs on UI thread
//	    })
//	}()
type Managed[T any] struct {
	base  *StateBase
	value T
}

// NewManaged creates a new managed state value.
// Changes to this value will automatically trigger a rebuild.
func NewManaged[T any](s stateBase, initial T) *Managed[T] {
	return &Managed[T]{
		base:  s.state(),
		value: initial,
	}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and triggers a rebuild.
func (m *Managed[T]) Set(value T) {
	m.base.SetState(func() {
		m.value = value
	})
}

// Update applies a transformation to the current value and triggers a rebuild.
func (m *Managed[T]) Update(transform func(T) T) {
	m.base.SetState(func() {
		m.value = transform(m.value)
	})
}
