// Package platform connects background work to the UI thread.
package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-drift/postboard/pkg/errors"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on the UI thread.
// The engine registers itself on start; the widget tester registers itself on creation.
// Passing nil unregisters.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no dispatch function
// is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// Async runs work on a new goroutine and delivers its result to done on the
// UI thread. A panic in work is reported and delivered to done as an error.
//
//	platform.Async(ctx, "posts.load", func(ctx context.Context) ([]posts.Post, error) {
//	    return client.List(ctx, 10)
//	}, func(list []posts.Post, err error) {
//	    s.SetState(func() { ... })
//	})
//
// done is not called if ctx is already cancelled when work returns, so
// callers that pass a dispose-scoped context never see results after
// teardown.
func Async[T any](ctx context.Context, op string, work func(context.Context) (T, error), done func(T, error)) {
	go func() {
		var (
			result T
			err    error
		)
		func() {
			defer errors.RecoverWithCallback(op, func(r any) {
				err = errors.New(op, errors.KindPanic, fmt.Errorf("%v", r))
			})
			result, err = work(ctx)
		}()
		if ctx.Err() != nil {
			return
		}
		Dispatch(func() {
			if ctx.Err() != nil {
				return
			}
			done(result, err)
		})
	}()
}
