package networking

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-drift/postboard/pkg/errors"
	"github.com/go-drift/postboard/pkg/posts"
)

// Lister fetches a page of posts.
type Lister interface {
	List(ctx context.Context, limit int) ([]posts.Post, error)
}

// Creator submits a new post.
type Creator interface {
	Create(ctx context.Context, draft posts.Draft) (posts.Post, error)
}

// Client is the posts service used by the whole screen.
type Client interface {
	Lister
	Creator
}

var _ Client = (*posts.Client)(nil)

// errNoClient is returned when a component is mounted without a client.
func errNoClient(op string) error {
	return errors.New(op, errors.KindConfig, fmt.Errorf("no posts client configured"))
}

// sameClient reports whether a and b are the same client. Clients of
// non-comparable types are assumed unchanged.
func sameClient(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return true
	}
	return a == b
}

// report forwards a failed request to the error handler. Cancellation is
// not a failure.
func report(op string, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	var e *errors.Error
	if !errors.As(err, &e) {
		e = errors.New(op, errors.KindUnknown, err)
	}
	errors.Report(e)
}

// describeError turns a request failure into a line for the screen.
func describeError(err error) string {
	var e *errors.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	inner := "unknown error"
	if e.Err != nil {
		inner = e.Err.Error()
	}
	switch e.Kind {
	case errors.KindNetwork:
		return "network error: " + inner
	case errors.KindServer:
		return fmt.Sprintf("server responded %d", e.Status)
	case errors.KindDecode:
		return "unexpected response: " + inner
	case errors.KindConfig:
		return "configuration error: " + inner
	default:
		return inner
	}
}
