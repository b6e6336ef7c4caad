package networking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/postboard/pkg/errors"
	"github.com/go-drift/postboard/pkg/posts"
	drifttest "github.com/go-drift/postboard/pkg/testing"
)

const settle = 2 * time.Second

func timeout() <-chan time.Time { return time.After(settle) }

// recordingHandler captures reported errors instead of logging them.
type recordingHandler struct {
	mu     sync.Mutex
	errors []*errors.Error
}

func (h *recordingHandler) HandleError(err *errors.Error) {
	h.mu.Lock()
	h.errors = append(h.errors, err)
	h.mu.Unlock()
}

func (h *recordingHandler) HandlePanic(*errors.PanicError) {}
func (h *recordingHandler) HandleBuildError(*errors.BuildError) {}

func (h *recordingHandler) reported() []*errors.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.Error(nil), h.errors...)
}

func captureReports(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

// fakeClient is an in-memory Client. When gate is set, calls block until
// it is closed or their context ends.
type fakeClient struct {
	mu      sync.Mutex
	limits  []int
	drafts  []posts.Draft
	list    []posts.Post
	listErr error
	created posts.Post
	err     error
	gate    chan struct{}

	cancelOnce sync.Once
	cancelled  chan struct{}
}

func newFakeClient(list []posts.Post) *fakeClient {
	return &fakeClient{list: list, cancelled: make(chan struct{})}
}

func (f *fakeClient) wait(ctx context.Context) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		f.cancelOnce.Do(func() { close(f.cancelled) })
		return ctx.Err()
	}
}

func (f *fakeClient) List(ctx context.Context, limit int) ([]posts.Post, error) {
	f.mu.Lock()
	f.limits = append(f.limits, limit)
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	n := len(f.list)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]posts.Post(nil), f.list[:n]...), nil
}

func (f *fakeClient) Create(ctx context.Context, draft posts.Draft) (posts.Post, error) {
	f.mu.Lock()
	f.drafts = append(f.drafts, draft)
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return posts.Post{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return posts.Post{}, f.err
	}
	p := f.created
	p.Title, p.Body, p.UserID = draft.Title, draft.Body, posts.DefaultUserID
	return p, nil
}

func (f *fakeClient) block() {
	f.mu.Lock()
	f.gate = make(chan struct{})
	f.mu.Unlock()
}

func (f *fakeClient) release() {
	f.mu.Lock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
	f.mu.Unlock()
}

func (f *fakeClient) requestedLimits() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.limits...)
}

func (f *fakeClient) sentDrafts() []posts.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]posts.Draft(nil), f.drafts...)
}

func makePosts(n, firstID int) []posts.Post {
	out := make([]posts.Post, n)
	for i := range out {
		id := firstID + i
		out[i] = posts.Post{
			ID:     id,
			Title:  fmt.Sprintf("title %d", id),
			Body:   fmt.Sprintf("body %d", id),
			UserID: 1,
		}
	}
	return out
}

func serverClient(t *testing.T, h http.Handler) *posts.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := posts.NewClient(srv.URL, posts.WithTimeout(settle))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func listerState(t *testing.T, tester *drifttest.WidgetTester) *PostListerState {
	t.Helper()
	s := drifttest.StateOf[*PostListerState](tester.Find(drifttest.ByType[PostLister]()))
	if s == nil {
		t.Fatal("PostLister not mounted")
	}
	return s
}

func submitterState(t *testing.T, tester *drifttest.WidgetTester) *PostSubmitterState {
	t.Helper()
	s := drifttest.StateOf[*PostSubmitterState](tester.Find(drifttest.ByType[PostSubmitter]()))
	if s == nil {
		t.Fatal("PostSubmitter not mounted")
	}
	return s
}

func pumpUntilPhase(t *testing.T, tester *drifttest.WidgetTester, s *PostListerState, phase Phase) {
	t.Helper()
	if err := tester.PumpUntil(func() bool { return s.Value().Phase == phase }, settle); err != nil {
		t.Fatalf("waiting for phase %s (at %s): %v", phase, s.Value().Phase, err)
	}
}
