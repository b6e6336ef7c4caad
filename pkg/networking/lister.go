package networking

import (
	"context"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/log"
	"github.com/go-drift/postboard/pkg/platform"
	"github.com/go-drift/postboard/pkg/posts"
)

// PostLister loads a page of posts on mount and shows it, with manual
// refresh and retry.
type PostLister struct {
	core.StatefulBase
	Client Lister
	// InitialLimit is the page size of the first load. Zero means
	// posts.InitialLimit.
	InitialLimit int
	// RefreshLimit is the page size of a manual refresh. Zero means
	// posts.RefreshLimit.
	RefreshLimit int
}

func (PostLister) CreateState() core.State {
	return &PostListerState{}
}

func (l PostLister) initialLimit() int {
	if l.InitialLimit > 0 {
		return l.InitialLimit
	}
	return posts.InitialLimit
}

func (l PostLister) refreshLimit() int {
	if l.RefreshLimit > 0 {
		return l.RefreshLimit
	}
	return posts.RefreshLimit
}

// PostListerState owns the list state and the single in-flight fetch.
// Its methods must be called on the UI thread.
type PostListerState struct {
	core.StateBase
	ctx   context.Context
	state *core.Managed[ListState]

	// generation identifies the current fetch; older responses are dropped.
	generation  int
	inFlight    bool
	cancelFetch context.CancelFunc
}

func (s *PostListerState) InitState() {
	s.ctx = core.UseContext(s)
	limit := s.widget().initialLimit()
	s.state = core.NewManaged(s, startLoad(limit))
	s.fetch(limit)
}

func (s *PostListerState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	old, ok := oldWidget.(PostLister)
	if !ok {
		return
	}
	current := s.widget()
	if sameClient(old.Client, current.Client) {
		return
	}
	// A new client starts over; whatever the old one returns is stale.
	limit := current.initialLimit()
	s.state.Set(startLoad(limit))
	s.fetch(limit)
}

// Value returns the current list state.
func (s *PostListerState) Value() ListState {
	return s.state.Value()
}

// Load fetches up to limit posts, showing the spinner meanwhile. It returns
// false while another fetch is in flight.
func (s *PostListerState) Load(limit int) bool {
	if s.inFlight {
		return false
	}
	s.state.Set(startLoad(limit))
	s.fetch(limit)
	return true
}

// Refresh reloads with the refresh page size, keeping the current posts on
// screen until the fetch settles. It returns false while a fetch is in
// flight.
func (s *PostListerState) Refresh() bool {
	current := s.state.Value()
	if s.inFlight || !canRefresh(current) {
		return false
	}
	limit := s.widget().refreshLimit()
	s.state.Set(startRefresh(current, limit))
	s.fetch(limit)
	return true
}

// Retry reloads with the last requested page size after a failure.
func (s *PostListerState) Retry() bool {
	current := s.state.Value()
	if s.inFlight || current.Phase != PhaseError {
		return false
	}
	return s.Load(current.Limit)
}

func (s *PostListerState) widget() PostLister {
	w, _ := s.Element().Widget().(PostLister)
	return w
}

func (s *PostListerState) fetch(limit int) {
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.generation++
	gen := s.generation
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelFetch = cancel
	s.inFlight = true
	client := s.widget().Client

	const op = "networking.load"
	log.D.F("%s: limit=%d generation=%d", op, limit, gen)
	platform.Async(ctx, op, func(ctx context.Context) ([]posts.Post, error) {
		if client == nil {
			return nil, errNoClient(op)
		}
		return client.List(ctx, limit)
	}, func(list []posts.Post, err error) {
		if gen != s.generation {
			log.T.F("%s: dropping stale generation %d", op, gen)
			return
		}
		cancel()
		s.cancelFetch = nil
		s.inFlight = false
		if err != nil {
			report(op, err)
			s.state.Update(func(st ListState) ListState { return failed(st, err) })
			return
		}
		log.D.F("%s: %d posts", op, len(list))
		s.state.Update(func(st ListState) ListState { return loaded(st, list) })
	})
}

func (s *PostListerState) Build(ctx core.BuildContext) core.Widget {
	return listView(s.state.Value(), func() { s.Refresh() }, func() { s.Retry() })
}
