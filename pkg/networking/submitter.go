package networking

import (
	"context"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/log"
	"github.com/go-drift/postboard/pkg/platform"
	"github.com/go-drift/postboard/pkg/posts"
)

// PostSubmitter collects a title and body and creates a post from them.
type PostSubmitter struct {
	core.StatefulBase
	Client Creator
}

func (PostSubmitter) CreateState() core.State {
	return &PostSubmitterState{}
}

// PostSubmitterState holds the draft and the in-flight flag.
// Its methods must be called on the UI thread.
type PostSubmitterState struct {
	core.StateBase
	ctx   context.Context
	state *core.Managed[SubmitState]
}

func (s *PostSubmitterState) InitState() {
	s.ctx = core.UseContext(s)
	s.state = core.NewManaged(s, SubmitState{})
}

// Value returns the current submit state.
func (s *PostSubmitterState) Value() SubmitState {
	return s.state.Value()
}

// UpdateTitle sets the draft title.
func (s *PostSubmitterState) UpdateTitle(text string) {
	s.state.Update(func(st SubmitState) SubmitState { return withTitle(st, text) })
}

// UpdateBody sets the draft body.
func (s *PostSubmitterState) UpdateBody(text string) {
	s.state.Update(func(st SubmitState) SubmitState { return withBody(st, text) })
}

// Submit sends the draft as a new post. It returns false without sending
// anything while a previous submit is in flight. The draft is cleared once
// the request settles, on success and on failure.
func (s *PostSubmitterState) Submit() bool {
	current := s.state.Value()
	if current.Busy {
		return false
	}
	draft := current.Draft
	client := s.client()
	s.state.Set(startSubmit(current))

	const op = "networking.submit"
	log.D.F("%s: title=%q body=%q", op, draft.Title, draft.Body)
	platform.Async(s.ctx, op, func(ctx context.Context) (posts.Post, error) {
		if client == nil {
			return posts.Post{}, errNoClient(op)
		}
		return client.Create(ctx, draft)
	}, func(created posts.Post, err error) {
		if err != nil {
			report(op, err)
		} else {
			log.I.F("%s: created post #%d", op, created.ID)
		}
		s.state.Update(func(st SubmitState) SubmitState { return settleSubmit(st, created, err) })
	})
	return true
}

func (s *PostSubmitterState) client() Creator {
	if w, ok := s.Element().Widget().(PostSubmitter); ok {
		return w.Client
	}
	return nil
}

func (s *PostSubmitterState) Build(ctx core.BuildContext) core.Widget {
	return submitView(s.state.Value(), s.UpdateTitle, s.UpdateBody, func() { s.Submit() })
}
