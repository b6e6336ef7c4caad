// Package networking is the Networking screen: a post submitter and a post
// lister talking to a posts service.
//
// Both components keep their data in a plain state struct updated by the
// pure reducers in this file and rendered by a view function. They share
// nothing; a submitted post appears in the list only after a refresh, and
// only when the server keeps it.
//
//	client, _ := posts.NewClient(posts.DefaultBaseURL)
//	eng := engine.New(networking.NetworkingApp{Client: client}, engine.Options{})
//	eng.Run(ctx)
package networking

import "github.com/go-drift/postboard/pkg/posts"

// Phase is the loading phase of a post list.
type Phase int

const (
	// PhaseLoading shows a spinner while the first (or retried) fetch runs.
	PhaseLoading Phase = iota
	// PhaseReady shows at least one post.
	PhaseReady
	// PhaseEmpty shows that the server returned no posts.
	PhaseEmpty
	// PhaseRefreshing keeps the previous posts visible while a refresh runs.
	PhaseRefreshing
	// PhaseError shows the failure and a retry button.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseEmpty:
		return "empty"
	case PhaseRefreshing:
		return "refreshing"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// ListState is the post lister's view of the collection.
// Posts is set only in PhaseReady and PhaseRefreshing, Err only in
// PhaseError. Limit is the page size of the latest fetch.
type ListState struct {
	Phase Phase
	Posts []posts.Post
	Err   error
	Limit int
}

// SubmitState is the post submitter's draft and request status.
// Result and Err describe the last settled submit; at most one is set.
type SubmitState struct {
	Draft  posts.Draft
	Busy   bool
	Result *posts.Post
	Err    error
}

func withTitle(s SubmitState, title string) SubmitState {
	s.Draft.Title = title
	return s
}

func withBody(s SubmitState, body string) SubmitState {
	s.Draft.Body = body
	return s
}

func startSubmit(s SubmitState) SubmitState {
	s.Busy = true
	s.Result = nil
	s.Err = nil
	return s
}

// settleSubmit ends a submit. The draft is cleared whatever the outcome.
func settleSubmit(s SubmitState, created posts.Post, err error) SubmitState {
	s.Busy = false
	s.Draft = posts.Draft{}
	if err != nil {
		s.Result = nil
		s.Err = err
		return s
	}
	s.Result = &created
	s.Err = nil
	return s
}

func startLoad(limit int) ListState {
	return ListState{Phase: PhaseLoading, Limit: limit}
}

// startRefresh keeps the current posts on screen while the new page loads.
func startRefresh(s ListState, limit int) ListState {
	return ListState{Phase: PhaseRefreshing, Posts: s.Posts, Limit: limit}
}

// loaded replaces the posts with list. No merge, dedup or sort.
func loaded(s ListState, list []posts.Post) ListState {
	if len(list) == 0 {
		return ListState{Phase: PhaseEmpty, Limit: s.Limit}
	}
	return ListState{Phase: PhaseReady, Posts: list, Limit: s.Limit}
}

func failed(s ListState, err error) ListState {
	return ListState{Phase: PhaseError, Err: err, Limit: s.Limit}
}

// canRefresh reports whether a manual refresh may start from s.
func canRefresh(s ListState) bool {
	switch s.Phase {
	case PhaseReady, PhaseEmpty, PhaseError:
		return true
	}
	return false
}
