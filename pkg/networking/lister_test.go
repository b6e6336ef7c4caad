package networking

import (
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/errors"
	"github.com/go-drift/postboard/pkg/posts"
	"github.com/go-drift/postboard/pkg/postsapi"
	drifttest "github.com/go-drift/postboard/pkg/testing"
	"github.com/go-drift/postboard/pkg/widgets"
)

func mountLister(t *testing.T, client Lister) (*drifttest.WidgetTester, *PostListerState) {
	t.Helper()
	tester := drifttest.NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(PostLister{Client: client}); err != nil {
		t.Fatal(err)
	}
	return tester, listerState(t, tester)
}

// fixture serves the posts API over HTTP and records every _limit query.
type fixture struct {
	store *postsapi.Store
	mu    sync.Mutex
	query []string
}

func newFixture(t *testing.T, seed int) (*fixture, *posts.Client) {
	t.Helper()
	f := &fixture{store: postsapi.NewSeededStore(seed)}
	api := postsapi.NewHandler(f.store, postsapi.Options{})
	client := serverClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/posts" {
			f.mu.Lock()
			f.query = append(f.query, r.URL.Query().Get("_limit"))
			f.mu.Unlock()
		}
		api.ServeHTTP(w, r)
	}))
	return f, client
}

func (f *fixture) limits() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.query...)
}

func postIDs(list []posts.Post) []int {
	ids := make([]int, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return ids
}

func TestLister_StartsLoading(t *testing.T) {
	client := newFakeClient(makePosts(3, 1))
	client.block()
	tester, s := mountLister(t, client)
	defer client.release()

	if s.Value().Phase != PhaseLoading {
		t.Fatalf("phase = %s, want loading", s.Value().Phase)
	}
	if !tester.Find(drifttest.ByType[widgets.ActivityIndicator]()).Exists() {
		t.Error("expected an activity indicator while loading")
	}
	if !tester.Find(drifttest.ByText(LoadingText)).Exists() {
		t.Error("expected the loading label")
	}
	if tester.Find(drifttest.ByText(HeaderText)).Exists() {
		t.Error("header should not show while loading")
	}
}

// Scenario A: ten posts on the initial load.
func TestLister_InitialLoadReady(t *testing.T) {
	fx, client := newFixture(t, postsapi.DefaultSeed)
	tester, s := mountLister(t, client)

	pumpUntilPhase(t, tester, s, PhaseReady)

	st := s.Value()
	if len(st.Posts) != posts.InitialLimit {
		t.Errorf("got %d posts, want %d", len(st.Posts), posts.InitialLimit)
	}
	if got := fx.limits(); !slices.Equal(got, []string{"10"}) {
		t.Errorf("_limit queries = %q, want [10]", got)
	}
	if n := tester.Find(drifttest.ByType[widgets.Card]()).Count(); n != posts.InitialLimit {
		t.Errorf("rendered %d cards", n)
	}
	if n := tester.Find(drifttest.ByType[widgets.SizedBox]()).Count(); n != posts.InitialLimit-1 {
		t.Errorf("rendered %d separators, want %d", n, posts.InitialLimit-1)
	}
	tester.SetColumns(200)
	frame := tester.RenderText()
	for _, want := range []string{HeaderText, FooterText, st.Posts[0].Title} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

// Scenario B: the server has no posts.
func TestLister_InitialLoadEmpty(t *testing.T) {
	_, client := newFixture(t, 0)
	tester, s := mountLister(t, client)

	pumpUntilPhase(t, tester, s, PhaseEmpty)

	if len(s.Value().Posts) != 0 {
		t.Errorf("posts = %v, want none", s.Value().Posts)
	}
	for _, want := range []string{HeaderText, EmptyText, FooterText} {
		if !tester.Find(drifttest.ByText(want)).Exists() {
			t.Errorf("missing %q:\n%s", want, tester.RenderText())
		}
	}
	if tester.Find(drifttest.ByType[widgets.Card]()).Exists() {
		t.Error("no cards expected")
	}
}

// Scenario C: refresh replaces ten posts with twenty, through Refreshing.
func TestLister_RefreshReplacesPosts(t *testing.T) {
	fx, client := newFixture(t, postsapi.DefaultSeed)
	tester, s := mountLister(t, client)
	pumpUntilPhase(t, tester, s, PhaseReady)
	before := postIDs(s.Value().Posts)

	if err := tester.Refresh(drifttest.ByType[widgets.ListView]()); err != nil {
		t.Fatal(err)
	}
	st := s.Value()
	if st.Phase != PhaseRefreshing {
		t.Fatalf("phase right after refresh = %s, want refreshing", st.Phase)
	}
	if !slices.Equal(postIDs(st.Posts), before) {
		t.Error("previous posts must stay visible while refreshing")
	}
	tester.Pump()
	if s.Value().Phase == PhaseRefreshing && !tester.Find(drifttest.ByText(widgets.RefreshIndicatorText)).Exists() {
		t.Error("expected the refresh indicator")
	}

	pumpUntilPhase(t, tester, s, PhaseReady)
	after := s.Value().Posts
	if len(after) != posts.RefreshLimit {
		t.Fatalf("got %d posts after refresh, want %d", len(after), posts.RefreshLimit)
	}
	if got := fx.limits(); !slices.Equal(got, []string{"10", "20"}) {
		t.Errorf("_limit queries = %q, want [10 20]", got)
	}
	if tester.Find(drifttest.ByText(widgets.RefreshIndicatorText)).Exists() {
		t.Error("refresh indicator should be gone once settled")
	}
	if n := tester.Find(drifttest.ByType[widgets.Card]()).Count(); n != posts.RefreshLimit {
		t.Errorf("rendered %d cards", n)
	}
}

func TestLister_RefreshShowsCreatedPost(t *testing.T) {
	fx, client := newFixture(t, 3)
	tester, s := mountLister(t, client)
	pumpUntilPhase(t, tester, s, PhaseReady)

	fx.store.Create("Hello", "World", posts.DefaultUserID)
	s.Refresh()
	pumpUntilPhase(t, tester, s, PhaseReady)

	if !tester.Find(drifttest.ByText("Hello")).Exists() {
		t.Errorf("created post not listed after refresh:\n%s", tester.RenderText())
	}
}

func TestLister_LoadRequestsExactLimit(t *testing.T) {
	client := newFakeClient(makePosts(50, 1))
	tester, s := mountLister(t, client)
	pumpUntilPhase(t, tester, s, PhaseReady)

	for _, n := range []int{1, 5, 37} {
		if !s.Load(n) {
			t.Fatalf("Load(%d) refused", n)
		}
		pumpUntilPhase(t, tester, s, PhaseReady)
		if got := len(s.Value().Posts); got != n {
			t.Errorf("Load(%d) kept %d posts", n, got)
		}
	}
	if got := client.requestedLimits(); !slices.Equal(got, []int{10, 1, 5, 37}) {
		t.Errorf("requested limits = %v", got)
	}
}

func TestLister_ReloadIsIdempotent(t *testing.T) {
	_, client := newFixture(t, postsapi.DefaultSeed)
	tester, s := mountLister(t, client)
	pumpUntilPhase(t, tester, s, PhaseReady)

	s.Load(posts.InitialLimit)
	pumpUntilPhase(t, tester, s, PhaseReady)
	first := tester.CaptureSnapshot()

	s.Load(posts.InitialLimit)
	pumpUntilPhase(t, tester, s, PhaseReady)
	second := tester.CaptureSnapshot()

	if diff := first.Diff(second); diff != "" {
		t.Errorf("reload rendered differently:\n%s", diff)
	}
}

func TestLister_IgnoresRefreshInFlight(t *testing.T) {
	client := newFakeClient(makePosts(20, 1))
	client.block()
	tester, s := mountLister(t, client)

	if s.Refresh() {
		t.Error("refresh during the initial load should be ignored")
	}
	if s.Load(5) {
		t.Error("load during the initial load should be ignored")
	}
	client.release()
	pumpUntilPhase(t, tester, s, PhaseReady)

	client.block()
	if !s.Refresh() {
		t.Fatal("refresh from ready should start")
	}
	tester.Pump()
	if s.Refresh() {
		t.Error("second refresh while refreshing should be ignored")
	}
	if err := tester.Refresh(drifttest.ByType[widgets.ListView]()); err == nil {
		t.Error("the list should ignore pull-to-refresh while refreshing")
	}
	client.release()
	pumpUntilPhase(t, tester, s, PhaseReady)

	if got := client.requestedLimits(); !slices.Equal(got, []int{10, 20}) {
		t.Errorf("requested limits = %v, want [10 20]", got)
	}
}

func TestLister_Errors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		kind    errors.Kind
		line    string
	}{
		{
			name: "server",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			kind: errors.KindServer,
			line: "Could not load posts: server responded 500",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, "[{")
			},
			kind: errors.KindDecode,
			line: "Could not load posts: unexpected response",
		},
		{
			name: "wrong shape",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `[{"id":"one"}]`)
			},
			kind: errors.KindDecode,
			line: "Could not load posts: unexpected response",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reports := captureReports(t)
			tester, s := mountLister(t, serverClient(t, tc.handler))
			pumpUntilPhase(t, tester, s, PhaseError)

			if got := errors.KindOf(s.Value().Err); got != tc.kind {
				t.Errorf("kind = %s, want %s", got, tc.kind)
			}
			if !tester.Find(drifttest.ByTextContaining(tc.line)).Exists() {
				t.Errorf("missing %q:\n%s", tc.line, tester.RenderText())
			}
			if !tester.Find(drifttest.ByText(RetryLabel)).Exists() {
				t.Error("expected a Retry button")
			}
			if len(reports.reported()) != 1 {
				t.Errorf("reported %d errors, want 1", len(reports.reported()))
			}
		})
	}
}

func TestLister_NetworkError(t *testing.T) {
	captureReports(t)
	client, err := posts.NewClient("http://127.0.0.1:1", posts.WithTimeout(settle))
	if err != nil {
		t.Fatal(err)
	}
	tester, s := mountLister(t, client)
	pumpUntilPhase(t, tester, s, PhaseError)

	if got := errors.KindOf(s.Value().Err); got != errors.KindNetwork {
		t.Errorf("kind = %s, want network", got)
	}
	if !tester.Find(drifttest.ByTextContaining("Could not load posts: network error")).Exists() {
		t.Errorf("missing network line:\n%s", tester.RenderText())
	}
}

func TestLister_RetryRecovers(t *testing.T) {
	captureReports(t)
	var healthy atomic.Bool
	api := postsapi.NewHandler(postsapi.NewSeededStore(postsapi.DefaultSeed), postsapi.Options{})
	client := serverClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		api.ServeHTTP(w, r)
	}))
	tester, s := mountLister(t, client)
	pumpUntilPhase(t, tester, s, PhaseError)

	healthy.Store(true)
	if err := tester.Tap(drifttest.ByText(RetryLabel)); err != nil {
		t.Fatal(err)
	}
	if s.Value().Phase != PhaseLoading {
		t.Errorf("phase after retry = %s, want loading", s.Value().Phase)
	}
	pumpUntilPhase(t, tester, s, PhaseReady)

	if got := len(s.Value().Posts); got != posts.InitialLimit {
		t.Errorf("got %d posts after retry, want %d", got, posts.InitialLimit)
	}
	if s.Retry() {
		t.Error("retry outside the error phase should be ignored")
	}
}

func TestLister_RefreshFromError(t *testing.T) {
	captureReports(t)
	client := newFakeClient(makePosts(30, 1))
	client.listErr = errors.New("posts.List", errors.KindNetwork, io.ErrUnexpectedEOF)
	tester, s := mountLister(t, client)
	pumpUntilPhase(t, tester, s, PhaseError)

	client.mu.Lock()
	client.listErr = nil
	client.mu.Unlock()
	if !s.Refresh() {
		t.Fatal("refresh from error should start")
	}
	pumpUntilPhase(t, tester, s, PhaseReady)
	if got := len(s.Value().Posts); got != posts.RefreshLimit {
		t.Errorf("got %d posts, want %d", got, posts.RefreshLimit)
	}
}

func TestLister_DropsStaleResponse(t *testing.T) {
	oldClient := newFakeClient(makePosts(10, 1))
	oldClient.block()
	newClient := newFakeClient(makePosts(10, 500))

	var swap func(func(Lister) Lister)
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(core.Stateful(
		func() Lister { return oldClient },
		func(client Lister, ctx core.BuildContext, setState func(func(Lister) Lister)) core.Widget {
			swap = setState
			return PostLister{Client: client}
		},
	))
	s := listerState(t, tester)

	swap(func(Lister) Lister { return newClient })
	tester.Pump()
	pumpUntilPhase(t, tester, s, PhaseReady)

	select {
	case <-oldClient.cancelled:
	case <-timeout():
		t.Fatal("superseded request was not cancelled")
	}
	oldClient.release()
	for i := 0; i < 5; i++ {
		tester.Pump()
		time.Sleep(5 * time.Millisecond)
	}

	ids := postIDs(s.Value().Posts)
	if len(ids) != 10 || ids[0] != 500 {
		t.Errorf("posts = %v, want the new client's", ids)
	}
}

func TestLister_TeardownCancelsRequest(t *testing.T) {
	client := newFakeClient(makePosts(10, 1))
	client.block()
	tester, s := mountLister(t, client)

	tester.Unmount()
	select {
	case <-client.cancelled:
	case <-timeout():
		t.Fatal("request was not cancelled on teardown")
	}
	time.Sleep(20 * time.Millisecond)
	if tester.PendingDispatches() != 0 {
		t.Error("no callback should be dispatched after teardown")
	}
	if !s.IsDisposed() {
		t.Error("state should be disposed")
	}
	if s.Refresh() || s.Value().Phase != PhaseLoading {
		t.Error("a disposed lister must not change state")
	}
}

func TestLister_WithoutClient(t *testing.T) {
	captureReports(t)
	tester, s := mountLister(t, nil)
	pumpUntilPhase(t, tester, s, PhaseError)

	if errors.KindOf(s.Value().Err) != errors.KindConfig {
		t.Errorf("err = %v, want a config error", s.Value().Err)
	}
}
