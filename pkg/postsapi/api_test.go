package postsapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-drift/postboard/pkg/posts"
)

func newServer(t *testing.T, store *Store) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewHandler(store, Options{}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func TestListPosts_Limit(t *testing.T) {
	srv := newServer(t, NewSeededStore(DefaultSeed))

	var list []posts.Post
	if code := getJSON(t, srv.URL+"/posts?_limit=10", &list); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(list) != 10 || list[0].ID != 1 || list[9].ID != 10 {
		t.Errorf("got %d posts, first %+v", len(list), list)
	}

	list = nil
	getJSON(t, srv.URL+"/posts", &list)
	if len(list) != DefaultSeed {
		t.Errorf("unlimited list = %d, want %d", len(list), DefaultSeed)
	}
}

func TestListPosts_Empty(t *testing.T) {
	srv := newServer(t, NewStore())
	resp, err := http.Get(srv.URL + "/posts?_limit=10")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	if string(raw) != "[]" {
		t.Errorf("body = %s, want []", raw)
	}
}

func TestGetPost(t *testing.T) {
	srv := newServer(t, NewSeededStore(3))

	var p posts.Post
	if code := getJSON(t, srv.URL+"/posts/2", &p); code != http.StatusOK || p.ID != 2 {
		t.Errorf("status %d, post %+v", code, p)
	}
	if code := getJSON(t, srv.URL+"/posts/99", nil); code != http.StatusNotFound {
		t.Errorf("missing post status = %d, want 404", code)
	}
}

func TestCreatePost(t *testing.T) {
	store := NewSeededStore(DefaultSeed)
	srv := newServer(t, store)

	resp, err := http.Post(srv.URL+"/posts", "application/json",
		strings.NewReader(`{"title":"Hello","body":"World","userId":1}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"id": float64(101), "title": "Hello", "body": "World", "userId": float64(1)}
	for k, v := range want {
		if created[k] != v {
			t.Errorf("%s = %v, want %v", k, created[k], v)
		}
	}
	if _, ok := created["$schema"]; ok {
		t.Error("response should not carry a $schema link")
	}
	if store.Len() != DefaultSeed+1 {
		t.Errorf("store len = %d, want %d", store.Len(), DefaultSeed+1)
	}
}

func TestCreatePost_EmptyFieldsAllowed(t *testing.T) {
	srv := newServer(t, NewStore())
	resp, err := http.Post(srv.URL+"/posts", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
}

func TestHandler_GzipAndCORS(t *testing.T) {
	srv := newServer(t, NewSeededStore(DefaultSeed))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/posts", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Origin", "http://example.test")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
