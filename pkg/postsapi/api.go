// Package postsapi serves a JSONPlaceholder-compatible posts resource from
// memory. It backs `postboard serve` and the client tests.
//
//	GET  /posts?_limit=n   posts ordered by id
//	GET  /posts/{id}       a single post
//	POST /posts            create a post, 201 with the stored post
//
// Unlike JSONPlaceholder, created posts are kept and show up in later lists.
package postsapi

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"

	"github.com/go-drift/postboard/pkg/log"
	"github.com/go-drift/postboard/pkg/posts"
)

// APIVersion is reported in the generated OpenAPI document.
const APIVersion = "1.0.0"

// Options tunes the handler.
type Options struct {
	// Latency delays every response, for exercising loading states.
	Latency time.Duration
}

type listInput struct {
	Limit int `query:"_limit" minimum:"0" doc:"Maximum number of posts to return; 0 returns all."`
}

type listOutput struct {
	Body []posts.Post
}

type getInput struct {
	ID int `path:"id" doc:"Post id."`
}

type postOutput struct {
	Body posts.Post
}

type createInput struct {
	Body struct {
		Title  string `json:"title" required:"false"`
		Body   string `json:"body" required:"false"`
		UserID int    `json:"userId" required:"false"`
	}
}

// Register adds the posts operations to api.
func Register(api huma.API, store *Store, opts Options) {
	wait := func(ctx context.Context) error {
		if opts.Latency <= 0 {
			return nil
		}
		t := time.NewTimer(opts.Latency)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-posts",
		Summary:     "List posts",
		Method:      http.MethodGet,
		Path:        "/posts",
		Tags:        []string{"posts"},
	}, func(ctx context.Context, input *listInput) (*listOutput, error) {
		if err := wait(ctx); err != nil {
			return nil, err
		}
		list := store.List(input.Limit)
		log.T.F("list posts limit=%d -> %d", input.Limit, len(list))
		return &listOutput{Body: list}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-post",
		Summary:     "Get a post",
		Method:      http.MethodGet,
		Path:        "/posts/{id}",
		Tags:        []string{"posts"},
	}, func(ctx context.Context, input *getInput) (*postOutput, error) {
		if err := wait(ctx); err != nil {
			return nil, err
		}
		p, ok := store.Get(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("post not found")
		}
		return &postOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-post",
		Summary:       "Create a post",
		Method:        http.MethodPost,
		Path:          "/posts",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"posts"},
	}, func(ctx context.Context, input *createInput) (*postOutput, error) {
		if err := wait(ctx); err != nil {
			return nil, err
		}
		p := store.Create(input.Body.Title, input.Body.Body, input.Body.UserID)
		log.D.F("created post #%d %q", p.ID, p.Title)
		return &postOutput{Body: p}, nil
	})
}

// NewAPI creates a huma API on mux with the posts operations registered.
func NewAPI(mux *http.ServeMux, store *Store, opts Options) huma.API {
	config := huma.DefaultConfig("postboard posts API", APIVersion)
	// Bodies match JSONPlaceholder, so no $schema links are injected.
	config.CreateHooks = nil
	api := humago.New(mux, config)
	Register(api, store, opts)
	return api
}

// NewHandler returns the complete fixture handler with gzip compression and
// permissive CORS.
func NewHandler(store *Store, opts Options) http.Handler {
	mux := http.NewServeMux()
	NewAPI(mux, store, opts)
	return cors.Default().Handler(gzhttp.GzipHandler(mux))
}

// Serve runs the fixture server on addr until ctx is cancelled, then shuts
// it down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.I.F("posts API listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
