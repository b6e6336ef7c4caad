// Package posts is a client for a JSONPlaceholder-compatible posts resource.
//
//	client, err := posts.NewClient("https://jsonplaceholder.typicode.com")
//	list, err := client.List(ctx, posts.InitialLimit)
//	created, err := client.Create(ctx, posts.Draft{Title: "Hello", Body: "World"})
//
// Every failure is an [*errors.Error] whose Kind tells network failures,
// non-2xx responses and malformed bodies apart.
package posts

// DefaultBaseURL is the public JSONPlaceholder service.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// DefaultUserID is the author id sent with every created post.
const DefaultUserID = 1

// Page sizes requested by the post list.
const (
	InitialLimit = 10
	RefreshLimit = 20
)

// Post is a server-confirmed post.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// Draft is unsaved input for a new post.
type Draft struct {
	Title string
	Body  string
}

// IsEmpty reports whether both fields are empty.
func (d Draft) IsEmpty() bool {
	return d.Title == "" && d.Body == ""
}

// createRequest is the body of POST /posts.
type createRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}
