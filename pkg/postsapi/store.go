package postsapi

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/go-drift/postboard/pkg/posts"
)

// DefaultSeed is the number of posts a new server starts with.
const DefaultSeed = 100

// postsPerUser matches the JSONPlaceholder author distribution.
const postsPerUser = 10

// Store holds posts in memory. It is safe for concurrent use.
type Store struct {
	posts  *xsync.MapOf[int, posts.Post]
	lastID atomic.Int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{posts: xsync.NewMapOf[int, posts.Post]()}
}

// NewSeededStore returns a store holding n generated posts with ids 1..n.
func NewSeededStore(n int) *Store {
	s := NewStore()
	for id := 1; id <= n; id++ {
		s.put(seedPost(id))
	}
	return s
}

func (s *Store) put(p posts.Post) {
	s.posts.Store(p.ID, p)
	for {
		last := s.lastID.Load()
		if int64(p.ID) <= last || s.lastID.CompareAndSwap(last, int64(p.ID)) {
			return
		}
	}
}

// Len returns the number of posts.
func (s *Store) Len() int {
	return s.posts.Size()
}

// List returns up to limit posts ordered by id. A limit of zero or less
// returns every post.
func (s *Store) List(limit int) []posts.Post {
	out := make([]posts.Post, 0, s.posts.Size())
	s.posts.Range(func(_ int, p posts.Post) bool {
		out = append(out, p)
		return true
	})
	slices.SortFunc(out, func(a, b posts.Post) int { return a.ID - b.ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Get returns the post with id.
func (s *Store) Get(id int) (posts.Post, bool) {
	return s.posts.Load(id)
}

// Create stores a new post and assigns it the next id.
func (s *Store) Create(title, body string, userID int) posts.Post {
	p := posts.Post{
		ID:     int(s.lastID.Add(1)),
		Title:  title,
		Body:   body,
		UserID: userID,
	}
	s.posts.Store(p.ID, p)
	return p
}

// Save writes every post to w as zstd-compressed JSON.
func (s *Store) Save(w io.Writer) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := json.NewEncoder(enc).Encode(s.List(0)); err != nil {
		enc.Close()
		return fmt.Errorf("encode posts: %w", err)
	}
	return enc.Close()
}

// Load adds the posts in r, written by Save, replacing posts with the same id.
func (s *Store) Load(r io.Reader) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return err
	}
	defer dec.Close()
	var list []posts.Post
	if err := json.NewDecoder(dec).Decode(&list); err != nil {
		return fmt.Errorf("decode posts: %w", err)
	}
	for _, p := range list {
		s.put(p)
	}
	return nil
}

// SaveFile writes the store to path, replacing it atomically.
func (s *Store) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := s.Save(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// LoadFile loads posts from path.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Load(f)
}

var seedWords = strings.Fields(`sunt aut facere repellat provident occaecati
excepturi optio reprehenderit qui est esse dolorem ipsum quia dolor sit amet
ea molestias quasi exercitationem nesciunt eum et iusto sed quo iure
voluptatem occaecati omnis eligendi aut ad magnam facilis autem`)

// seedPost generates a stable post for id.
func seedPost(id int) posts.Post {
	return posts.Post{
		ID:     id,
		Title:  seedText(id, 4+id%4),
		Body:   seedText(id*7, 12+id%9),
		UserID: (id-1)/postsPerUser + 1,
	}
}

func seedText(seed, words int) string {
	x := uint32(seed)*2654435761 + 1
	out := make([]string, words)
	for i := range out {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		out[i] = seedWords[x%uint32(len(seedWords))]
	}
	return strings.Join(out, " ")
}
