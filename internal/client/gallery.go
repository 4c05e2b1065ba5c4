package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/NabeelAhmed1721/visionary/internal/store"
)

// SearchDelay is the quiet period before a search is applied.
const SearchDelay = 500 * time.Millisecond

var ErrNotLoaded = errors.New("posts are still loading, try again shortly")

type GalleryOptions struct {
	// Delay overrides SearchDelay when positive.
	Delay time.Duration
	// OnResults receives the filtered set each time a debounced search fires.
	OnResults func(text string, posts []store.Post)
}

// Gallery holds the full post set and the debounced search over it.
type Gallery struct {
	api       API
	alerter   Alerter
	delay     time.Duration
	onResults func(string, []store.Post)

	mu      sync.Mutex
	loading bool
	loaded  bool
	all     []store.Post
	text    string
	results []store.Post
	timer   *time.Timer
	seq     uint64
}

func NewGallery(api API, alerter Alerter, opts GalleryOptions) *Gallery {
	delay := opts.Delay
	if delay <= 0 {
		delay = SearchDelay
	}
	return &Gallery{api: api, alerter: alerter, delay: delay, onResults: opts.OnResults}
}

// Load fetches every post and keeps them newest first.
func (g *Gallery) Load(ctx context.Context) error {
	g.mu.Lock()
	g.loading = true
	g.mu.Unlock()

	posts, err := g.api.ListPosts(ctx)

	if err != nil {
		g.mu.Lock()
		g.loading = false
		g.mu.Unlock()
		g.alerter.Alert(message(err))
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false
	reversed := make([]store.Post, len(posts))
	for i, p := range posts {
		reversed[len(posts)-1-i] = p
	}
	g.all = reversed
	g.loaded = true
	return nil
}

func (g *Gallery) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

// Search records text and restarts the debounce timer. Only the last call
// of a burst is applied.
func (g *Gallery) Search(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.text = text
	g.seq++
	seq := g.seq
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(g.delay, func() { g.fire(seq, text) })
}

func (g *Gallery) fire(seq uint64, text string) {
	g.mu.Lock()
	if seq != g.seq {
		// superseded by a later keystroke
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()

	results, err := g.Filter(text)
	if err != nil {
		g.alerter.Alert(err.Error())
		return
	}
	if g.onResults != nil {
		g.onResults(text, results)
	}
}

// Filter applies text to the loaded posts immediately and stores the
// outcome as the active result set.
func (g *Gallery) Filter(text string) ([]store.Post, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.loaded {
		return nil, ErrNotLoaded
	}
	g.results = Filter(g.all, text)
	return g.results, nil
}

// Results is the active search result when search text is set, otherwise
// every loaded post.
func (g *Gallery) Results() []store.Post {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.text != "" {
		return append([]store.Post(nil), g.results...)
	}
	return append([]store.Post(nil), g.all...)
}

// Find returns the loaded post with id.
func (g *Gallery) Find(id string) (store.Post, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.all {
		if p.ID == id {
			return p, true
		}
	}
	return store.Post{}, false
}

// Download saves the post's photo into dir and returns the written path.
func (g *Gallery) Download(ctx context.Context, p store.Post, dir string) (string, error) {
	data, err := g.api.FetchImage(ctx, p.Photo)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", p.ID, err)
	}
	path := filepath.Join(dir, "download-"+p.ID+".jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// Close stops a pending search.
func (g *Gallery) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	if g.timer != nil {
		g.timer.Stop()
	}
}

// Filter keeps the posts whose name or prompt contains text, ignoring case.
func Filter(posts []store.Post, text string) []store.Post {
	needle := strings.ToLower(text)
	out := []store.Post{}
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Prompt), needle) {
			out = append(out, p)
		}
	}
	return out
}

func DisplayName(p store.Post) string {
	if strings.TrimSpace(p.Name) == "" {
		return "Anonymous"
	}
	return p.Name
}
