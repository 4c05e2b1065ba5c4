package client

import (
	"context"
	"sync"

	"github.com/NabeelAhmed1721/visionary/internal/store"
)

type fakeAPI struct {
	mu        sync.Mutex
	posts     []store.Post
	photo     string
	image     []byte
	listErr   error
	genErr    error
	createErr error
	generated []string
	created   []store.Post
}

func (f *fakeAPI) ListPosts(context.Context) ([]store.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]store.Post(nil), f.posts...), nil
}

func (f *fakeAPI) CreatePost(_ context.Context, name, prompt, photo string) (store.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return store.Post{}, f.createErr
	}
	p := store.Post{ID: "p1", Name: name, Prompt: prompt, Photo: photo}
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeAPI) GenerateImage(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated = append(f.generated, prompt)
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.photo, nil
}

func (f *fakeAPI) FetchImage(context.Context, string) ([]byte, error) {
	return f.image, nil
}

type recorder struct {
	mu     sync.Mutex
	alerts []string
	paths  []string
}

func (r *recorder) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, message)
}

func (r *recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return ""
	}
	return r.alerts[len(r.alerts)-1]
}
