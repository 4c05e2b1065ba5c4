package store

import (
	"context"
	"sync"

	"github.com/rs/xid"
)

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	posts []Post
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, p Post) (Post, error) {
	if err := p.Validate(); err != nil {
		return Post{}, err
	}
	p.ID = xid.New().String()

	s.mu.Lock()
	s.posts = append(s.posts, p)
	s.mu.Unlock()
	return p, nil
}

func (s *MemoryStore) List(context.Context) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]Post, len(s.posts))
	copy(posts, s.posts)
	return posts, nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}
