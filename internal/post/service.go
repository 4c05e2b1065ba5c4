package post

import (
	"context"
	"fmt"

	"github.com/NabeelAhmed1721/visionary/internal/media"
	"github.com/NabeelAhmed1721/visionary/internal/report"
	"github.com/NabeelAhmed1721/visionary/internal/store"
)

// Service shares generated images with the community.
type Service struct {
	store    store.Store
	host     media.Host
	folder   string
	reporter report.Reporter
}

// NewService wires the post service. folder is where shared photos are hosted;
// an empty folder uploads to the host's root.
func NewService(s store.Store, host media.Host, folder string, reporter report.Reporter) *Service {
	return &Service{
		store:    s,
		host:     host,
		folder:   folder,
		reporter: reporter,
	}
}

// List returns every post in insertion order.
func (s *Service) List(ctx context.Context) ([]store.Post, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		s.reporter.Report(ctx, "listPosts", err)
		return nil, err
	}
	if posts == nil {
		posts = []store.Post{}
	}
	return posts, nil
}

// Create uploads photo and stores the post with the hosted URL. Nothing is
// written unless the upload succeeds.
func (s *Service) Create(ctx context.Context, name, prompt, photo string) (store.Post, error) {
	if err := (store.Post{Name: name, Prompt: prompt, Photo: photo}).Validate(); err != nil {
		s.reporter.Report(ctx, "createPost", err, "stage", "validate")
		return store.Post{}, err
	}

	src, err := media.ParseSource(photo)
	if err != nil {
		s.reporter.Report(ctx, "createPost", err, "stage", "parse")
		return store.Post{}, err
	}

	hosted, err := s.host.Upload(ctx, src, s.folder)
	if err != nil {
		s.reporter.Report(ctx, "createPost", err, "stage", "upload")
		return store.Post{}, fmt.Errorf("upload photo: %w", err)
	}

	created, err := s.store.Create(ctx, store.Post{Name: name, Prompt: prompt, Photo: hosted})
	if err != nil {
		s.reporter.Report(ctx, "createPost", err, "stage", "store", "photo", hosted)
		return store.Post{}, err
	}
	return created, nil
}
