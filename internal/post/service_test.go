package post

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/NabeelAhmed1721/visionary/internal/media"
	"github.com/NabeelAhmed1721/visionary/internal/store"
)

type fakeHost struct {
	mu      sync.Mutex
	sources []media.Source
	folders []string
	err     error
}

func (f *fakeHost) Upload(_ context.Context, src media.Source, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sources = append(f.sources, src)
	f.folders = append(f.folders, folder)
	return "https://cdn.example/hosted.png", nil
}

type recordingReporter struct {
	mu  sync.Mutex
	ops []string
}

func (r *recordingReporter) Report(_ context.Context, op string, _ error, _ ...any) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

type failingStore struct{ store.Store }

var errStore = errors.New("store down")

func (failingStore) Create(context.Context, store.Post) (store.Post, error) {
	return store.Post{}, errStore
}

func (failingStore) List(context.Context) ([]store.Post, error) {
	return nil, errStore
}

func TestCreateUploadsThenStores(t *testing.T) {
	host := &fakeHost{}
	s := store.NewMemory()
	svc := NewService(s, host, "", &recordingReporter{})

	created, err := svc.Create(context.Background(), "A", "a red fox", "https://provider.example/fox.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Photo != "https://cdn.example/hosted.png" {
		t.Fatalf("unexpected post %+v", created)
	}
	if len(host.sources) != 1 || host.sources[0].URL != "https://provider.example/fox.png" {
		t.Fatalf("expected one upload of the photo url, got %+v", host.sources)
	}

	posts, _ := svc.List(context.Background())
	if len(posts) != 1 || posts[0] != created {
		t.Fatalf("expected created post in list, got %+v", posts)
	}
}

func TestCreateUploadsInlinePhoto(t *testing.T) {
	host := &fakeHost{}
	svc := NewService(store.NewMemory(), host, "shared", &recordingReporter{})

	if _, err := svc.Create(context.Background(), "A", "p", "data:image/png;base64,iVBORw0K"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(host.sources[0].Data) == 0 || host.sources[0].MIMEType != "image/png" {
		t.Fatalf("expected inline data upload, got %+v", host.sources[0])
	}
	if host.folders[0] != "shared" {
		t.Fatalf("expected folder shared, got %q", host.folders[0])
	}
}

func TestCreateMissingPromptSkipsUpload(t *testing.T) {
	host := &fakeHost{}
	rep := &recordingReporter{}
	s := store.NewMemory()
	svc := NewService(s, host, "", rep)

	_, err := svc.Create(context.Background(), "A", "", "https://provider.example/fox.png")
	if !errors.Is(err, store.ErrInvalidPost) {
		t.Fatalf("expected ErrInvalidPost, got %v", err)
	}
	if len(host.sources) != 0 {
		t.Fatalf("expected no upload")
	}
	if len(rep.ops) != 1 || rep.ops[0] != "createPost" {
		t.Fatalf("expected failure to be reported, got %v", rep.ops)
	}
	posts, _ := s.List(context.Background())
	if len(posts) != 0 {
		t.Fatalf("expected no record, got %d", len(posts))
	}
}

func TestCreateUploadFailureWritesNothing(t *testing.T) {
	s := store.NewMemory()
	svc := NewService(s, &fakeHost{err: errors.New("quota exceeded")}, "", &recordingReporter{})

	if _, err := svc.Create(context.Background(), "A", "p", "https://provider.example/fox.png"); err == nil {
		t.Fatalf("expected upload error")
	}
	posts, _ := s.List(context.Background())
	if len(posts) != 0 {
		t.Fatalf("expected no partial record, got %+v", posts)
	}
}

func TestCreateMissingNameSkipsUpload(t *testing.T) {
	host := &fakeHost{}
	svc := NewService(store.NewMemory(), host, "", &recordingReporter{})

	_, err := svc.Create(context.Background(), "", "p", "https://provider.example/fox.png")
	if !errors.Is(err, store.ErrInvalidPost) {
		t.Fatalf("expected empty name to be rejected, got %v", err)
	}
	if len(host.sources) != 0 {
		t.Fatalf("expected no upload for an invalid post, got %+v", host.sources)
	}
}

func TestListStoreFailureIsReported(t *testing.T) {
	rep := &recordingReporter{}
	svc := NewService(failingStore{}, &fakeHost{}, "", rep)

	if _, err := svc.List(context.Background()); !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(rep.ops) != 1 || rep.ops[0] != "listPosts" {
		t.Fatalf("expected listPosts report, got %v", rep.ops)
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	svc := NewService(store.NewMemory(), &fakeHost{}, "", &recordingReporter{})
	posts, err := svc.List(context.Background())
	if err != nil || posts == nil {
		t.Fatalf("expected empty non-nil slice, got %v %v", posts, err)
	}
}
