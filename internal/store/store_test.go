package store

import (
	"context"
	"testing"

	"github.com/NabeelAhmed1721/visionary/internal/config"
)

func TestNewMemoryDriver(t *testing.T) {
	s, err := New(context.Background(), config.Config{StoreDriver: "memory"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", s)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNewUnsupportedDriver(t *testing.T) {
	if _, err := New(context.Background(), config.Config{StoreDriver: "sqlite"}); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestPostValidate(t *testing.T) {
	if err := (Post{Name: "A", Prompt: "p", Photo: "u"}).Validate(); err != nil {
		t.Fatalf("expected valid post, got %v", err)
	}
	if err := (Post{Name: "A", Prompt: "p"}).Validate(); err == nil {
		t.Fatalf("expected missing photo to be rejected")
	}
}
