package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NabeelAhmed1721/visionary/internal/config"
)

// Store persists posts. Posts are created once and never updated or deleted.
type Store interface {
	// Create validates and inserts p, returning it with the store-assigned ID.
	Create(ctx context.Context, p Post) (Post, error)
	// List returns every post in insertion order.
	List(ctx context.Context) ([]Post, error)
	Close(ctx context.Context) error
}

// New opens the store selected by cfg.StoreDriver.
func New(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "mongo":
		client, err := ConnectMongo(ctx, cfg.MongoURL)
		if err != nil {
			return nil, err
		}
		slog.Info("connected to mongo", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)
		return NewMongo(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)), nil
	case "memory":
		slog.Warn("using in-memory post store, posts are lost on restart")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}
