// Package metrics counts calls to the paid and remote collaborators.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NabeelAhmed1721/visionary/internal/imagegen"
	"github.com/NabeelAhmed1721/visionary/internal/media"
	"github.com/NabeelAhmed1721/visionary/internal/store"
)

type Metrics struct {
	generations *prometheus.CounterVec
	uploads     *prometheus.CounterVec
	storeOps    *prometheus.CounterVec
	gatherer    prometheus.Gatherer
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visionary_image_generations_total",
			Help: "Image generation calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visionary_media_uploads_total",
			Help: "Media hosting uploads by driver and outcome.",
		}, []string{"driver", "outcome"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visionary_store_operations_total",
			Help: "Record store operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		gatherer: reg,
	}
	reg.MustRegister(m.generations, m.uploads, m.storeOps)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

type generator struct {
	next     imagegen.Generator
	provider string
	m        *Metrics
}

// Generator counts every call made through g.
func (m *Metrics) Generator(g imagegen.Generator, provider string) imagegen.Generator {
	return &generator{next: g, provider: provider, m: m}
}

func (g *generator) Generate(ctx context.Context, prompt string) (imagegen.Image, error) {
	img, err := g.next.Generate(ctx, prompt)
	g.m.generations.WithLabelValues(g.provider, outcome(err)).Inc()
	return img, err
}

type host struct {
	next   media.Host
	driver string
	m      *Metrics
}

// Host counts every upload made through h.
func (m *Metrics) Host(h media.Host, driver string) media.Host {
	return &host{next: h, driver: driver, m: m}
}

func (h *host) Upload(ctx context.Context, src media.Source, folder string) (string, error) {
	url, err := h.next.Upload(ctx, src, folder)
	h.m.uploads.WithLabelValues(h.driver, outcome(err)).Inc()
	return url, err
}

type recordStore struct {
	store.Store
	m *Metrics
}

// Store counts creates and lists made through s.
func (m *Metrics) Store(s store.Store) store.Store {
	return &recordStore{Store: s, m: m}
}

func (s *recordStore) Create(ctx context.Context, p store.Post) (store.Post, error) {
	created, err := s.Store.Create(ctx, p)
	s.m.storeOps.WithLabelValues("create", outcome(err)).Inc()
	return created, err
}

func (s *recordStore) List(ctx context.Context) ([]store.Post, error) {
	posts, err := s.Store.List(ctx)
	s.m.storeOps.WithLabelValues("list", outcome(err)).Inc()
	return posts, err
}
