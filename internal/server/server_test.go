package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NabeelAhmed1721/visionary/internal/generation"
	"github.com/NabeelAhmed1721/visionary/internal/imagegen"
	"github.com/NabeelAhmed1721/visionary/internal/media"
	"github.com/NabeelAhmed1721/visionary/internal/metrics"
	"github.com/NabeelAhmed1721/visionary/internal/post"
	"github.com/NabeelAhmed1721/visionary/internal/report"
	"github.com/NabeelAhmed1721/visionary/internal/store"
)

type fakeGenerator struct{}

func (fakeGenerator) Generate(_ context.Context, prompt string) (imagegen.Image, error) {
	return imagegen.Image{URL: "https://provider.example/" + strings.ReplaceAll(prompt, " ", "-") + ".png"}, nil
}

type fakeHost struct{}

func (fakeHost) Upload(_ context.Context, src media.Source, folder string) (string, error) {
	name := filepath.Base(src.URL)
	if folder != "" {
		return "https://cdn.example/" + folder + "/" + name, nil
	}
	return "https://cdn.example/" + name, nil
}

func newTestServer(t *testing.T, opts Options) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemory()
	posts := post.NewService(s, fakeHost{}, "", report.Discard)
	gen := generation.NewService(fakeGenerator{}, fakeHost{}, "generated_images", report.Discard)
	return New(posts, gen, opts), s
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGenerateShareListScenario(t *testing.T) {
	r, _ := newTestServer(t, Options{})

	rec := serve(r, http.MethodPost, "/api/v1/dalle", `{"prompt":"a red fox"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status %d: %s", rec.Code, rec.Body.String())
	}
	var generated struct {
		Photo string `json:"photo"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &generated)
	if generated.Photo != "https://cdn.example/generated_images/a-red-fox.png" {
		t.Fatalf("unexpected photo %q", generated.Photo)
	}

	payload, _ := json.Marshal(map[string]string{"name": "A", "prompt": "a red fox", "photo": generated.Photo})
	rec = serve(r, http.MethodPost, "/api/v1/post", string(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Success bool       `json:"success"`
		Data    store.Post `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if !created.Success || created.Data.ID == "" {
		t.Fatalf("expected created post with id, got %s", rec.Body.String())
	}

	rec = serve(r, http.MethodGet, "/api/v1/post", "")
	var listed struct {
		Success bool         `json:"success"`
		Data    []store.Post `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &listed)
	if rec.Code != http.StatusOK || !listed.Success || len(listed.Data) != 1 {
		t.Fatalf("unexpected list %d %s", rec.Code, rec.Body.String())
	}
	if listed.Data[0].ID != created.Data.ID || listed.Data[0].Prompt != "a red fox" {
		t.Fatalf("listed post does not match created: %+v", listed.Data[0])
	}
}

func TestCreateMissingPromptAddsNothing(t *testing.T) {
	r, s := newTestServer(t, Options{})

	rec := serve(r, http.MethodPost, "/api/v1/post", `{"name":"A","photo":"https://provider.example/x.png"}`)
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("expected failure, got %d %s", rec.Code, rec.Body.String())
	}
	posts, _ := s.List(context.Background())
	if len(posts) != 0 {
		t.Fatalf("expected no record, got %d", len(posts))
	}
}

func TestRootHealthAndCORS(t *testing.T) {
	r, _ := newTestServer(t, Options{})

	rec := serve(r, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Hello from DALL.E!") {
		t.Fatalf("unexpected root %d %s", rec.Code, rec.Body.String())
	}

	if rec := serve(r, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health status %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dalle", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected permissive CORS, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestBodyLimit(t *testing.T) {
	r, _ := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/post", strings.NewReader("{}"))
	req.ContentLength = MaxBodyBytes + 1
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r, _ := newTestServer(t, Options{Metrics: m})

	rec := serve(r, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
}

func TestStaticClient(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>visionary</html>"), 0o600); err != nil {
		t.Fatalf("write index: %v", err)
	}
	r, _ := newTestServer(t, Options{ClientDir: dir})

	for _, path := range []string{"/", "/create-post"} {
		rec := serve(r, http.MethodGet, path, "")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "visionary") {
			t.Fatalf("GET %s: %d %s", path, rec.Code, rec.Body.String())
		}
	}

	if rec := serve(r, http.MethodGet, "/api/v1/dalle", ""); !strings.Contains(rec.Body.String(), "Hello from DALL-E!") {
		t.Fatalf("api must not be shadowed by the client: %s", rec.Body.String())
	}
}

func TestMissingClientDirFallsBackToHello(t *testing.T) {
	r, _ := newTestServer(t, Options{ClientDir: filepath.Join(t.TempDir(), "missing")})

	rec := serve(r, http.MethodGet, "/", "")
	if !strings.Contains(rec.Body.String(), "Hello from DALL.E!") {
		t.Fatalf("expected hello fallback, got %s", rec.Body.String())
	}
}
