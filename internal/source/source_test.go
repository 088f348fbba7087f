package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"wallshift/internal/config"
	"wallshift/internal/store"
	"wallshift/internal/types"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type memCatalog struct {
	inserted []types.Wallpaper
}

func (m *memCatalog) Insert(_ context.Context, wp *types.Wallpaper) error {
	m.inserted = append(m.inserted, *wp)
	return nil
}

func (m *memCatalog) BySource(_ context.Context, sourceType types.SourceType, sourceID string) (*types.Wallpaper, error) {
	for i := range m.inserted {
		if m.inserted[i].SourceType == sourceType && m.inserted[i].SourceID == sourceID {
			return &m.inserted[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", store.ErrWallpaperNotFound, sourceID)
}

type stubSource struct {
	results []Result
	err     error
	queries []string
}

func (s *stubSource) Name() string                 { return "stub" }
func (s *stubSource) SourceType() types.SourceType { return types.SourceWallhaven }

func (s *stubSource) Search(_ context.Context, query string, _ int) ([]Result, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

func TestWallhavenSearch(t *testing.T) {
	var gotQuery, gotPurity string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotPurity = r.URL.Query().Get("purity")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[
			{"id":"abc123","path":"https://example.com/a.jpg","dimension_x":3840,"dimension_y":2160,"category":"general"},
			{"id":"def456","path":"https://example.com/b.jpg","dimension_x":2560,"dimension_y":1440,"category":"anime"}
		]}`)
	}))
	defer srv.Close()

	wh := NewWallhaven(config.WallhavenConfig{Categories: "100", Purity: "100"})
	wh.baseURL = srv.URL

	results, err := wh.Search(context.Background(), "mountains", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "mountains" || gotPurity != "100" {
		t.Errorf("query params q=%q purity=%q", gotQuery, gotPurity)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want count clamp to 1", len(results))
	}
	r := results[0]
	if r.SourceID != "abc123" || r.Width != 3840 || r.Height != 2160 {
		t.Errorf("unexpected result %+v", r)
	}
	if len(r.Tags) != 2 || r.Tags[0] != "general" || r.Tags[1] != "mountains" {
		t.Errorf("unexpected tags %v", r.Tags)
	}
}

func TestPexelsSearch(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"photos":[
			{"id":99,"width":1920,"height":1080,"src":{"original":"https://example.com/p.jpg"},"alt":"forest road"}
		]}`)
	}))
	defer srv.Close()

	px := NewPexels(config.PexelsConfig{APIKey: "secret"})
	px.baseURL = srv.URL

	results, err := px.Search(context.Background(), "forest", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotAuth != "secret" {
		t.Errorf("Authorization = %q, want api key", gotAuth)
	}
	if len(results) != 1 || results[0].SourceID != "99" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestFetcherDownloadsAndRecords(t *testing.T) {
	img := pngBytes(t, 2560, 1440)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	}))
	defer srv.Close()

	catalog := &memCatalog{}
	dir := t.TempDir()
	f := NewFetcher(catalog, dir, config.FilterConfig{MinWidth: 1920, MinHeight: 1080})

	src := &stubSource{results: []Result{{SourceID: "w1", URL: srv.URL + "/a.png", Tags: []string{"nature"}}}}
	added, err := f.Fetch(context.Background(), []Source{src}, "nature", 1)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("added %d wallpapers, want 1", len(added))
	}

	wp := added[0]
	if wp.Width != 2560 || wp.Height != 1440 {
		t.Errorf("decoded dimensions %dx%d, want 2560x1440", wp.Width, wp.Height)
	}
	if wp.SourceID != "w1" {
		t.Errorf("SourceID = %q", wp.SourceID)
	}
	if _, err := os.Stat(wp.FilePath); err != nil {
		t.Errorf("wallpaper file missing: %v", err)
	}
	if len(catalog.inserted) != 1 {
		t.Errorf("store has %d records, want 1", len(catalog.inserted))
	}
}

func TestFetcherSkipsKnownWallpapers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("download attempted for a wallpaper already in the store")
	}))
	defer srv.Close()

	catalog := &memCatalog{inserted: []types.Wallpaper{{
		ID: "existing", SourceType: types.SourceWallhaven, SourceID: "w1",
	}}}
	f := NewFetcher(catalog, t.TempDir(), config.FilterConfig{})

	src := &stubSource{results: []Result{{SourceID: "w1", URL: srv.URL + "/a.png", Width: 1920, Height: 1080}}}
	added, err := f.Fetch(context.Background(), []Source{src}, "", 1)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(added) != 0 {
		t.Fatalf("added %d wallpapers, want 0", len(added))
	}
}

func TestFetcherFiltersSmallAndExcluded(t *testing.T) {
	small := pngBytes(t, 640, 480)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(small)
	}))
	defer srv.Close()

	catalog := &memCatalog{}
	f := NewFetcher(catalog, t.TempDir(), config.FilterConfig{
		MinWidth:    1920,
		MinHeight:   1080,
		ExcludeTags: []string{"anime"},
	})

	src := &stubSource{results: []Result{
		// excluded by tag before any download
		{SourceID: "tagged", URL: srv.URL + "/t.png", Width: 3840, Height: 2160, Tags: []string{"Anime"}},
		// reported size too small
		{SourceID: "small-api", URL: srv.URL + "/s.png", Width: 800, Height: 600},
		// API reports nothing, actual decode is too small
		{SourceID: "small-real", URL: srv.URL + "/r.png"},
	}}

	added, err := f.Fetch(context.Background(), []Source{src}, "", 3)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(added) != 0 {
		t.Fatalf("added %d wallpapers, want all filtered out", len(added))
	}
	if len(catalog.inserted) != 0 {
		t.Errorf("store has %d records, want 0", len(catalog.inserted))
	}
}

func TestFetcherNoSources(t *testing.T) {
	f := NewFetcher(&memCatalog{}, t.TempDir(), config.FilterConfig{})
	if _, err := f.Fetch(context.Background(), nil, "", 1); err == nil {
		t.Fatal("expected error with no sources enabled")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Sources.Wallhaven.Enabled = true
	cfg.Sources.Unsplash.Enabled = true // no access key, should be skipped
	cfg.Sources.Pexels.Enabled = true
	cfg.Sources.Pexels.APIKey = "k"

	sources := FromConfig(cfg)
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want wallhaven and pexels", len(sources))
	}
	if sources[0].Name() != "wallhaven" || sources[1].Name() != "pexels" {
		t.Errorf("unexpected sources %q, %q", sources[0].Name(), sources[1].Name())
	}
}
