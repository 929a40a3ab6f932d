package sources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dag10/cshdj-youtube/internal/shared"
)

func keyConfig(baseURL string) *shared.Config {
	return &shared.Config{
		Auth:   shared.AuthConfig{Mode: shared.AuthModeKey, Key: "test_api_key"},
		Search: shared.SearchConfig{BaseURL: baseURL, MaxResults: 25},
	}
}

func TestYouTubeSource(t *testing.T) {
	t.Run("NewYouTubeSource", func(t *testing.T) {
		t.Run("creates source with default URL", func(t *testing.T) {
			if src := NewYouTubeSource(""); src == nil {
				t.Fatal("expected source to be created")
			} else if src.baseURL != defaultDataAPIBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultDataAPIBaseURL, src.baseURL)
			}
		})

		t.Run("creates source with custom URL", func(t *testing.T) {
			customURL := "http://localhost:9000/youtube/v3"
			if src := NewYouTubeSource(customURL); src.baseURL != customURL {
				t.Errorf("expected baseURL to be %s, got %s", customURL, src.baseURL)
			}
		})
	})

	t.Run("Name", func(t *testing.T) {
		if src := NewYouTubeSource(""); src.Name() != "YouTube" {
			t.Errorf("expected name to be 'YouTube', got %s", src.Name())
		}
	})

	t.Run("Init", func(t *testing.T) {
		ctx := context.Background()

		t.Run("applies key auth and search settings", func(t *testing.T) {
			src := NewYouTubeSource("")
			config := keyConfig("http://localhost:9090/youtube/v3")
			config.Search.MaxResults = 5

			if err := src.Init(ctx, shared.NewLogger(nil), config); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if src.auth.Key != "test_api_key" {
				t.Errorf("expected api key to be stored, got %s", src.auth.Key)
			}
			if src.baseURL != "http://localhost:9090/youtube/v3" {
				t.Errorf("expected baseURL override, got %s", src.baseURL)
			}
			if src.maxResults != 5 {
				t.Errorf("expected maxResults 5, got %d", src.maxResults)
			}
		})

		t.Run("token mode builds oauth client", func(t *testing.T) {
			src := NewYouTubeSource("")
			config := &shared.Config{
				Auth: shared.AuthConfig{Mode: shared.AuthModeToken, Token: "tok"},
			}

			if err := src.Init(ctx, nil, config); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if src.httpClient == http.DefaultClient {
				t.Error("expected oauth http client to replace the default")
			}
		})

		t.Run("fails fast on malformed descriptor", func(t *testing.T) {
			src := NewYouTubeSource("")
			config := &shared.Config{Auth: shared.AuthConfig{Mode: "basic"}}

			err := src.Init(ctx, nil, config)
			if !errors.Is(err, shared.ErrAuthConfig) {
				t.Errorf("expected ErrAuthConfig, got %v", err)
			}
		})

		t.Run("fails on missing credential", func(t *testing.T) {
			src := NewYouTubeSource("")
			config := &shared.Config{Auth: shared.AuthConfig{Mode: shared.AuthModeKey}}

			err := src.Init(ctx, nil, config)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("fails on nil config", func(t *testing.T) {
			src := NewYouTubeSource("")
			if err := src.Init(ctx, nil, nil); !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("Search", func(t *testing.T) {
		mockItems := []map[string]any{
			{
				"id": map[string]any{"videoId": "dQw4w9WgXcQ"},
				"snippet": map[string]any{
					"title":        "Never Gonna Give You Up",
					"channelTitle": "Rick Astley",
					"thumbnails": map[string]any{
						"default": map[string]any{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg"},
						"high":    map[string]any{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"},
					},
				},
			},
			{
				"id": map[string]any{"videoId": "9bZkp7q19f0"},
				"snippet": map[string]any{
					"title":        "Gangnam Style",
					"channelTitle": "officialpsy",
				},
			},
		}

		t.Run("maps items in order", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected path /search, got %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("part") != "snippet" {
					t.Errorf("expected part=snippet, got %s", q.Get("part"))
				}
				if q.Get("type") != "video" {
					t.Errorf("expected type=video, got %s", q.Get("type"))
				}
				if q.Get("q") != "rick astley" {
					t.Errorf("expected q=rick astley, got %s", q.Get("q"))
				}
				if q.Get("maxResults") != "10" {
					t.Errorf("expected maxResults=10, got %s", q.Get("maxResults"))
				}
				if q.Get("key") != "test_api_key" {
					t.Errorf("expected key query param")
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"items": mockItems})
			}))
			defer server.Close()

			src := NewYouTubeSource(server.URL)
			if err := src.Init(context.Background(), nil, keyConfig(server.URL)); err != nil {
				t.Fatalf("init failed: %v", err)
			}

			results, err := src.Search(context.Background(), 10, "rick astley")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(results) != 2 {
				t.Fatalf("expected 2 results, got %d", len(results))
			}
			for _, r := range results {
				if r.ID == "" || r.Title == "" {
					t.Errorf("expected non-empty id and title, got %+v", r)
				}
			}

			first := results[0]
			if first.ID != "dQw4w9WgXcQ" {
				t.Errorf("expected first result ID dQw4w9WgXcQ, got %s", first.ID)
			}
			if first.Artist != "Rick Astley" {
				t.Errorf("expected channel title as artist, got %s", first.Artist)
			}
			if first.ThumbnailURL != "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg" {
				t.Errorf("expected default thumbnail, got %s", first.ThumbnailURL)
			}
			if first.ImageURL != "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
				t.Errorf("expected high thumbnail as image, got %s", first.ImageURL)
			}

			if results[1].ID != "9bZkp7q19f0" {
				t.Errorf("expected ranking preserved, got %s second", results[1].ID)
			}
		})

		t.Run("caps results at maxResults", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"items": mockItems})
			}))
			defer server.Close()

			src := NewYouTubeSource(server.URL)
			if err := src.Init(context.Background(), nil, keyConfig(server.URL)); err != nil {
				t.Fatalf("init failed: %v", err)
			}

			results, err := src.Search(context.Background(), 1, "psy")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(results) != 1 {
				t.Errorf("expected at most 1 result, got %d", len(results))
			}
		})

		t.Run("zero matches is not an error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
			}))
			defer server.Close()

			src := NewYouTubeSource(server.URL)
			if err := src.Init(context.Background(), nil, keyConfig(server.URL)); err != nil {
				t.Fatalf("init failed: %v", err)
			}

			results, err := src.Search(context.Background(), 10, "zzzzz no such song")
			if err != nil {
				t.Fatalf("expected no error for empty result, got %v", err)
			}
			if len(results) != 0 {
				t.Errorf("expected empty result set, got %d", len(results))
			}
		})

		t.Run("wraps remote errors", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": 403, "message": "quotaExceeded"},
				})
			}))
			defer server.Close()

			src := NewYouTubeSource(server.URL)
			if err := src.Init(context.Background(), nil, keyConfig(server.URL)); err != nil {
				t.Fatalf("init failed: %v", err)
			}

			_, err := src.Search(context.Background(), 10, "anything")
			if !errors.Is(err, shared.ErrSearchFailed) {
				t.Fatalf("expected ErrSearchFailed, got %v", err)
			}
			if !strings.Contains(err.Error(), "quotaExceeded") {
				t.Errorf("expected API detail in error, got %v", err)
			}
		})
	})
}
