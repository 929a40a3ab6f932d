// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dag10/cshdj-youtube/internal/shared"
	"github.com/dag10/cshdj-youtube/internal/sources"
)

// MockSource is a test double for [sources.SongSource]. Results, Path, and
// the Err fields control what each call returns; the counters record
// invocations.
type MockSource struct {
	Results   []sources.SearchResult
	Path      string
	InitErr   error
	SearchErr error
	FetchErr  error

	InitCalls   int
	SearchCalls int
	FetchCalls  int
	LastQuery   string
	LastTrackID string
	LastDir     string
}

func (m *MockSource) Init(ctx context.Context, logger *log.Logger, config *shared.Config) error {
	m.InitCalls++
	return m.InitErr
}

func (m *MockSource) Search(ctx context.Context, maxResults int, query string) ([]sources.SearchResult, error) {
	m.SearchCalls++
	m.LastQuery = query
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if maxResults > 0 && len(m.Results) > maxResults {
		return m.Results[:maxResults], nil
	}
	return m.Results, nil
}

func (m *MockSource) Fetch(ctx context.Context, trackID, downloadDir string) (string, error) {
	m.FetchCalls++
	m.LastTrackID = trackID
	m.LastDir = downloadDir
	if m.FetchErr != nil {
		return "", m.FetchErr
	}
	if m.Path != "" {
		return m.Path, nil
	}
	return filepath.Join(downloadDir, sources.EncodeTrackID(trackID)+".webm"), nil
}

func (m *MockSource) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
