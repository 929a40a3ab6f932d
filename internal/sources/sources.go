// package sources defines interface SongSource, the contract a song source
// plugin exposes to the DJ host application
//
// YouTube is the only implementation in this repository
package sources

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/dag10/cshdj-youtube/internal/shared"
)

// SongSource defines the interface for pluggable song backends. The host
// calls Init once at startup, then Search and Fetch independently and
// concurrently as needed.
type SongSource interface {
	// Init configures authentication against the remote catalog.
	// Returns an error if the auth descriptor is malformed or missing a credential.
	Init(ctx context.Context, logger *log.Logger, config *shared.Config) error

	// Search issues a free-text query against the catalog and returns at most
	// maxResults matches in the catalog's own ranking order.
	// An empty result set is not an error.
	Search(ctx context.Context, maxResults int, query string) ([]SearchResult, error)

	// Fetch downloads the audio for a track previously returned by Search
	// into downloadDir and returns the full path of the written file.
	Fetch(ctx context.Context, trackID, downloadDir string) (string, error)

	// Name returns the display name of the source (e.g., "YouTube")
	Name() string
}

// SearchResult represents one catalog match handed to the host. Constructed
// fresh per search response and discarded after the caller takes it.
type SearchResult struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist,omitempty"`
	Album        string `json:"album,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
}
