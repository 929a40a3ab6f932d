// YouTube [SongSource] implementation
//
// Search goes through the YouTube Data API v3; audio fetching resolves and
// streams renditions via github.com/kkdai/youtube/v2.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	ytdl "github.com/kkdai/youtube/v2"
	"golang.org/x/oauth2"

	"github.com/dag10/cshdj-youtube/internal/shared"
)

const defaultDataAPIBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeSource implements the SongSource interface for YouTube.
type YouTubeSource struct {
	baseURL    string
	auth       shared.AuthConfig
	maxResults int
	httpClient *http.Client
	streams    streamClient
	logger     *log.Logger
}

// streamClient is the subset of [ytdl.Client] the fetch path uses.
type streamClient interface {
	GetVideoContext(ctx context.Context, url string) (*ytdl.Video, error)
	GetStreamContext(ctx context.Context, video *ytdl.Video, format *ytdl.Format) (io.ReadCloser, int64, error)
}

var _ SongSource = (*YouTubeSource)(nil)

// NewYouTubeSource creates a new YouTube source instance.
func NewYouTubeSource(baseURL string) *YouTubeSource {
	if baseURL == "" {
		baseURL = defaultDataAPIBaseURL
	}

	return &YouTubeSource{
		baseURL:    baseURL,
		maxResults: 25,
		httpClient: http.DefaultClient,
		streams:    &ytdl.Client{},
	}
}

// Name returns the source name.
func (y *YouTubeSource) Name() string {
	return "YouTube"
}

// Init applies the configuration's auth descriptor and stores the logger
// used by subsequent Search and Fetch calls.
//
// Mode "key" appends the API key to every search request; mode "token"
// swaps the HTTP client for an [oauth2] client built from a static token.
func (y *YouTubeSource) Init(ctx context.Context, logger *log.Logger, config *shared.Config) error {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	y.logger = logger

	if config == nil {
		return fmt.Errorf("%w: nil config", shared.ErrInvalidConfig)
	}

	if err := config.Auth.Validate(); err != nil {
		return err
	}

	y.auth = config.Auth
	if config.Search.BaseURL != "" {
		y.baseURL = config.Search.BaseURL
	}
	if config.Search.MaxResults > 0 {
		y.maxResults = config.Search.MaxResults
	}

	if y.auth.Mode == shared.AuthModeToken {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: y.auth.Token})
		y.httpClient = oauth2.NewClient(ctx, src)
	}

	return nil
}

func (y *YouTubeSource) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if y.auth.Mode == shared.AuthModeKey {
		query.Set("key", y.auth.Key)
	}
	apiURL := y.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search queries the Data API search endpoint restricted to playable videos,
// preserving the API's ranking.
//
// Calls GET /search?part=snippet&type=video&q={query}&maxResults={n}.
func (y *YouTubeSource) Search(ctx context.Context, maxResults int, query string) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = y.maxResults
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))

	var resp struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
				Thumbnails   struct {
					Default struct {
						URL string `json:"url"`
					} `json:"default"`
					High struct {
						URL string `json:"url"`
					} `json:"high"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}

	if err := y.doRequest(ctx, "/search", params, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrSearchFailed, err)
	}

	if len(resp.Items) > maxResults {
		resp.Items = resp.Items[:maxResults]
	}

	results := make([]SearchResult, len(resp.Items))
	for i, item := range resp.Items {
		results[i] = SearchResult{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Artist:       item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.Thumbnails.Default.URL,
			ImageURL:     item.Snippet.Thumbnails.High.URL,
		}
	}

	return results, nil
}
