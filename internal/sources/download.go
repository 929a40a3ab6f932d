package sources

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	ytdl "github.com/kkdai/youtube/v2"

	"github.com/dag10/cshdj-youtube/internal/shared"
)

const (
	// Hard policy bound on fetched media length; not configurable.
	maxTrackDuration = 600 * time.Second

	// Known audio-only itags for YouTube fall in this range.
	minAudioItag = 139
	maxAudioItag = 172

	audioContainer = "audio/webm"

	watchURLPrefix = "https://www.youtube.com/watch?v="
)

// EncodeTrackID percent-encodes a track identifier so it is safe inside both
// a request URL and a filename. Matches encodeURIComponent semantics: a space
// becomes %20, not +.
func EncodeTrackID(id string) string {
	return strings.ReplaceAll(url.QueryEscape(id), "+", "%20")
}

// Fetch resolves trackID to stream metadata, enforces the duration cap,
// picks the lowest-quality webm audio rendition, and streams it to
// <downloadDir>/<encodedID>.webm, overwriting any existing file there.
//
// Errors from the remote services pass through wrapped; the only locally
// originated failures are the duration cap and the no-rendition case.
// Nothing is retried.
func (y *YouTubeSource) Fetch(ctx context.Context, trackID, downloadDir string) (string, error) {
	logger := y.fetchLogger(trackID)

	encoded := EncodeTrackID(trackID)
	watchURL := watchURLPrefix + encoded

	video, err := y.streams.GetVideoContext(ctx, watchURL)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to resolve stream info for %s: %v", watchURL, err))
		return "", fmt.Errorf("failed to resolve %s: %w", watchURL, err)
	}

	if video.Duration > maxTrackDuration {
		return "", fmt.Errorf("%w: %s runs %s, cap is %s",
			shared.ErrDurationLimit, trackID, video.Duration, maxTrackDuration)
	}

	format, err := selectAudioRendition(video.Formats)
	if err != nil {
		return "", err
	}

	stream, _, err := y.streams.GetStreamContext(ctx, video, format)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to open stream for %s: %v", watchURL, err))
		return "", fmt.Errorf("%w: %w", shared.ErrDownloadFailed, err)
	}
	defer stream.Close()

	outPath := filepath.Join(downloadDir, encoded+".webm")
	out, err := os.Create(outPath)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create %s: %v", outPath, err))
		return "", fmt.Errorf("%w: %w", shared.ErrDownloadFailed, err)
	}

	if _, err := io.Copy(out, stream); err != nil {
		out.Close()
		os.Remove(outPath)
		logger.Error(fmt.Sprintf("failed streaming %s: %v", watchURL, err))
		return "", fmt.Errorf("%w: %w", shared.ErrDownloadFailed, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("%w: %w", shared.ErrDownloadFailed, err)
	}

	logger.Info(fmt.Sprintf("downloaded %s to %s", trackID, outPath))
	return outPath, nil
}

// selectAudioRendition returns the lowest-bitrate rendition whose container
// is webm audio and whose itag is a known audio-only encoding.
func selectAudioRendition(formats ytdl.FormatList) (*ytdl.Format, error) {
	var selected *ytdl.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, audioContainer) {
			continue
		}
		if f.ItagNo < minAudioItag || f.ItagNo > maxAudioItag {
			continue
		}
		if selected == nil || f.Bitrate < selected.Bitrate {
			selected = f
		}
	}

	if selected == nil {
		return nil, shared.ErrNoAudioRendition
	}

	return selected, nil
}

// fetchLogger tags every line of one fetch with a fresh request id.
func (y *YouTubeSource) fetchLogger(trackID string) *log.Logger {
	logger := y.logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return shared.WithLogger(logger, "request_id", shared.GenerateID(), "track_id", trackID)
}
