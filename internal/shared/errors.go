package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrAuthConfig         = fmt.Errorf("invalid auth configuration")

	// Search errors
	ErrSearchFailed = fmt.Errorf("catalog search failed")

	// Fetch errors
	ErrDurationLimit    = fmt.Errorf("track exceeds duration limit")
	ErrNoAudioRendition = fmt.Errorf("no audio rendition available")
	ErrDownloadFailed   = fmt.Errorf("download failed")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
