package parsing

import (
	"fmt"
	"net/url"
	"strings"

	"harvester/internal/domain/errs"
)

// ValidateURL checks that u is an absolute http(s) URL with a host.
func ValidateURL(u string) error {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return fmt.Errorf("%w %q: %w", errs.ErrValidation, u, err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w %q: scheme must be http or https", errs.ErrValidation, u)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w %q: missing host", errs.ErrValidation, u)
	}
	return nil
}

// playlistPathMarkers are path fragments used by common sites for collections.
var playlistPathMarkers = [...]string{
	"/playlist",
	"/sets/",
	"/album/",
	"/channel/",
	"/c/",
	"/user/",
}

// IsPlaylist guesses whether u points at a collection rather than one item.
//
// This is a URL-string heuristic only and may be wrong.
func IsPlaylist(u string) bool {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return false
	}
	if parsed.Query().Get("list") != "" {
		return true
	}

	path := strings.ToLower(parsed.Path)
	for _, marker := range playlistPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}

	// Handle pages like /@name, /@name/videos, /@name/streams
	if strings.HasPrefix(path, "/@") {
		rest := strings.Trim(path[2:], "/")
		parts := strings.Split(rest, "/")
		if len(parts) == 1 {
			return true
		}
		switch parts[1] {
		case "videos", "streams", "shorts", "playlists", "featured":
			return true
		}
	}
	return false
}
