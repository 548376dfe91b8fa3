package api

import "strings"

// Prefix is the path segment the backend mounts all JSON endpoints under.
const Prefix = "/api"

// mediaPrefix is where the backend serves generated media, independent of Prefix.
const mediaPrefix = "media"

// JoinAPI combines a configured base origin and a relative endpoint into one
// well-formed API URL. The base may or may not end in a trailing slash and may
// or may not already carry the /api suffix; the endpoint may or may not start
// with a slash. The result always contains the prefix exactly once with single
// separators throughout.
func JoinAPI(base, endpoint string) string {
	origin := strings.TrimRight(strings.TrimSpace(base), "/")
	if !strings.HasSuffix(origin, Prefix) {
		origin += Prefix
	}
	return origin + "/" + strings.TrimLeft(strings.TrimSpace(endpoint), "/")
}

// MediaURL resolves a media reference returned by the backend against the
// configured base origin. Media lives at the origin root, so an /api suffix on
// the base is stripped first. Absolute URLs pass through untouched.
func MediaURL(base, ref string) string {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	origin := strings.TrimRight(strings.TrimSpace(base), "/")
	origin = strings.TrimSuffix(origin, Prefix)
	origin = strings.TrimRight(origin, "/")

	path := strings.TrimLeft(trimmed, "/")
	if !strings.HasPrefix(path, mediaPrefix+"/") && path != mediaPrefix {
		path = mediaPrefix + "/" + path
	}
	return origin + "/" + path
}
