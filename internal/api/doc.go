// Package api defines the HTTP contracts shared with the content pipeline
// backend: URL construction rules and the JSON DTOs for every endpoint the
// studio consumes. The backend mounts JSON endpoints under a single /api
// prefix and serves generated media from /media on the deployment origin.
//
// # Design Notes
//
// The backend tolerates historical field aliases (a script may arrive as
// roteiro_completo, script, or content; a render result as video_path or
// video_url). DTOs here carry every alias and expose accessor methods that
// apply the backend's own precedence rules, so callers never inspect raw
// alternatives.
package api
