// Package config loads, normalizes, and validates clipstudio configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/clipstudio/config.toml or a
// project-local clipstudio.toml. The Config type centralizes every knob the
// CLI needs: the backend origin, request timeout and retry budget, render
// polling cadence and ceiling, per-stage pipeline defaults, and storage paths.
//
// The timeout, retry, and polling constants are deployment tuning, not
// protocol requirements, so they are all configurable here rather than fixed
// in the client.
package config
