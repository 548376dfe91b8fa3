// Package logging constructs the slog loggers used across clipstudio.
//
// Loggers are built from Options (level, format, output paths) or directly
// from application config, which appends a rotating-free append-only log file
// under the configured log directory alongside stderr output. Console format
// is for interactive use; json is for ingestion.
package logging
