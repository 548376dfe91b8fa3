// Package session persists wizard sessions so a crash or restart resumes
// mid-pipeline. A Snapshot is the full serialized state of one editing
// session: the ContentSettings aggregate, the per-stage completion flags, and
// the current stage. Snapshots live in a SQLite database under the data
// directory, guarded by a file lock so two concurrent processes cannot
// clobber each other's writes.
//
// Persistence here is strict; the best-effort, swallow-errors policy the
// wizard applies on every mutation lives in the wizard package, not here.
package session
