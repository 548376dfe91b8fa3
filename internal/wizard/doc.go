// Package wizard enforces the six-stage production workflow:
// script → audio → visual → effects → platforms → preview.
//
// Progression is forward-gated and backward-navigable: a stage can only be
// completed once its readiness predicate holds against the current
// ContentSettings, completing a stage unlocks the next one, and earlier
// stages stay reachable for rework. Completion flags are monotonic; only a
// full session reset clears them.
//
// Every mutation snapshots the session through a SnapshotStore on a
// best-effort basis: persistence failures are logged and swallowed so a full
// disk or missing store never blocks the user from producing a video.
package wizard
