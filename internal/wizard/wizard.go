package wizard

import (
	"context"
	"fmt"
	"log/slog"

	"clipstudio/internal/session"
)

// ErrStageNotReady reports an attempt to complete a stage whose readiness
// predicate does not hold.
type ErrStageNotReady struct {
	Stage  Stage
	Reason string
}

func (e *ErrStageNotReady) Error() string {
	return fmt.Sprintf("stage %s is not ready: %s", e.Stage, e.Reason)
}

// SnapshotStore is the persistence capability the wizard needs. The concrete
// implementation is session.Store; tests substitute in-memory fakes.
type SnapshotStore interface {
	Save(ctx context.Context, snap *session.Snapshot) error
}

// Wizard drives one editing session through the six production stages.
type Wizard struct {
	snap   session.Snapshot
	store  SnapshotStore
	logger *slog.Logger
}

// Option customizes a wizard.
type Option func(*Wizard)

// WithStore enables best-effort snapshot persistence.
func WithStore(store SnapshotStore) Option {
	return func(w *Wizard) { w.store = store }
}

// WithLogger attaches a logger for persistence diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New starts a fresh session at the script stage.
func New(settings session.ContentSettings, opts ...Option) *Wizard {
	w := &Wizard{
		snap: session.Snapshot{
			Stage:    int(StageScript),
			Settings: settings,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Resume rehydrates a wizard from a persisted snapshot.
func Resume(snap session.Snapshot, opts ...Option) *Wizard {
	w := &Wizard{snap: snap, logger: slog.Default()}
	if !Stage(w.snap.Stage).Valid() {
		w.snap.Stage = int(StageScript)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Current returns the stage the session is on.
func (w *Wizard) Current() Stage {
	return Stage(w.snap.Stage)
}

// Completed reports whether the given stage has been finished.
func (w *Wizard) Completed(stage Stage) bool {
	if !stage.Valid() {
		return false
	}
	return w.snap.Completed[int(stage)-1]
}

// Settings returns a copy of the configuration aggregate.
func (w *Wizard) Settings() session.ContentSettings {
	return w.snap.Settings
}

// Snapshot returns a copy of the full session state.
func (w *Wizard) Snapshot() session.Snapshot {
	return w.snap
}

// SessionID returns the persisted session identifier, empty until the first
// successful snapshot write.
func (w *Wizard) SessionID() string {
	return w.snap.ID
}

// SetSettings replaces the configuration aggregate whole and snapshots the
// session. Replacement (rather than field mutation) keeps every transition
// observable and makes last-write-wins explicit.
func (w *Wizard) SetSettings(ctx context.Context, settings session.ContentSettings) {
	w.snap.Settings = settings
	w.persist(ctx)
}

// Ready reports whether the current stage can be completed.
func (w *Wizard) Ready() bool {
	return Ready(w.Current(), w.snap.Settings)
}

// CompleteStage marks the current stage finished and advances to the next
// one, unless the session already sits on the final stage. The stage's
// readiness predicate must hold.
func (w *Wizard) CompleteStage(ctx context.Context) (Stage, error) {
	current := w.Current()
	if reason := MissingRequirement(current, w.snap.Settings); reason != "" {
		return current, &ErrStageNotReady{Stage: current, Reason: reason}
	}
	w.snap.Completed[int(current)-1] = true
	if current < StagePreview {
		w.snap.Stage = int(current) + 1
	}
	w.persist(ctx)
	return w.Current(), nil
}

// NavigateTo moves to the requested stage when permitted: stage 1 is always
// reachable, any other stage only once its predecessor is complete. A
// forbidden jump is a no-op and reports false.
func (w *Wizard) NavigateTo(ctx context.Context, target Stage) bool {
	if !target.Valid() {
		return false
	}
	if target != StageScript && !w.snap.Completed[int(target)-2] {
		return false
	}
	if int(target) == w.snap.Stage {
		return true
	}
	w.snap.Stage = int(target)
	w.persist(ctx)
	return true
}

// Reset starts the session over: fresh identifier, all completion flags
// cleared, back to the script stage.
func (w *Wizard) Reset(ctx context.Context, settings session.ContentSettings) {
	w.snap = session.Snapshot{
		Stage:    int(StageScript),
		Settings: settings,
	}
	w.persist(ctx)
}

// persist writes a best-effort snapshot. Failures never propagate; losing a
// snapshot must not block the workflow.
func (w *Wizard) persist(ctx context.Context) {
	if w.store == nil {
		return
	}
	if err := w.store.Save(ctx, &w.snap); err != nil {
		w.logger.Debug("session snapshot write failed", "error", err)
	}
}
