// Package studio orchestrates the production pipeline: it runs backend
// operations for the current wizard stage, applies their results to the
// session's ContentSettings, and leaves stage completion and navigation to
// the wizard's gating rules.
package studio
