package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clipstudio/internal/api"
)

// maxInterimProgress caps reported progress until the backend confirms
// completion; 100 is reserved for a confirmed terminal result.
const maxInterimProgress = 95

// PollOptions tunes one WaitForVideo call. Zero values fall back to the
// client's configured cadence and ceiling.
type PollOptions struct {
	Interval   time.Duration
	Ceiling    time.Duration
	OnProgress func(percent int)
}

// WaitForVideo polls a render job until it completes, fails, or the wall-clock
// ceiling elapses. Individual failed status checks are ignored and polling
// continues; only the ceiling or a terminal status ends the loop. Progress is
// surfaced through OnProgress, clamped below 100 until completion.
func (c *Client) WaitForVideo(ctx context.Context, jobID string, opts PollOptions) (*api.JobStatusResponse, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = c.pollInterval
	}
	ceiling := opts.Ceiling
	if ceiling <= 0 {
		ceiling = c.pollCeiling
	}
	deadline := c.now().Add(ceiling)
	lastStatus := api.JobPending

	for {
		status, err := c.JobStatus(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Debug("render job status check failed, continuing", "job_id", jobID, "error", err)
		} else {
			if trimmed := strings.TrimSpace(status.Status); trimmed != "" {
				lastStatus = trimmed
			}
			switch status.Status {
			case api.JobCompleted:
				report(opts.OnProgress, 100)
				return status, nil
			case api.JobFailed:
				return nil, &JobError{JobID: jobID, Message: status.Error}
			default:
				if status.Progress != nil {
					percent := int(*status.Progress)
					if percent > maxInterimProgress {
						percent = maxInterimProgress
					}
					if percent < 0 {
						percent = 0
					}
					report(opts.OnProgress, percent)
				}
			}
		}

		if c.now().After(deadline) {
			return nil, fmt.Errorf("%w: job %s still %s after %s", ErrJobTimeout, jobID, lastStatus, ceiling)
		}
		if err := c.sleep(ctx, interval); err != nil {
			return nil, err
		}
	}
}

func report(fn func(int), percent int) {
	if fn != nil {
		fn(percent)
	}
}
