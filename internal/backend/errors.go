package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRequestTimeout reports that a request kept timing out after the retry
// budget was exhausted.
var ErrRequestTimeout = errors.New("backend request timed out")

// ErrJobTimeout reports that a render job did not reach a terminal state
// before the polling ceiling elapsed.
var ErrJobTimeout = errors.New("render job polling ceiling exceeded")

// StatusError carries a non-2xx HTTP response the caller may still inspect.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
	Message    string // backend-provided error text, when decodable
}

func (e *StatusError) Error() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return fmt.Sprintf("backend %s: http %d: %s", e.Endpoint, e.StatusCode, msg)
	}
	return fmt.Sprintf("backend %s: http %d", e.Endpoint, e.StatusCode)
}

// JobError carries the backend-supplied message for a failed render job.
type JobError struct {
	JobID   string
	Message string
}

func (e *JobError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("render job %s failed", e.JobID)
	}
	return fmt.Sprintf("render job %s failed: %s", e.JobID, e.Message)
}

// retryableStatus reports whether an HTTP status is in the transient set.
func retryableStatus(code int) bool {
	switch code {
	case 429, 502, 503, 504:
		return true
	}
	return false
}
