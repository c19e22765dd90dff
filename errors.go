package twocaptcha

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotReady is returned by GetResult while the vendor is still working on
// the task. The polling loop in Solve treats it as "stay pending".
var ErrNotReady = errors.New("captcha not ready")

// ValidationError reports bad caller input, detected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SubmissionError means the vendor rejected the task at creation time
// (bad key, zero balance, malformed parameters). Never retried.
type SubmissionError struct {
	Code string // raw vendor code, e.g. ERROR_ZERO_BALANCE
	Text string // vendor error_text when present
}

func (e *SubmissionError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("task rejected: %s (%s)", e.Code, e.Text)
	}
	return "task rejected: " + e.Code
}

// SolveError means the vendor reported a terminal failure while the task was
// being polled, e.g. ERROR_CAPTCHA_UNSOLVABLE.
type SolveError struct {
	TaskID string
	Code   string
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("task %s failed: %s", e.TaskID, e.Code)
}

// TimeoutError means the configured maximum wait elapsed before the vendor
// produced an answer. The task is abandoned; no further polls are issued.
type TimeoutError struct {
	TaskID string
	Waited time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task %s: no answer after %s", e.TaskID, e.Waited)
}

// APIError is a non-success vendor response on a single-shot operation
// (balance, report, pingback management) or an undecodable response body.
type APIError struct {
	Op   string
	Code string
	Text string
}

func (e *APIError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Code, e.Text)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

// NetworkError wraps a transport-level failure: connection refused, timeout,
// or a non-2xx HTTP status from the vendor.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// outcome categorizes a vendor response envelope for the polling engine.
type outcome int

const (
	outcomePending outcome = iota // answer not computed yet, keep polling
	outcomeReady                  // answer available
	outcomeFailed                 // terminal vendor error, stop polling
)

// defaultPendingCodes are the vendor codes that mean "keep polling".
// CAPCHA_NOT_READY is spelled the way the vendor spells it; the corrected
// spelling is accepted too in case they ever fix it.
var defaultPendingCodes = []string{
	"CAPCHA_NOT_READY",
	"CAPTCHA_NOT_READY",
}

// classifier maps response envelopes to poll outcomes. The pending set is a
// table rather than hardcoded logic because the vendor's code list evolves;
// Config.PendingCodes extends it.
type classifier struct {
	pending map[string]struct{}
}

func newClassifier(extra []string) *classifier {
	pending := make(map[string]struct{}, len(defaultPendingCodes)+len(extra))
	for _, code := range defaultPendingCodes {
		pending[code] = struct{}{}
	}
	for _, code := range extra {
		pending[code] = struct{}{}
	}
	return &classifier{pending: pending}
}

// classify inspects a res.php envelope: status 1 carries the answer, status 0
// carries either a pending marker or a terminal error code.
func (c *classifier) classify(env envelope) outcome {
	if env.Status == 1 {
		return outcomeReady
	}
	if _, ok := c.pending[env.code()]; ok {
		return outcomePending
	}
	return outcomeFailed
}
