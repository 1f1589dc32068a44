package orchestrator

import (
	"strings"
	"time"

	"assessment-runner/internal/common/errors"
	"assessment-runner/internal/common/logger"
)

// Kind classifies how a run ended.
type Kind string

const (
	KindSubmitted         Kind = "SUBMITTED"
	KindAcquisitionFailed Kind = "ACQUISITION_FAILED"
	KindGrantIncomplete   Kind = "GRANT_INCOMPLETE"
	KindSubmissionFailed  Kind = "SUBMISSION_FAILED"
)

// Outcome is the lower-case label used for metrics.
func (k Kind) Outcome() string {
	if k == "" {
		return "unknown"
	}
	return strings.ToLower(string(k))
}

// RunResult is the outcome of one Run. The token is never stored here.
type RunResult struct {
	RunID      string
	Kind       Kind
	WebhookURL string
	StatusCode int
	Err        error
	Duration   time.Duration
}

// Submitted reports whether a submission was attempted.
func (r *RunResult) Submitted() bool {
	return r != nil && (r.Kind == KindSubmitted || r.Kind == KindSubmissionFailed)
}

// Log writes the final entry of a run. Errors stop here.
func (r *RunResult) Log(log logger.Logger) {
	if r == nil {
		return
	}
	fields := map[string]interface{}{
		"runId":      r.RunID,
		"kind":       string(r.Kind),
		"durationMs": r.Duration.Milliseconds(),
	}
	if r.WebhookURL != "" {
		fields["webhookUrl"] = r.WebhookURL
	}
	if r.StatusCode != 0 {
		fields["statusCode"] = r.StatusCode
	}

	if r.Err == nil {
		log.Info("webhook execution flow completed", fields)
		return
	}
	errors.NewErrorHandler(log).Handle("an error occurred during execution", r.Err, fields)
}
