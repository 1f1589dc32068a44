// Package errors provides the standardized error taxonomy for the assessment run.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidIdentity            ErrorCode = "INVALID_IDENTITY"
	ErrCodeAcquisitionTransportFailed ErrorCode = "ACQUISITION_TRANSPORT_FAILED"
	ErrCodeAcquisitionRejected        ErrorCode = "ACQUISITION_REJECTED"
	ErrCodeGrantIncomplete            ErrorCode = "GRANT_INCOMPLETE"

	ErrCodeInvalidSubmission         ErrorCode = "INVALID_SUBMISSION"
	ErrCodeSubmissionTransportFailed ErrorCode = "SUBMISSION_TRANSPORT_FAILED"
	ErrCodeSubmissionRejected        ErrorCode = "SUBMISSION_REJECTED"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

func newError(code ErrorCode, message, details string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidIdentityError reports identity fields that fail validation.
func NewInvalidIdentityError(details string) *StandardError {
	return newError(ErrCodeInvalidIdentity, "Identity request failed validation", details, nil)
}

// NewAcquisitionTransportError wraps a network failure on the generate-webhook call.
func NewAcquisitionTransportError(url string, err error) *StandardError {
	e := newError(ErrCodeAcquisitionTransportFailed, "Generate webhook call failed", err.Error(), err)
	e.Metadata = map[string]interface{}{"url": url}
	return e
}

// NewAcquisitionRejectedError reports a non-2xx answer from the generate-webhook endpoint.
func NewAcquisitionRejectedError(statusCode int, body string) *StandardError {
	e := newError(ErrCodeAcquisitionRejected, "Generate webhook call was rejected", body, nil)
	e.Metadata = map[string]interface{}{"statusCode": statusCode}
	return e
}

// NewGrantIncompleteError reports a grant missing its webhook URL or access token.
func NewGrantIncompleteError(missing []string) *StandardError {
	e := newError(ErrCodeGrantIncomplete, "Failed to retrieve webhook URL",
		"missing: "+strings.Join(missing, ", "), nil)
	e.Metadata = map[string]interface{}{"missing": missing}
	return e
}

// NewInvalidSubmissionError reports a submission request that cannot be sent.
func NewInvalidSubmissionError(details string) *StandardError {
	return newError(ErrCodeInvalidSubmission, "Submission request failed validation", details, nil)
}

// NewSubmissionTransportError wraps a network failure on the submission call.
func NewSubmissionTransportError(url string, err error) *StandardError {
	e := newError(ErrCodeSubmissionTransportFailed, "Error submitting solution", err.Error(), err)
	e.Metadata = map[string]interface{}{"url": url}
	return e
}

// NewSubmissionRejectedError reports a non-2xx answer from the webhook.
func NewSubmissionRejectedError(statusCode int, body string) *StandardError {
	e := newError(ErrCodeSubmissionRejected, "Submission was rejected", body, nil)
	e.Metadata = map[string]interface{}{"statusCode": statusCode}
	return e
}

// NewConfigInvalidError wraps a configuration load or validation failure.
func NewConfigInvalidError(err error) *StandardError {
	return newError(ErrCodeConfigInvalid, "Invalid configuration", err.Error(), err)
}

// AsStandardError normalizes err. Errors that are not already a StandardError
// become INTERNAL_ERROR. A nil err yields nil.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), err)
}

// CodeOf returns the error code carried by err, or "" for nil.
func CodeOf(err error) ErrorCode {
	if stdErr := AsStandardError(err); stdErr != nil {
		return stdErr.Code
	}
	return ""
}

// IsTransportError reports whether err is a network failure on either call.
func IsTransportError(err error) bool {
	return GetErrorCategory(CodeOf(err)) == "TRANSPORT"
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasSuffix(codeStr, "TRANSPORT_FAILED"):
		return "TRANSPORT"
	case strings.HasSuffix(codeStr, "REJECTED"):
		return "UPSTREAM"
	case strings.HasPrefix(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "GRANT"):
		return "GRANT"
	case strings.HasPrefix(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
