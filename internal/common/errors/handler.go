// internal/common/errors/handler.go
package errors

// Logger is the subset of the logger the handler needs.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ErrorHandler turns a run error into a single structured log entry.
// It is the only place an error stops propagating.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err and swallows it. Submission problems are warnings since the
// run still counts as completed; everything else is an error.
func (h *ErrorHandler) Handle(msg string, err error, fields map[string]interface{}) {
	stdErr := AsStandardError(err)
	if stdErr == nil {
		return
	}

	entry := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
	}
	for k, v := range stdErr.Metadata {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}

	switch stdErr.Code {
	case ErrCodeSubmissionTransportFailed, ErrCodeSubmissionRejected:
		h.logger.Warn(msg, entry)
	default:
		h.logger.Error(msg, entry)
	}
}
