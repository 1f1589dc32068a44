package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_Error(t *testing.T) {
	err := NewInvalidIdentityError("email is required")
	assert.Equal(t, "StandardError[INVALID_IDENTITY]: Identity request failed validation: email is required", err.Error())

	bare := &StandardError{Code: ErrCodeInternal, Message: "Unexpected error"}
	assert.Equal(t, "StandardError[INTERNAL_ERROR]: Unexpected error", bare.Error())
}

func TestTransportErrors_UnwrapCause(t *testing.T) {
	cause := stderrors.New("connection refused")

	acq := NewAcquisitionTransportError("https://example.test/generate", cause)
	assert.True(t, stderrors.Is(acq, cause))
	assert.Equal(t, "https://example.test/generate", acq.Metadata["url"])
	assert.False(t, acq.Retryable)

	sub := NewSubmissionTransportError("https://x/y", cause)
	assert.True(t, stderrors.Is(sub, cause))
	assert.Equal(t, ErrCodeSubmissionTransportFailed, sub.Code)
}

func TestAsStandardError(t *testing.T) {
	assert.Nil(t, AsStandardError(nil))

	std := NewGrantIncompleteError([]string{"webhook"})
	wrapped := fmt.Errorf("run: %w", std)
	assert.Same(t, std, AsStandardError(wrapped))

	plain := stderrors.New("boom")
	normalized := AsStandardError(plain)
	require.NotNil(t, normalized)
	assert.Equal(t, ErrCodeInternal, normalized.Code)
	assert.Equal(t, "boom", normalized.Details)
	assert.True(t, stderrors.Is(normalized, plain))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
	assert.Equal(t, ErrCodeSubmissionRejected, CodeOf(NewSubmissionRejectedError(401, "unauthorized")))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("x")))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeAcquisitionTransportFailed, "TRANSPORT"},
		{ErrCodeSubmissionTransportFailed, "TRANSPORT"},
		{ErrCodeAcquisitionRejected, "UPSTREAM"},
		{ErrCodeSubmissionRejected, "UPSTREAM"},
		{ErrCodeInvalidIdentity, "VALIDATION"},
		{ErrCodeInvalidSubmission, "VALIDATION"},
		{ErrCodeGrantIncomplete, "GRANT"},
		{ErrCodeConfigInvalid, "CONFIG"},
		{ErrCodeInternal, "OTHER"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCategory(tt.code))
		})
	}
}

func TestIsTransportError(t *testing.T) {
	assert.True(t, IsTransportError(NewAcquisitionTransportError("u", stderrors.New("dns"))))
	assert.False(t, IsTransportError(NewGrantIncompleteError([]string{"accessToken"})))
	assert.False(t, IsTransportError(nil))
}

type recordingLogger struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (r *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	r.level, r.msg, r.fields = "warn", msg, fields
}

func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {
	r.level, r.msg, r.fields = "error", msg, fields
}

func TestErrorHandler_Handle(t *testing.T) {
	t.Run("nil error is ignored", func(t *testing.T) {
		rec := &recordingLogger{}
		NewErrorHandler(rec).Handle("run failed", nil, nil)
		assert.Empty(t, rec.level)
	})

	t.Run("acquisition failure logs as error with metadata", func(t *testing.T) {
		rec := &recordingLogger{}
		err := NewAcquisitionTransportError("https://gen", stderrors.New("timeout"))
		NewErrorHandler(rec).Handle("run failed", err, map[string]interface{}{"runId": "r1"})

		assert.Equal(t, "error", rec.level)
		assert.Equal(t, "ACQUISITION_TRANSPORT_FAILED", rec.fields["errorCode"])
		assert.Equal(t, "TRANSPORT", rec.fields["errorCategory"])
		assert.Equal(t, "https://gen", rec.fields["url"])
		assert.Equal(t, "r1", rec.fields["runId"])
	})

	t.Run("submission failure logs as warning", func(t *testing.T) {
		rec := &recordingLogger{}
		NewErrorHandler(rec).Handle("run finished", NewSubmissionRejectedError(500, "oops"), nil)
		assert.Equal(t, "warn", rec.level)
		assert.Equal(t, 500, rec.fields["statusCode"])
	})
}
