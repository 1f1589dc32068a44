package submitsolution

import (
	"net/url"

	"assessment-runner/internal/common/errors"
	"assessment-runner/internal/common/validation"
	"assessment-runner/pkg/registry"
)

// GetInputSchema returns the registered JSON schema for the submission body.
func GetInputSchema() (map[string]interface{}, error) {
	return registry.InputSchemaFor(TaskType)
}

func validateInput(schema map[string]interface{}, input *Input) error {
	if input == nil {
		return errors.NewInvalidSubmissionError("submission input is nil")
	}
	if input.WebhookURL == "" {
		return errors.NewInvalidSubmissionError("webhook url is empty")
	}
	if u, err := url.Parse(input.WebhookURL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewInvalidSubmissionError("webhook url is not absolute")
	}
	if input.AccessToken == "" {
		return errors.NewInvalidSubmissionError("access token is empty")
	}

	result, err := validation.ValidateDocument(schema, input.Payload)
	if err != nil {
		return errors.AsStandardError(err)
	}
	if !result.Valid {
		return errors.NewInvalidSubmissionError(result.Summary())
	}
	return nil
}
