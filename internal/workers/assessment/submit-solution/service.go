package submitsolution

import (
	"context"

	"assessment-runner/internal/common/errors"
	httpclient "assessment-runner/internal/common/http"
	"assessment-runner/internal/common/logger"
)

// TaskType is the registry id of this step.
const TaskType = "submit-solution"

// Service delivers the final query to the acquired webhook.
type Service struct {
	config    *Config
	client    *httpclient.Client
	logger    logger.Logger
	schema    map[string]interface{}
	schemaErr error
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	client := deps.HTTPClient
	if client == nil {
		client = httpclient.NewClient(0)
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	schema, err := GetInputSchema()
	return &Service{
		config:    config,
		client:    client,
		logger:    log.With(map[string]interface{}{"step": TaskType}),
		schema:    schema,
		schemaErr: err,
	}
}

// Execute posts {"finalQuery": ...} with the token as the Authorization
// header, unchanged. Failures are logged here and returned with their code so
// the caller can record the outcome.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if s.schemaErr != nil {
		return nil, errors.AsStandardError(s.schemaErr)
	}
	if err := validateInput(s.schema, input); err != nil {
		s.logger.Error("submission request rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	headers := map[string]string{
		"Authorization": input.AccessToken,
		"User-Agent":    s.config.UserAgent,
	}

	s.logger.Info("submitting solution", map[string]interface{}{
		"webhookUrl": input.WebhookURL,
	})

	resp, err := s.client.PostJSON(ctx, input.WebhookURL, input.Payload, headers)
	if err != nil {
		s.logger.Error("error submitting solution", map[string]interface{}{
			"webhookUrl": input.WebhookURL,
			"error":      err.Error(),
		})
		return nil, errors.NewSubmissionTransportError(input.WebhookURL, err)
	}

	output := &Output{
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
	}

	s.logger.Info("submission response code", map[string]interface{}{
		"statusCode": output.StatusCode,
	})
	s.logger.Info("submission response body", map[string]interface{}{
		"body": output.Body,
	})

	if !resp.IsSuccess() {
		s.logger.Error("error submitting solution", map[string]interface{}{
			"webhookUrl": input.WebhookURL,
			"statusCode": output.StatusCode,
		})
		return output, errors.NewSubmissionRejectedError(output.StatusCode, output.Body)
	}

	return output, nil
}
