package acquirewebhook

import (
	"context"

	"assessment-runner/internal/common/errors"
	"assessment-runner/internal/common/extract"
	httpclient "assessment-runner/internal/common/http"
	"assessment-runner/internal/common/logger"
	"assessment-runner/internal/models"
)

// TaskType is the registry id of this step.
const TaskType = "acquire-webhook"

// Service exchanges the candidate identity for a webhook URL and access token.
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

// Execute posts the identity and scans the raw response for the grant.
// Transport failures and non-2xx answers are returned as errors; an empty
// body yields an empty grant and no error.
func (s *Service) Execute(ctx context.Context, input *models.IdentityRequest) (*models.WebhookGrant, error) {
	if s.schemaErr != nil {
		return nil, errors.AsStandardError(s.schemaErr)
	}
	if err := validateInput(s.schema, input); err != nil {
		s.logger.Error("identity request rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	resp, err := s.client.PostJSON(ctx, s.config.URL, input, nil)
	if err != nil {
		s.logger.Error("error calling generate webhook api", map[string]interface{}{
			"url":   s.config.URL,
			"error": err.Error(),
		})
		return nil, errors.NewAcquisitionTransportError(s.config.URL, err)
	}

	body := string(resp.Body)
	grant := ParseGrant(body)

	s.logger.Info("raw response from generate webhook", map[string]interface{}{
		"statusCode": resp.StatusCode,
		"body":       redactToken(body),
	})

	if !resp.IsSuccess() {
		return nil, errors.NewAcquisitionRejectedError(resp.StatusCode, redactToken(body))
	}

	if !resp.HasBody() {
		s.logger.Warn("generate webhook returned an empty body", nil)
		return &models.WebhookGrant{}, nil
	}

	return grant, nil
}

// ParseGrant extracts the webhook URL and access token from a raw body.
func ParseGrant(body string) *models.WebhookGrant {
	grant := &models.WebhookGrant{}
	if v, ok := extract.Value(body, keyWebhook); ok {
		grant.WebhookURL = &v
	}
	if v, ok := extract.Value(body, keyAccessToken); ok {
		grant.AccessToken = &v
	}
	return grant
}

// redactToken masks the extracted accessToken value and nothing else.
func redactToken(body string) string {
	start, end, ok := extract.Span(body, keyAccessToken)
	if !ok || start == end {
		return body
	}
	return body[:start] + logger.Redacted + body[end:]
}
