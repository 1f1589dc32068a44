package submitsolution

import (
	httpclient "assessment-runner/internal/common/http"
	"assessment-runner/internal/common/logger"
	"assessment-runner/internal/models"
)

type Input struct {
	WebhookURL  string
	AccessToken string
	Payload     models.SubmissionPayload
}

type Output struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type ServiceDependencies struct {
	Logger     logger.Logger
	HTTPClient *httpclient.Client
}
