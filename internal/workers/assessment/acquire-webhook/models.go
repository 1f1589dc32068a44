package acquirewebhook

import (
	httpclient "assessment-runner/internal/common/http"
	"assessment-runner/internal/common/logger"
)

const (
	keyWebhook     = "webhook"
	keyAccessToken = "accessToken"
)

type ServiceDependencies struct {
	Logger     logger.Logger
	HTTPClient *httpclient.Client
}
