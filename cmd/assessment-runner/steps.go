package main

import (
	"assessment-runner/internal/common/config"
	"assessment-runner/internal/common/errors"
	httpclient "assessment-runner/internal/common/http"
	"assessment-runner/internal/common/logger"
	acquirewebhook "assessment-runner/internal/workers/assessment/acquire-webhook"
	submitsolution "assessment-runner/internal/workers/assessment/submit-solution"
)

// buildSteps derives both step configs from cfg, validates them, and builds
// the services on the shared client.
func buildSteps(cfg *config.Config, log logger.Logger, client *httpclient.Client) (*acquirewebhook.Service, *submitsolution.Service, error) {
	acquireCfg := acquirewebhook.FromAppConfig(cfg)
	if err := acquireCfg.Validate(); err != nil {
		return nil, nil, errors.NewConfigInvalidError(err)
	}
	submitCfg := submitsolution.FromAppConfig(cfg)
	if err := submitCfg.Validate(); err != nil {
		return nil, nil, errors.NewConfigInvalidError(err)
	}

	acquirer := acquirewebhook.NewService(acquirewebhook.ServiceDependencies{
		Logger:     log,
		HTTPClient: client,
	}, acquireCfg)
	submitter := submitsolution.NewService(submitsolution.ServiceDependencies{
		Logger:     log,
		HTTPClient: client,
	}, submitCfg)
	return acquirer, submitter, nil
}
