package orchestrator

import (
	"strings"

	"assessment-runner/internal/common/config"
	"assessment-runner/internal/models"
)

// Config is everything a run needs that is not owned by a step.
type Config struct {
	Identity   models.IdentityRequest
	FinalQuery string
}

// ConfigFrom builds the run config from the loaded application config.
// An empty final query selects DefaultFinalQuery.
func ConfigFrom(cfg *config.Config) Config {
	if cfg == nil {
		return Config{FinalQuery: DefaultFinalQuery}
	}
	id := cfg.Assessment.Identity
	query := cfg.Assessment.Submission.FinalQuery
	if strings.TrimSpace(query) == "" {
		query = DefaultFinalQuery
	}
	return Config{
		Identity: models.IdentityRequest{
			Name:  id.Name,
			RegNo: id.RegNo,
			Email: id.Email,
		},
		FinalQuery: query,
	}
}
