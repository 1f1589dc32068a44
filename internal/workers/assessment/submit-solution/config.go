package submitsolution

import (
	"fmt"

	"assessment-runner/internal/common/config"
)

const DefaultUserAgent = "assessment-runner/1.0.0"

type Config struct {
	UserAgent string `mapstructure:"user_agent"`
}

func DefaultConfig() *Config {
	return &Config{
		UserAgent: DefaultUserAgent,
	}
}

// FromAppConfig picks the submission settings out of the loaded configuration.
func FromAppConfig(cfg *config.Config) *Config {
	c := DefaultConfig()
	if cfg != nil && cfg.Assessment.Submission.UserAgent != "" {
		c.UserAgent = cfg.Assessment.Submission.UserAgent
	}
	return c
}

func (c *Config) Validate() error {
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required")
	}
	return nil
}
