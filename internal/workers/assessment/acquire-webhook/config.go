package acquirewebhook

import (
	"fmt"
	"net/url"

	"assessment-runner/internal/common/config"
)

type Config struct {
	URL string `mapstructure:"url"`
}

func DefaultConfig() *Config {
	return &Config{
		URL: config.DefaultAcquisitionURL,
	}
}

// FromAppConfig picks the acquisition settings out of the loaded configuration.
func FromAppConfig(cfg *config.Config) *Config {
	c := DefaultConfig()
	if cfg != nil && cfg.Assessment.Acquisition.URL != "" {
		c.URL = cfg.Assessment.Acquisition.URL
	}
	return c
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("acquisition url must be absolute, got %q", c.URL)
	}
	return nil
}
