// internal/common/config/loader.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"assessment-runner/internal/common/errors"
)

const (
	DefaultAcquisitionURL = "https://bfhldevapigw.healthrx.co.in/hiring/generateWebhook/JAVA"
	defaultAppName        = "assessment-runner"
	defaultAppVersion     = "1.0.0"
)

// Load reads configs/config.yaml (and config.<APP_ENVIRONMENT>.yaml on top),
// then environment variables, e.g. ASSESSMENT_IDENTITY_REG_NO.
func Load() (*Config, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.NewConfigInvalidError(fmt.Errorf("error reading base config: %w", err))
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional overlay

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigInvalidError(fmt.Errorf("failed to read config file %s: %w", path, err))
	}

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", defaultAppName)
	v.SetDefault("app.version", defaultAppVersion)
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("assessment.identity.name", "")
	v.SetDefault("assessment.identity.reg_no", "")
	v.SetDefault("assessment.identity.email", "")
	v.SetDefault("assessment.acquisition.url", DefaultAcquisitionURL)
	v.SetDefault("assessment.submission.user_agent", "")
	v.SetDefault("assessment.submission.final_query", "")
	v.SetDefault("assessment.http_timeout", 0)

	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.service_name", "")
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigInvalidError(fmt.Errorf("failed to unmarshal config: %w", err))
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, errors.NewConfigInvalidError(err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found and returns its path, or "".
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values. An unset
// variable expands to "" so required-field validation still catches it.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig falls back to the short variable names used in .env files.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Assessment.Identity.Name == "" {
		if val := os.Getenv("CANDIDATE_NAME"); val != "" {
			cfg.Assessment.Identity.Name = val
		}
	}
	if cfg.Assessment.Identity.RegNo == "" {
		if val := os.Getenv("CANDIDATE_REG_NO"); val != "" {
			cfg.Assessment.Identity.RegNo = val
		}
	}
	if cfg.Assessment.Identity.Email == "" {
		if val := os.Getenv("CANDIDATE_EMAIL"); val != "" {
			cfg.Assessment.Identity.Email = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = defaultAppName
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultAppVersion
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Assessment.Acquisition.URL == "" {
		cfg.Assessment.Acquisition.URL = DefaultAcquisitionURL
	}
	if cfg.Assessment.Submission.UserAgent == "" {
		cfg.Assessment.Submission.UserAgent = fmt.Sprintf("%s/%s", cfg.App.Name, cfg.App.Version)
	}
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	id := cfg.Assessment.Identity
	if strings.TrimSpace(id.Name) == "" {
		return fmt.Errorf("assessment.identity.name is required")
	}
	if strings.TrimSpace(id.RegNo) == "" {
		return fmt.Errorf("assessment.identity.reg_no is required")
	}
	if strings.TrimSpace(id.Email) == "" {
		return fmt.Errorf("assessment.identity.email is required")
	}

	u, err := url.Parse(cfg.Assessment.Acquisition.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("assessment.acquisition.url must be an absolute http(s) URL, got %q", cfg.Assessment.Acquisition.URL)
	}

	if cfg.Assessment.HTTPTimeout < 0 {
		return fmt.Errorf("assessment.http_timeout must not be negative")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
