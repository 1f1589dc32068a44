// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Assessment    AssessmentConfig    `mapstructure:"assessment"`
	Observability ObservabilityConfig `mapstructure:"observability"`

	// EnvFile is the .env file that was loaded, if any.
	EnvFile string `mapstructure:"-"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AssessmentConfig holds everything a single run needs.
type AssessmentConfig struct {
	Identity    IdentityConfig    `mapstructure:"identity"`
	Acquisition AcquisitionConfig `mapstructure:"acquisition"`
	Submission  SubmissionConfig  `mapstructure:"submission"`
	HTTPTimeout int               `mapstructure:"http_timeout"` // milliseconds, 0 keeps the transport default
}

// IdentityConfig is the candidate identity sent to the generate-webhook endpoint.
type IdentityConfig struct {
	Name  string `mapstructure:"name"`
	RegNo string `mapstructure:"reg_no"`
	Email string `mapstructure:"email"`
}

type AcquisitionConfig struct {
	URL string `mapstructure:"url"`
}

type SubmissionConfig struct {
	UserAgent  string `mapstructure:"user_agent"`
	FinalQuery string `mapstructure:"final_query"` // empty selects the built-in answer
}

type ObservabilityConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}
