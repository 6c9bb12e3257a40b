package app

import (
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fioriscope/fioriscope/pkg/constants"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

// EnvPrefix prefixes every environment variable read through viper,
// e.g. FIORISCOPE_BASE_URL.
const EnvPrefix = "FIORISCOPE"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Upstream catalog
	BaseURL        string
	Language       string
	HTTPTimeout    time.Duration
	RateLimit      float64
	Burst          int
	MaxAttempts    int
	RetryBaseDelay time.Duration

	// OutputDir is where fetch writes workbooks.
	OutputDir string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables
//  3. .env files
//  4. Config file (configFile, or ~/.fioriscope.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".fioriscope")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing default file is fine, an explicit one must exist
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("file", "cannot read "+configFile, err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL:        v.GetString("base_url"),
		Language:       v.GetString("language"),
		HTTPTimeout:    v.GetDuration("http_timeout"),
		RateLimit:      v.GetFloat64("rate_limit"),
		Burst:          v.GetInt("burst"),
		MaxAttempts:    v.GetInt("max_attempts"),
		RetryBaseDelay: v.GetDuration("retry_base_delay"),

		OutputDir: v.GetString("output_dir"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log.level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log.format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log.output")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", constants.DefaultBaseURL)
	v.SetDefault("language", constants.DefaultLanguage)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("burst", 1)
	v.SetDefault("max_attempts", constants.MaxRetries)
	v.SetDefault("retry_base_delay", constants.RetryBackoff)
	v.SetDefault("output_dir", ".")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.MaxAttempts < 1:
		return errors.NewConfigError("retry", "max_attempts must be at least 1", nil)
	case c.RetryBaseDelay < 0:
		return errors.NewConfigError("retry", "retry_base_delay must not be negative", nil)
	case c.HTTPTimeout < 0:
		return errors.NewConfigError("http", "http_timeout must not be negative", nil)
	case c.RateLimit < 0:
		return errors.NewConfigError("http", "rate_limit must not be negative", nil)
	}
	return nil
}

// UpdateFromFlags applies parsed command flags, which take precedence over
// config file and environment values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env and then .env.local. Variables already set win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
