// Package config loads process configuration from a YAML file with
// environment overrides so main stays lean.
package config

import (
	"time"

	"github.com/spf13/viper"

	dErrors "streamaudit/pkg/domain-errors"
)

// Config is everything the process needs to authenticate, page the backend,
// and write the report.
type Config struct {
	PodURL         string `mapstructure:"pod_url"`
	SessionAuthURL string `mapstructure:"session_auth_url"`
	BotUsername    string `mapstructure:"bot_username"`
	PrivateKeyPath string `mapstructure:"private_key_path"`

	OutputDir   string `mapstructure:"output_dir"`
	Timezone    string `mapstructure:"timezone"`
	PublicPodID int64  `mapstructure:"public_pod_id"`
	Concurrency int    `mapstructure:"concurrency"`

	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`

	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
}

// Load reads the config file at path (optional when every required value
// arrives via STREAMAUDIT_* environment variables), applies defaults, and
// validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	// Register every key, including the required ones, so environment-only
	// configuration survives Unmarshal.
	v.SetDefault("pod_url", "")
	v.SetDefault("session_auth_url", "")
	v.SetDefault("bot_username", "")
	v.SetDefault("private_key_path", "")
	v.SetDefault("public_pod_id", 0)
	v.SetDefault("output_dir", ".")
	v.SetDefault("timezone", "Australia/Sydney")
	v.SetDefault("concurrency", 1)
	v.SetDefault("log_file", "logs/output.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("max_retries", 3)

	v.SetEnvPrefix("STREAMAUDIT")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, dErrors.Wrap(err, dErrors.CodeValidation, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, dErrors.Wrap(err, dErrors.CodeValidation, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields without which the run cannot start.
func (c Config) Validate() error {
	switch {
	case c.PodURL == "":
		return dErrors.New(dErrors.CodeValidation, "pod_url is required")
	case c.SessionAuthURL == "":
		return dErrors.New(dErrors.CodeValidation, "session_auth_url is required")
	case c.BotUsername == "":
		return dErrors.New(dErrors.CodeValidation, "bot_username is required")
	case c.PrivateKeyPath == "":
		return dErrors.New(dErrors.CodeValidation, "private_key_path is required")
	case c.Concurrency < 1:
		return dErrors.New(dErrors.CodeValidation, "concurrency must be at least 1")
	}
	return nil
}
