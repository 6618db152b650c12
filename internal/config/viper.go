// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Parsers struct {
		CNAB struct {
			Profile     string `mapstructure:"profile" yaml:"profile"`
			ProfilePath string `mapstructure:"profile_path" yaml:"profile_path"`
		} `mapstructure:"cnab" yaml:"cnab"`
		PDF struct {
			LineTolerance         float64 `mapstructure:"line_tolerance" yaml:"line_tolerance"`
			TrailingBalanceColumn bool    `mapstructure:"trailing_balance_column" yaml:"trailing_balance_column"`
		} `mapstructure:"pdf" yaml:"pdf"`
	} `mapstructure:"parsers" yaml:"parsers"`

	Matcher struct {
		// AutoConfirmThreshold is consumption policy for the match report:
		// candidates scoring above it are grouped as auto-confirmed, the
		// rest as needing human review. It never changes what the matcher
		// itself returns.
		AutoConfirmThreshold int `mapstructure:"auto_confirm_threshold" yaml:"auto_confirm_threshold"`
	} `mapstructure:"matcher" yaml:"matcher"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then a config.yaml found in $HOME/.extrato-match, .extrato-match
// or the working directory, then EXTRATO_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.extrato-match")
	v.AddConfigPath(".extrato-match")
	v.AddConfigPath(".")

	v.SetEnvPrefix("EXTRATO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("parsers.cnab.profile", "itau240")
	v.SetDefault("parsers.cnab.profile_path", "")
	v.SetDefault("parsers.pdf.line_tolerance", 2.0)
	v.SetDefault("parsers.pdf.trailing_balance_column", true)

	v.SetDefault("matcher.auto_confirm_threshold", 80)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Parsers.CNAB.Profile == "" && config.Parsers.CNAB.ProfilePath == "" {
		return fmt.Errorf("parsers.cnab.profile or parsers.cnab.profile_path must be set")
	}

	if config.Parsers.PDF.LineTolerance <= 0 {
		return fmt.Errorf("parsers.pdf.line_tolerance must be positive, got: %f", config.Parsers.PDF.LineTolerance)
	}

	if config.Matcher.AutoConfirmThreshold < 30 || config.Matcher.AutoConfirmThreshold > 140 {
		return fmt.Errorf("matcher.auto_confirm_threshold must be between 30 and 140, got: %d", config.Matcher.AutoConfirmThreshold)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
