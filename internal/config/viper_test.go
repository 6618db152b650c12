package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvKeys = []string{
	"EXTRATO_LOG_LEVEL",
	"EXTRATO_LOG_FORMAT",
	"EXTRATO_CSV_DELIMITER",
	"EXTRATO_CSV_INCLUDE_HEADERS",
	"EXTRATO_PARSERS_CNAB_PROFILE",
	"EXTRATO_PARSERS_CNAB_PROFILE_PATH",
	"EXTRATO_PARSERS_PDF_LINE_TOLERANCE",
	"EXTRATO_PARSERS_PDF_TRAILING_BALANCE_COLUMN",
	"EXTRATO_MATCHER_AUTO_CONFIRM_THRESHOLD",
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range testEnvKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	// Keep a stray config.yaml in the working directory from leaking in.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.True(t, config.CSV.IncludeHeaders)
	assert.Equal(t, "itau240", config.Parsers.CNAB.Profile)
	assert.Equal(t, "", config.Parsers.CNAB.ProfilePath)
	assert.Equal(t, 2.0, config.Parsers.PDF.LineTolerance)
	assert.True(t, config.Parsers.PDF.TrailingBalanceColumn)
	assert.Equal(t, 80, config.Matcher.AutoConfirmThreshold)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	t.Setenv("EXTRATO_LOG_LEVEL", "debug")
	t.Setenv("EXTRATO_LOG_FORMAT", "json")
	t.Setenv("EXTRATO_CSV_DELIMITER", ";")
	t.Setenv("EXTRATO_PARSERS_CNAB_PROFILE", "custom-bank")
	t.Setenv("EXTRATO_PARSERS_PDF_TRAILING_BALANCE_COLUMN", "false")
	t.Setenv("EXTRATO_MATCHER_AUTO_CONFIRM_THRESHOLD", "100")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "custom-bank", config.Parsers.CNAB.Profile)
	assert.False(t, config.Parsers.PDF.TrailingBalanceColumn)
	assert.Equal(t, 100, config.Matcher.AutoConfirmThreshold)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	dir, err := os.Getwd()
	require.NoError(t, err)
	content := "log:\n  level: warn\nparsers:\n  pdf:\n    line_tolerance: 3.5\nmatcher:\n  auto_confirm_threshold: 90\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, 3.5, config.Parsers.PDF.LineTolerance)
	assert.Equal(t, 90, config.Matcher.AutoConfirmThreshold)
	// Untouched sections keep their defaults.
	assert.Equal(t, "itau240", config.Parsers.CNAB.Profile)
}

func TestInitializeConfig_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid log level", "EXTRATO_LOG_LEVEL", "loud"},
		{"invalid log format", "EXTRATO_LOG_FORMAT", "xml"},
		{"multi-char delimiter", "EXTRATO_CSV_DELIMITER", ";;"},
		{"threshold too low", "EXTRATO_MATCHER_AUTO_CONFIRM_THRESHOLD", "10"},
		{"threshold above max score", "EXTRATO_MATCHER_AUTO_CONFIRM_THRESHOLD", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnvVars(t)
			t.Setenv(tt.key, tt.value)

			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	config.Log.Level = "debug"
	config.Log.Format = "json"
	logger := ConfigureLoggingFromConfig(config)
	assert.Equal(t, "debug", logger.GetLevel().String())
}
