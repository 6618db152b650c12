package root

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concilia/extrato-match/internal/config"
)

func baseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Parsers.CNAB.Profile = "itau240"
	return cfg
}

func TestResolveProfile_BuiltinFromConfig(t *testing.T) {
	SharedFlags.Profile = ""
	defer func() { SharedFlags.Profile = "" }()

	profile, err := resolveProfile(baseConfig())
	require.NoError(t, err)
	assert.Equal(t, "itau240", profile.Name)
}

func TestResolveProfile_FlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banco-x.yaml")
	content := "name: banco-x\nbank_label: Banco X\ndetail:\n  prefix: \"999\"\n  segment_marker: S\n  description_length: 20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	SharedFlags.Profile = path
	defer func() { SharedFlags.Profile = "" }()

	profile, err := resolveProfile(baseConfig())
	require.NoError(t, err)
	assert.Equal(t, "banco-x", profile.Name)
	assert.Equal(t, "999", profile.Detail.Prefix)
}

func TestResolveProfile_UnknownBuiltin(t *testing.T) {
	SharedFlags.Profile = "nope"
	defer func() { SharedFlags.Profile = "" }()

	_, err := resolveProfile(baseConfig())
	assert.Error(t, err)
}
