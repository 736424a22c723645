package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper() {
	globalViper = nil
}

func TestInitializeViper_Defaults(t *testing.T) {
	resetViper()
	t.Cleanup(resetViper)

	// Point config search away from any developer machine config.
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, InitializeViper(""))

	assert.Equal(t, 1, GetInt("common.threads"))
	assert.Equal(t, "5Mb", GetString("scan.max_file_size"))
	assert.Equal(t, "", GetString("scan.custom_patterns"))
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	resetViper()
	t.Cleanup(resetViper)

	configPath := filepath.Join(t.TempDir(), "hooksentry.yaml")
	content := `
common:
  threads: 8
scan:
  max_file_size: 1Mb
  custom_patterns: 'nc\s+-e'
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Common.Threads)
	assert.Equal(t, "1Mb", cfg.Scan.MaxFileSize)
	assert.Equal(t, `nc\s+-e`, cfg.Scan.CustomPatterns)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	resetViper()
	t.Cleanup(resetViper)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestBindFlags_FlagOverridesConfig(t *testing.T) {
	resetViper()
	t.Cleanup(resetViper)

	configPath := filepath.Join(t.TempDir(), "hooksentry.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("common:\n  threads: 2\n"), 0o600))
	_, err := LoadConfig(configPath)
	require.NoError(t, err)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("threads", 1, "")
	require.NoError(t, flags.Parse([]string{"--threads=16"}))

	require.NoError(t, BindFlags(flags, map[string]string{"threads": "common.threads"}))

	assert.Equal(t, 16, GetInt("common.threads"))
}

func TestBindFlags_ConfigWinsOverUnsetFlag(t *testing.T) {
	resetViper()
	t.Cleanup(resetViper)

	configPath := filepath.Join(t.TempDir(), "hooksentry.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("common:\n  threads: 2\n"), 0o600))
	_, err := LoadConfig(configPath)
	require.NoError(t, err)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("threads", 1, "")

	require.NoError(t, BindFlags(flags, map[string]string{"threads": "common.threads"}))

	assert.Equal(t, 2, GetInt("common.threads"))
}

func TestBindFlags_UnknownFlagIgnored(t *testing.T) {
	resetViper()
	t.Cleanup(resetViper)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	assert.NoError(t, BindFlags(flags, map[string]string{"missing": "some.key"}))
}
