package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseManifest(t *testing.T) {
	t.Run("full manifest", func(t *testing.T) {
		manifest, err := ParseManifest("package.json", []byte(`{
			"name": "@scope/pkg",
			"version": "1.2.3",
			"description": "unknown fields are fine",
			"scripts": {"postinstall": "node setup.js"},
			"hasInstallScript": true,
			"dependencies": {"left-pad": "^1.3.0"}
		}`))

		require.NoError(t, err)
		assert.Equal(t, "@scope/pkg", manifest.Name)
		assert.Equal(t, "1.2.3", manifest.Version)
		assert.Equal(t, "node setup.js", manifest.Scripts["postinstall"])
		assert.True(t, manifest.HasInstallScript)
	})

	t.Run("minimal manifest", func(t *testing.T) {
		manifest, err := ParseManifest("package.json", []byte(`{"name": "tiny"}`))

		require.NoError(t, err)
		assert.Equal(t, "tiny", manifest.Name)
		assert.Empty(t, manifest.Scripts)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseManifest("package.json", []byte(`{"name": "broken",`))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "package.json", parseErr.Path)
	})
}

func TestReadManifest(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadManifest(filepath.Join(t.TempDir(), "nope", ManifestFileName))

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("valid file", func(t *testing.T) {
		path := writeManifest(t, t.TempDir(), `{"name": "ok", "version": "1.0.0"}`)

		manifest, err := ReadManifest(path)

		require.NoError(t, err)
		assert.Equal(t, "ok", manifest.Name)
	})
}

func TestLifecycleKeys(t *testing.T) {
	keys := LifecycleKeys()
	assert.Equal(t, []string{"preinstall", "install", "postinstall", "preuninstall", "uninstall", "postuninstall"}, keys)

	// Mutating the returned slice must not affect the check order.
	keys[0] = "mutated"
	assert.Equal(t, "preinstall", LifecycleKeys()[0])
}
