package scanner

import (
	"os"

	"github.com/perimeterx/marshmallow"
	"github.com/rs/zerolog/log"
)

// lifecycleKeys is the fixed order in which lifecycle scripts are checked.
var lifecycleKeys = []string{
	"preinstall",
	"install",
	"postinstall",
	"preuninstall",
	"uninstall",
	"postuninstall",
}

// LifecycleKeys returns the lifecycle script names in check order.
func LifecycleKeys() []string {
	keys := make([]string, len(lifecycleKeys))
	copy(keys, lifecycleKeys)
	return keys
}

// Manifest is the subset of a package.json this tool cares about. npm
// manifests carry arbitrary extra fields, so parsing must tolerate anything
// outside these keys.
type Manifest struct {
	Name             string                 `json:"name"`
	Version          string                 `json:"version"`
	Scripts          map[string]interface{} `json:"scripts"`
	HasInstallScript bool                   `json:"hasInstallScript"`
}

// ParseManifest decodes raw package.json bytes. Unknown fields are ignored;
// malformed JSON yields a ParseError.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	manifest := &Manifest{}
	if _, err := marshmallow.Unmarshal(data, manifest); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return manifest, nil
}

// ReadManifest loads and parses a package metadata file. A missing path
// yields a NotFoundError, unparseable content a ParseError.
func ReadManifest(path string) (*Manifest, error) {
	// #nosec G304 - Reading a user-designated package metadata file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	log.Trace().Str("path", path).Int("bytes", len(data)).Msg("Read package metadata")
	return ParseManifest(path, data)
}

// lifecycleScript returns the script body for a lifecycle key, or false when
// the key is absent, empty, or holds a non-string value. npm rejects
// non-string script values, so such keys are skipped rather than failing the
// whole package.
func (m *Manifest) lifecycleScript(key string) (string, bool) {
	raw, ok := m.Scripts[key]
	if !ok {
		return "", false
	}
	body, ok := raw.(string)
	if !ok {
		log.Debug().Str("script", key).Msg("Skipping non-string lifecycle script value")
		return "", false
	}
	if body == "" {
		return "", false
	}
	return body, true
}
