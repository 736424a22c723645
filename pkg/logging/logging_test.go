package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestHitLevelWriter_RewritesMarkedEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	hitWriter := &HitLevelWriter{}
	hitWriter.SetOutput(buf)

	logger := zerolog.New(hitWriter)
	logger.Log().Bool("hooksentry_hit", true).Str("package", "evil-pkg").Msg("RISK")

	line := buf.String()
	require.True(t, gjson.Valid(line))
	assert.Equal(t, HitLevelName, gjson.Get(line, "level").String())
	assert.Equal(t, "evil-pkg", gjson.Get(line, "package").String())
	assert.False(t, gjson.Get(line, "hooksentry_hit").Exists())
}

func TestHitLevelWriter_PassesThroughRegularEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	hitWriter := &HitLevelWriter{}
	hitWriter.SetOutput(buf)

	logger := zerolog.New(hitWriter)
	logger.Info().Msg("plain")

	line := buf.String()
	assert.Equal(t, "info", gjson.Get(line, "level").String())
}

func TestHit_ReturnsEvent(t *testing.T) {
	// Hit events must be emittable without a configured hit writer.
	assert.NotPanics(t, func() {
		Hit().Str("package", "x").Msg("RISK")
	})
}
