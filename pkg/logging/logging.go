// Package logging provides the custom "hit" log level used to report risky
// packages, on top of the global zerolog logger.
package logging

import (
	"bytes"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/rs/zerolog"
)

// HitLevelName is the level label risky-package events carry in log output.
const HitLevelName = "hit"

// hitMarker is the field Hit() stamps on events so the writer can rewrite
// their level. zerolog has no user-defined levels, hence the detour.
var (
	hitMarker   = []byte(`"hooksentry_hit":true`)
	hitLevelKey = []byte(`"` + zerolog.LevelFieldName + `":"` + HitLevelName + `"`)
)

// Hit returns a log event that is rendered at the hit level. Callers finish
// it like any zerolog event.
func Hit() *zerolog.Event {
	return log.Log().Bool("hooksentry_hit", true)
}

// HitLevelWriter rewrites marked events to carry the hit level before they
// reach the actual output writer.
type HitLevelWriter struct {
	out io.Writer
}

// SetOutput sets the downstream writer.
func (w *HitLevelWriter) SetOutput(out io.Writer) {
	w.out = out
}

func (w *HitLevelWriter) Write(p []byte) (n int, err error) {
	if !bytes.Contains(p, hitMarker) {
		return w.out.Write(p)
	}

	originalLen := len(p)
	modified := bytes.Replace(p, hitMarker, hitLevelKey, 1)
	if _, err := w.out.Write(modified); err != nil {
		return 0, err
	}
	return originalLen, nil
}
