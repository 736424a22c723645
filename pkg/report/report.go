// Package report renders scan results as log events and derives the
// process-level verdict for exit-code selection.
package report

import (
	"strings"

	"github.com/hooksentry/hooksentry/pkg/logging"
	"github.com/hooksentry/hooksentry/pkg/scanner"
	"github.com/rs/zerolog/log"
)

// RenderResult emits one hit event per finding of a package result plus a
// package-level verdict event.
func RenderResult(result scanner.PackageScanResult) {
	for _, finding := range result.Findings {
		event := logging.Hit().
			Str("category", finding.Category).
			Str("severity", finding.Severity.String()).
			Str("package", result.Name).
			Str("version", result.Version).
			Str("summary", finding.Summary)

		if finding.Script != "" {
			event = event.Str("script", finding.Script)
		}
		if len(finding.Notes) > 0 {
			event = event.Str("notes", strings.Join(finding.Notes, "; "))
		}
		for _, match := range finding.Matches {
			log.Debug().
				Str("package", result.Name).
				Str("script", finding.Script).
				Str("pattern", match.PatternName).
				Str("matched", match.Text).
				Str("context", match.Context).
				Msg("Pattern match")
		}

		event.Msg("RISK")
	}

	log.Info().
		Str("package", result.Name).
		Str("version", result.Version).
		Str("overallRisk", result.OverallRisk.String()).
		Int("totalMatches", result.TotalMatches).
		Msg("Package scanned")
}

// RenderTree renders every reviewable package of a tree scan and a summary
// line with the visit and skip counters.
func RenderTree(tree scanner.TreeResult) {
	for _, result := range tree.Results {
		RenderResult(result)
	}

	log.Info().
		Int("visited", tree.Visited).
		Int("skipped", tree.Skipped).
		Int("flagged", len(tree.Results)).
		Msg("Tree scan complete")
}

// BlockingRiskCount counts results whose overall risk is CRITICAL or HIGH.
// The process exits non-zero when this is greater than zero.
func BlockingRiskCount(results []scanner.PackageScanResult) int {
	count := 0
	for _, result := range results {
		if result.OverallRisk >= scanner.RiskHigh {
			count++
		}
	}
	return count
}
