package scanner

import "strings"

// FindingCategoryLifecycleScript labels findings derived from lifecycle
// script analyses.
const FindingCategoryLifecycleScript = "lifecycle_script"

// FindingCategoryHiddenInstallScript labels the hasInstallScript-without-
// visible-scripts heuristic.
const FindingCategoryHiddenInstallScript = "hidden_install_script"

// AggregateManifest runs the analyzer over every lifecycle script declared
// in the manifest and rolls the per-script results into one package-level
// verdict. Lifecycle keys are checked in their fixed order.
func (a *Analyzer) AggregateManifest(manifest *Manifest) PackageScanResult {
	result := PackageScanResult{
		Name:        manifest.Name,
		Version:     manifest.Version,
		OverallRisk: RiskSafe,
	}

	for _, key := range lifecycleKeys {
		body, ok := manifest.lifecycleScript(key)
		if !ok {
			continue
		}

		analysis := a.AnalyzeScript(key, body)
		result.Scripts = append(result.Scripts, analysis)
		result.TotalMatches += len(analysis.Matches)
		if analysis.Risk > result.OverallRisk {
			result.OverallRisk = analysis.Risk
		}

		result.Findings = append(result.Findings, Finding{
			Category: FindingCategoryLifecycleScript,
			Severity: analysis.Risk,
			Script:   key,
			Summary:  scriptSummary(key, analysis),
			Notes:    analysis.Notes,
			Matches:  analysis.Matches,
		})
	}

	if manifest.HasInstallScript && len(result.Scripts) == 0 {
		// Declared install hook with no visible lifecycle scripts usually
		// means the hook lives in a bundled sub-manifest or binding.gyp,
		// invisible to registry browsing.
		result.OverallRisk = RiskHigh
		result.Findings = append(result.Findings, Finding{
			Category: FindingCategoryHiddenInstallScript,
			Severity: RiskHigh,
			Summary:  "Package declares hasInstallScript but no lifecycle script is visible in the manifest",
		})
	}

	return result
}

func scriptSummary(key string, analysis ScriptAnalysis) string {
	if len(analysis.Matches) == 0 {
		return key + " script contains no suspicious tokens"
	}

	names := make([]string, len(analysis.Matches))
	for i, m := range analysis.Matches {
		names[i] = m.PatternName
	}
	return key + " script matches: " + strings.Join(names, ", ")
}

// IsClean reports whether a package result carries nothing worth reviewing.
// Tree scans drop clean results to reduce noise.
func (r PackageScanResult) IsClean() bool {
	return r.OverallRisk == RiskSafe && r.TotalMatches == 0 && len(r.Findings) == 0
}
