package scanner

import "regexp"

// RiskLevel represents the severity tier assigned to a script or package.
// Levels are totally ordered: Safe < Low < Medium < High < Critical.
type RiskLevel int

const (
	// RiskSafe means no lifecycle scripts are present at all.
	RiskSafe RiskLevel = iota
	// RiskLow is the floor for a lifecycle script with no pattern matches.
	RiskLow
	// RiskMedium indicates at least one suspicious token was found.
	RiskMedium
	// RiskHigh indicates several suspicious tokens were found.
	RiskHigh
	// RiskCritical indicates many tokens or a dangerous capability combination.
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskSafe:
		return "SAFE"
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Score maps a risk level to its fixed numeric score.
func (r RiskLevel) Score() int {
	switch r {
	case RiskCritical:
		return 100
	case RiskHigh:
		return 75
	case RiskMedium:
		return 50
	case RiskLow:
		return 25
	default:
		return 0
	}
}

// Category classifies what kind of attack technique a pattern detects.
type Category string

const (
	CategoryNetwork     Category = "network"
	CategoryFilesystem  Category = "filesystem"
	CategoryExec        Category = "exec"
	CategoryCredential  Category = "credential"
	CategoryObfuscation Category = "obfuscation"
	CategoryWallet      Category = "wallet"
	CategoryMalwareFile Category = "malware-file"
	CategoryCustom      Category = "custom"
)

// Pattern represents a dangerous pattern to detect in lifecycle scripts
type Pattern struct {
	Name        string
	Category    Category
	Pattern     *regexp.Regexp
	Description string
}

// Match is one pattern occurrence found in a script. Only the first
// occurrence per pattern is recorded.
type Match struct {
	PatternName string
	Text        string
	Context     string
}

// ScriptAnalysis is the result of running the full pattern catalog against
// one lifecycle script.
type ScriptAnalysis struct {
	Script  string
	Source  string
	Matches []Match
	Risk    RiskLevel
	Notes   []string
	Score   int
}

// Finding summarizes one analyzed lifecycle script for presentation.
type Finding struct {
	Category string
	Severity RiskLevel
	Script   string
	Summary  string
	Notes    []string
	Matches  []Match
}

// PackageScanResult is the package-level verdict over all lifecycle scripts
// declared in one metadata file. Scripts preserves the fixed lifecycle-key
// check order.
type PackageScanResult struct {
	Name         string
	Version      string
	Scripts      []ScriptAnalysis
	OverallRisk  RiskLevel
	TotalMatches int
	Findings     []Finding
}

// TreeResult is the outcome of walking a dependency directory. Results only
// contains packages worth reviewing; clean packages are filtered out.
type TreeResult struct {
	Results []PackageScanResult
	Visited int
	Skipped int
}
