package scanner

// contextRadius is the number of characters kept on each side of a match
// when building its context snippet.
const contextRadius = 50

// Count thresholds for the base risk tier of a single script.
const (
	criticalMatchCount = 5
	highMatchCount     = 3
)

const (
	noteObfuscation = "Uses code obfuscation techniques"
)

// combinationRule forces a minimum risk level when all of its categories are
// present in one script. Raw match counting under-weights small but lethal
// combinations: one fetch() plus one process.env read is a two-match MEDIUM
// by count but functionally a credential-exfiltration primitive.
type combinationRule struct {
	Requires []Category
	Level    RiskLevel
	Note     string
}

func combinationRules() []combinationRule {
	return []combinationRule{
		{
			Requires: []Category{CategoryNetwork, CategoryCredential},
			Level:    RiskCritical,
			Note:     "Combines network access with environment variable reading",
		},
		{
			Requires: []Category{CategoryExec, CategoryObfuscation},
			Level:    RiskCritical,
			Note:     "Combines process execution with code obfuscation",
		},
	}
}

// Analyzer applies a pattern catalog to lifecycle script bodies.
type Analyzer struct {
	patterns []Pattern
}

// NewAnalyzer returns an Analyzer using the default pattern catalog plus any
// extra patterns, evaluated in catalog order.
func NewAnalyzer(extra ...Pattern) *Analyzer {
	return &Analyzer{patterns: append(DefaultPatterns(), extra...)}
}

// Patterns returns the catalog in evaluation order.
func (a *Analyzer) Patterns() []Pattern {
	return a.patterns
}

// AnalyzeScript runs the full pattern catalog against one lifecycle script
// and derives its risk tier. Each pattern contributes at most one match (the
// first occurrence); reported matches follow catalog order.
func (a *Analyzer) AnalyzeScript(scriptName string, scriptText string) ScriptAnalysis {
	analysis := ScriptAnalysis{
		Script: scriptName,
		Source: scriptText,
	}

	present := map[Category]bool{}
	for _, pattern := range a.patterns {
		loc := pattern.Pattern.FindStringIndex(scriptText)
		if loc == nil {
			continue
		}
		analysis.Matches = append(analysis.Matches, Match{
			PatternName: pattern.Name,
			Text:        scriptText[loc[0]:loc[1]],
			Context:     contextWindow(scriptText, loc[0], loc[1]),
		})
		present[pattern.Category] = true
	}

	analysis.Risk = baseRisk(len(analysis.Matches))

	// Combination overrides can only raise severity, never lower it.
	for _, rule := range combinationRules() {
		if !hasAll(present, rule.Requires) {
			continue
		}
		if rule.Level > analysis.Risk {
			analysis.Risk = rule.Level
		}
		analysis.Notes = append(analysis.Notes, rule.Note)
	}

	if present[CategoryObfuscation] {
		analysis.Notes = append(analysis.Notes, noteObfuscation)
	}

	analysis.Score = analysis.Risk.Score()
	return analysis
}

// baseRisk maps a total match count to a tier. LOW is the floor: a script
// with no matches is still LOW, since SAFE is reserved for packages without
// lifecycle scripts at all.
func baseRisk(matchCount int) RiskLevel {
	switch {
	case matchCount >= criticalMatchCount:
		return RiskCritical
	case matchCount >= highMatchCount:
		return RiskHigh
	case matchCount >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}

func hasAll(present map[Category]bool, required []Category) bool {
	for _, c := range required {
		if !present[c] {
			return false
		}
	}
	return true
}

func contextWindow(text string, start int, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}
