package compliance

import (
	"fmt"
	"strings"
)

// Applicability is the result of scoring a rule against a document.
// Confidence is a coarse additive heuristic, not a probability: it can
// exceed 1.0 and is only used as a gate plus stored for reranking.
type Applicability struct {
	Applies    bool
	Confidence float64
	Reasons    []string
}

// A single keyword hit (0.3) alone is not enough to apply a rule; a
// pattern hit alone, or keyword plus category, is.
const applicabilityThreshold = 0.3

// CheckApplicability scores whether a rule is relevant to a document.
// Keywords contribute a flat 0.3 once, patterns a flat 0.4 once, and a
// metadata category match 0.3. A rule with no keywords or patterns can
// only qualify via its category.
func CheckApplicability(content string, metadata map[string]interface{}, rule *ComplianceRule) Applicability {
	var (
		confidence float64
		reasons    []string
	)

	lower := strings.ToLower(content)
	var matched []string
	for _, kw := range rule.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	if len(matched) > 0 {
		confidence += 0.3
		reasons = append(reasons, fmt.Sprintf("contains keywords: %s", strings.Join(matched, ", ")))
	}

	for _, re := range rule.CompiledPatterns() {
		if re.MatchString(content) {
			confidence += 0.4
			reasons = append(reasons, "matches compliance patterns")
			break
		}
	}

	if categoryOf(metadata) == rule.Category {
		confidence += 0.3
		reasons = append(reasons, "document category matches rule category")
	}

	return Applicability{
		Applies:    confidence > applicabilityThreshold,
		Confidence: confidence,
		Reasons:    reasons,
	}
}

func categoryOf(metadata map[string]interface{}) Category {
	raw, ok := metadata["category"]
	if !ok {
		return ""
	}
	switch v := raw.(type) {
	case Category:
		return v
	case string:
		return Category(v)
	default:
		return ""
	}
}
