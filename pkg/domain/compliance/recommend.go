package compliance

import (
	"fmt"

	"github.com/lexguard/lexguard/pkg/domain"
)

// BuildRecommendations emits one recommendation per violation or gap
// finding. Risk and recommendation findings generate no entries here;
// they only ever surface through the findings themselves.
func BuildRecommendations(findings []Finding, rule *ComplianceRule, ids domain.IDGenerator) []Recommendation {
	var recs []Recommendation
	for _, f := range findings {
		if f.Type != FindingViolation && f.Type != FindingGap {
			continue
		}

		priority := PriorityMedium
		switch f.Severity {
		case SeverityCritical:
			priority = PriorityImmediate
		case SeverityHigh:
			priority = PriorityHigh
		}

		timeline := "30 days"
		if f.Severity == SeverityCritical {
			timeline = "Immediate"
		}

		actions := make([]string, 0, len(f.Remediation))
		for _, step := range f.Remediation {
			actions = append(actions, step.Description)
		}

		recs = append(recs, Recommendation{
			ID:            ids.NewID(),
			Title:         fmt.Sprintf("Address %s Compliance", rule.Regulation),
			Description:   fmt.Sprintf("Resolve compliance issue: %s", f.Description),
			Priority:      priority,
			Category:      RecommendationRegulatory,
			Actions:       actions,
			Timeline:      timeline,
			Cost:          CostMedium,
			RiskReduction: 0.8,
		})
	}
	return recs
}
