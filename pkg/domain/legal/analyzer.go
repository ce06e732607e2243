package legal

import (
	"context"
	"errors"
	"fmt"

	"github.com/lexguard/lexguard/pkg/domain"
	"github.com/lexguard/lexguard/pkg/domain/compliance"
)

// ErrNotImplemented marks an analyzer whose dedicated checks have not
// been built yet. Callers decide how to degrade; the analyzer never
// pretends an empty result is a clean bill of health.
var ErrNotImplemented = errors.New("analyzer not implemented")

// Analyzer identifies legal issues in document content for one review
// type.
type Analyzer interface {
	ReviewType() ReviewType
	Analyze(ctx context.Context, content string) ([]LegalIssue, error)
}

// stubAnalyzer stands in for review types whose dedicated issue checks
// do not exist yet.
type stubAnalyzer struct {
	reviewType ReviewType
}

func (a stubAnalyzer) ReviewType() ReviewType {
	return a.reviewType
}

func (a stubAnalyzer) Analyze(ctx context.Context, content string) ([]LegalIssue, error) {
	return nil, fmt.Errorf("%s: %w", a.reviewType, ErrNotImplemented)
}

// NewContractAnalyzer returns the contract-review analyzer.
// TODO(contract): implement clause extraction once the contract rule
// set lands; until then this reports ErrNotImplemented.
func NewContractAnalyzer() Analyzer {
	return stubAnalyzer{reviewType: ReviewContract}
}

// NewEstatePlanningAnalyzer returns the estate-planning analyzer.
func NewEstatePlanningAnalyzer() Analyzer {
	return stubAnalyzer{reviewType: ReviewEstatePlanning}
}

// NewTaxAnalyzer returns the tax-implications analyzer.
func NewTaxAnalyzer() Analyzer {
	return stubAnalyzer{reviewType: ReviewTaxImplications}
}

// IssuesFromChecks converts stored compliance findings into legal
// issues. The conversion is lossy: confidence, evidence and remediation
// stay behind on the finding; only the impact survives as an
// implication.
func IssuesFromChecks(checks []compliance.ComplianceCheck, ids domain.IDGenerator) []LegalIssue {
	var issues []LegalIssue
	for _, check := range checks {
		for _, finding := range check.Findings {
			issues = append(issues, LegalIssue{
				ID:           ids.NewID(),
				Category:     IssueComplianceViolation,
				Title:        fmt.Sprintf("%s Compliance Issue", check.RuleName),
				Description:  finding.Description,
				Severity:     finding.Severity,
				Jurisdiction: "US",
				Implications: []string{finding.Impact},
			})
		}
	}
	return issues
}

// RecommendationsForIssues emits one recommendation per issue with the
// fixed action plan: critical issues are priority 1 and immediate, the
// rest priority 2 on a two-week timeline. Every issue routes to an
// attorney.
func RecommendationsForIssues(issues []LegalIssue, ids domain.IDGenerator) []LegalRecommendation {
	recs := make([]LegalRecommendation, 0, len(issues))
	for _, issue := range issues {
		priority := 2
		timeline := "2 weeks"
		if issue.Severity == compliance.SeverityCritical {
			priority = 1
			timeline = "Immediate"
		}
		recs = append(recs, LegalRecommendation{
			ID:          ids.NewID(),
			Title:       fmt.Sprintf("Address %s", issue.Category),
			Description: fmt.Sprintf("Resolve legal issue: %s", issue.Title),
			Actions: []string{
				"Consult with attorney",
				"Review legal requirements",
				"Update documentation",
			},
			Priority:     priority,
			Professional: ProfessionalAttorney,
			Timeline:     timeline,
		})
	}
	return recs
}
