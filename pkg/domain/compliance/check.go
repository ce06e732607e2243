package compliance

import (
	"sort"
	"time"
)

// FindingType classifies what a finding represents.
type FindingType string

const (
	FindingViolation      FindingType = "violation"
	FindingRisk           FindingType = "risk"
	FindingGap            FindingType = "gap"
	FindingRecommendation FindingType = "recommendation"
)

// Finding is a single detected issue produced by evaluating a rule
// against a document. Immutable once created.
type Finding struct {
	ID          string            `json:"id"`
	Type        FindingType       `json:"type"`
	Description string            `json:"description"`
	Severity    Severity          `json:"severity"`
	Confidence  float64           `json:"confidence"`
	Evidence    []string          `json:"evidence,omitempty"`
	Impact      string            `json:"impact"`
	Remediation []RemediationStep `json:"remediation,omitempty"`
	Location    *DocumentLocation `json:"location,omitempty"`
}

// RemediationOwner identifies who carries out a remediation step.
type RemediationOwner string

const (
	OwnerUser         RemediationOwner = "user"
	OwnerProfessional RemediationOwner = "professional"
	OwnerSystem       RemediationOwner = "system"
)

// RemediationStep is one action toward resolving a finding.
type RemediationStep struct {
	Step        string           `json:"step"`
	Description string           `json:"description"`
	Owner       RemediationOwner `json:"owner"`
	Automated   bool             `json:"automated"`
	Deadline    string           `json:"deadline,omitempty"`
	Resources   []string         `json:"resources,omitempty"`
}

// DocumentLocation pinpoints where in a document a finding occurred.
type DocumentLocation struct {
	Section   string `json:"section,omitempty"`
	Page      int    `json:"page,omitempty"`
	Paragraph int    `json:"paragraph,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// RecommendationPriority orders recommendations by urgency.
type RecommendationPriority string

const (
	PriorityImmediate RecommendationPriority = "immediate"
	PriorityHigh      RecommendationPriority = "high"
	PriorityMedium    RecommendationPriority = "medium"
	PriorityLow       RecommendationPriority = "low"
)

// RecommendationCategory groups recommendations by origin.
type RecommendationCategory string

const (
	RecommendationRegulatory   RecommendationCategory = "regulatory"
	RecommendationLegal        RecommendationCategory = "legal"
	RecommendationSecurity     RecommendationCategory = "security"
	RecommendationBestPractice RecommendationCategory = "best_practice"
)

// CostEstimate is a coarse cost bucket for a recommendation.
type CostEstimate string

const (
	CostLow    CostEstimate = "low"
	CostMedium CostEstimate = "medium"
	CostHigh   CostEstimate = "high"
)

// Recommendation is an actionable next step derived from findings.
type Recommendation struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Priority      RecommendationPriority `json:"priority"`
	Category      RecommendationCategory `json:"category"`
	Actions       []string               `json:"actions,omitempty"`
	Timeline      string                 `json:"timeline"`
	Cost          CostEstimate           `json:"cost,omitempty"`
	RiskReduction float64                `json:"risk_reduction"`
}

// AppliedExemption records that an exemption attached to a check.
type AppliedExemption struct {
	RuleID     string   `json:"rule_id"`
	Reason     string   `json:"reason"`
	ApprovedBy string   `json:"approved_by"`
	ValidUntil string   `json:"valid_until,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
}

// ComplianceCheck is the per-rule, per-document evaluation result.
type ComplianceCheck struct {
	ID              string             `json:"id"`
	DocumentID      string             `json:"document_id"`
	RuleID          string             `json:"rule_id"`
	RuleName        string             `json:"rule_name"`
	Status          Status             `json:"status"`
	Severity        Severity           `json:"severity"`
	Findings        []Finding          `json:"findings"`
	Recommendations []Recommendation   `json:"recommendations"`
	Exemptions      []AppliedExemption `json:"exemptions"`
	CheckedAt       time.Time          `json:"checked_at"`
	NextCheckDue    time.Time          `json:"next_check_due,omitempty"`
	ReviewRequired  bool               `json:"review_required"`
	Automated       bool               `json:"automated"`
}

// SortChecksBySeverity orders checks most severe first. The sort is
// stable so ties preserve registry iteration order.
func SortChecksBySeverity(checks []ComplianceCheck) {
	sort.SliceStable(checks, func(i, j int) bool {
		return checks[i].Severity.Rank() > checks[j].Severity.Rank()
	})
}

// NextCheckDue returns when a rule should be re-checked, based on its
// severity: critical every 3 months, high every 6, otherwise yearly.
func NextCheckDue(severity Severity, now time.Time) time.Time {
	months := 12
	switch severity {
	case SeverityCritical:
		months = 3
	case SeverityHigh:
		months = 6
	}
	return now.AddDate(0, months, 0)
}

// ReviewRequired reports whether any finding is severe enough to need
// human review.
func ReviewRequired(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityCritical || f.Severity == SeverityHigh {
			return true
		}
	}
	return false
}
