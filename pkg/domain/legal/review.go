package legal

import (
	"fmt"
	"time"

	"github.com/lexguard/lexguard/pkg/domain/compliance"
)

// ReviewType is the kind of legal review being requested.
type ReviewType string

const (
	ReviewComplianceCheck   ReviewType = "compliance_check"
	ReviewContract          ReviewType = "contract_review"
	ReviewDisputePrevention ReviewType = "dispute_prevention"
	ReviewEstatePlanning    ReviewType = "estate_planning"
	ReviewGeneralCounsel    ReviewType = "general_counsel"
	ReviewRegulatoryFiling  ReviewType = "regulatory_filing"
	ReviewRiskAssessment    ReviewType = "risk_assessment"
	ReviewTaxImplications   ReviewType = "tax_implications"
)

// IsValid returns true if the review type is one of the known kinds.
func (t ReviewType) IsValid() bool {
	switch t {
	case ReviewComplianceCheck, ReviewContract, ReviewDisputePrevention,
		ReviewEstatePlanning, ReviewGeneralCounsel, ReviewRegulatoryFiling,
		ReviewRiskAssessment, ReviewTaxImplications:
		return true
	default:
		return false
	}
}

// ParseReviewType parses a string into a ReviewType.
func ParseReviewType(s string) (ReviewType, error) {
	t := ReviewType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid review type: %s", s)
	}
	return t, nil
}

// Urgency drives the review's due-date SLA.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyHigh      Urgency = "high"
	UrgencyNormal    Urgency = "normal"
	UrgencyLow       Urgency = "low"
)

// IsValid returns true if the urgency is one of the known levels.
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyImmediate, UrgencyHigh, UrgencyNormal, UrgencyLow:
		return true
	default:
		return false
	}
}

// ParseUrgency parses a string into an Urgency.
func ParseUrgency(s string) (Urgency, error) {
	u := Urgency(s)
	if !u.IsValid() {
		return "", fmt.Errorf("invalid urgency: %s", s)
	}
	return u, nil
}

// SLADays returns the number of days allowed before the review is due.
func (u Urgency) SLADays() int {
	switch u {
	case UrgencyImmediate:
		return 1
	case UrgencyHigh:
		return 3
	case UrgencyNormal:
		return 7
	default:
		return 14
	}
}

// DueDate computes the review deadline from its urgency.
func DueDate(urgency Urgency, now time.Time) time.Time {
	return now.AddDate(0, 0, urgency.SLADays())
}

// IssueCategory classifies a legal issue.
type IssueCategory string

const (
	IssueComplianceViolation  IssueCategory = "compliance_violation"
	IssueContractTerms        IssueCategory = "contract_terms"
	IssueEmploymentLaw        IssueCategory = "employment_law"
	IssueEstateLaw            IssueCategory = "estate_law"
	IssueIntellectualProperty IssueCategory = "intellectual_property"
	IssueLiability            IssueCategory = "liability"
	IssuePrivacyLaw           IssueCategory = "privacy_law"
	IssueRegulatoryChange     IssueCategory = "regulatory_change"
	IssueTaxImplication       IssueCategory = "tax_implication"
)

// LegalIssue is a single identified legal concern on a document.
type LegalIssue struct {
	ID           string              `json:"id"`
	Category     IssueCategory       `json:"category"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Severity     compliance.Severity `json:"severity"`
	Jurisdiction string              `json:"jurisdiction"`
	Implications []string            `json:"implications,omitempty"`
	Statute      string              `json:"statute,omitempty"`
	Precedent    []string            `json:"precedent,omitempty"`
	Timeframe    string              `json:"timeframe,omitempty"`
}

// Professional identifies the kind of practitioner a recommendation
// routes to.
type Professional string

const (
	ProfessionalAttorney         Professional = "attorney"
	ProfessionalNotary           Professional = "notary"
	ProfessionalTaxAdvisor       Professional = "tax_advisor"
	ProfessionalFinancialPlanner Professional = "financial_planner"
	ProfessionalOther            Professional = "other"
)

// LegalRecommendation is an actionable next step for a legal issue.
type LegalRecommendation struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Actions       []string     `json:"actions,omitempty"`
	Priority      int          `json:"priority"`
	Professional  Professional `json:"professional"`
	Timeline      string       `json:"timeline"`
	EstimatedCost string       `json:"estimated_cost,omitempty"`
}

// LegalReview is a human-in-the-loop review request. The engine creates
// it in the pending state; subsequent transitions are driven externally
// through the review state machine.
type LegalReview struct {
	ID               string                `json:"id"`
	DocumentID       string                `json:"document_id"`
	ReviewType       ReviewType            `json:"review_type"`
	Urgency          Urgency               `json:"urgency"`
	RequiredBy       string                `json:"required_by,omitempty"`
	AssignedTo       string                `json:"assigned_to,omitempty"`
	Issues           []LegalIssue          `json:"issues"`
	Recommendations  []LegalRecommendation `json:"recommendations"`
	Status           ReviewStatus          `json:"status"`
	CreatedAt        time.Time             `json:"created_at"`
	CompletedAt      *time.Time            `json:"completed_at,omitempty"`
	DueDate          time.Time             `json:"due_date"`
	FollowUpRequired bool                  `json:"follow_up_required"`
}

// FollowUpRequired reports whether any issue is critical.
func FollowUpRequired(issues []LegalIssue) bool {
	for _, issue := range issues {
		if issue.Severity == compliance.SeverityCritical {
			return true
		}
	}
	return false
}
