package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexguard/lexguard/pkg/domain"
	"github.com/lexguard/lexguard/pkg/domain/legal"
)

// LegalService creates and advances legal review requests, seeding
// reviews from automated compliance findings or per-review-type
// analyzers.
type LegalService struct {
	docs       domain.DocumentStore
	reviews    legal.ReviewStore
	compliance *ComplianceService
	analyzers  map[legal.ReviewType]legal.Analyzer
	audit      domain.AuditLogger
	clock      domain.Clock
	ids        domain.IDGenerator
	logger     *slog.Logger
}

// NewLegalService wires the review workflow. The contract, estate and
// tax analyzers are registered by default; compliance_check reviews
// read the compliance service's stored checks instead of an analyzer.
func NewLegalService(
	docs domain.DocumentStore,
	reviews legal.ReviewStore,
	complianceSvc *ComplianceService,
	audit domain.AuditLogger,
	clock domain.Clock,
	ids domain.IDGenerator,
	logger *slog.Logger,
) *LegalService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &LegalService{
		docs:       docs,
		reviews:    reviews,
		compliance: complianceSvc,
		analyzers:  make(map[legal.ReviewType]legal.Analyzer),
		audit:      audit,
		clock:      clock,
		ids:        ids,
		logger:     logger,
	}
	for _, a := range []legal.Analyzer{
		legal.NewContractAnalyzer(),
		legal.NewEstatePlanningAnalyzer(),
		legal.NewTaxAnalyzer(),
	} {
		s.analyzers[a.ReviewType()] = a
	}
	return s
}

// RegisterAnalyzer adds or replaces the analyzer for a review type.
func (s *LegalService) RegisterAnalyzer(a legal.Analyzer) {
	s.analyzers[a.ReviewType()] = a
}

// RequestLegalReview creates a pending review for the document. Issues
// come from the compliance cache or the review type's analyzer; a
// document whose content cannot be retrieved yields a review with zero
// issues, not an error.
func (s *LegalService) RequestLegalReview(ctx context.Context, documentID string, reviewType legal.ReviewType, urgency legal.Urgency, requiredBy string) (*legal.LegalReview, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document ID cannot be empty")
	}
	if !reviewType.IsValid() {
		return nil, fmt.Errorf("invalid review type: %s", reviewType)
	}
	if urgency == "" {
		urgency = legal.UrgencyNormal
	}
	if !urgency.IsValid() {
		return nil, fmt.Errorf("invalid urgency: %s", urgency)
	}

	issues := s.identifyIssues(ctx, documentID, reviewType)
	now := s.clock.Now()

	review := &legal.LegalReview{
		ID:               s.ids.NewID(),
		DocumentID:       documentID,
		ReviewType:       reviewType,
		Urgency:          urgency,
		RequiredBy:       requiredBy,
		Issues:           issues,
		Recommendations:  legal.RecommendationsForIssues(issues, s.ids),
		Status:           legal.ReviewPending,
		CreatedAt:        now,
		DueDate:          legal.DueDate(urgency, now),
		FollowUpRequired: legal.FollowUpRequired(issues),
	}
	if review.Issues == nil {
		review.Issues = []legal.LegalIssue{}
	}

	if s.reviews != nil {
		if err := s.reviews.SaveReview(review); err != nil {
			return nil, fmt.Errorf("store legal review: %w", err)
		}
	}
	if s.audit != nil {
		if err := s.audit.Log("legal.review.requested", "system", map[string]interface{}{
			"review_id":   review.ID,
			"document_id": documentID,
			"review_type": string(reviewType),
			"urgency":     string(urgency),
			"issues":      len(issues),
		}); err != nil {
			s.logger.Warn("audit log failed", "error", err)
		}
	}

	return review, nil
}

// identifyIssues gathers legal issues for the review. All failure modes
// degrade to an empty issue list: absence of content, an unimplemented
// analyzer, or an analyzer error never fail the review request, but
// each is logged so the degradation is visible.
func (s *LegalService) identifyIssues(ctx context.Context, documentID string, reviewType legal.ReviewType) []legal.LegalIssue {
	if reviewType == legal.ReviewComplianceCheck {
		if s.compliance == nil {
			return nil
		}
		return legal.IssuesFromChecks(s.compliance.GetChecks(documentID), s.ids)
	}

	analyzer, ok := s.analyzers[reviewType]
	if !ok {
		s.logger.Debug("no analyzer for review type", "review_type", reviewType)
		return nil
	}

	content, found, err := s.docs.GetDocumentContent(ctx, documentID)
	if err != nil {
		s.logger.Warn("document content unavailable", "document", documentID, "error", err)
		return nil
	}
	if !found {
		return nil
	}

	issues, err := analyzer.Analyze(ctx, content)
	if err != nil {
		if errors.Is(err, legal.ErrNotImplemented) {
			s.logger.Warn("analyzer not implemented, review proceeds without automated issues",
				"review_type", reviewType)
		} else {
			s.logger.Warn("analyzer failed", "review_type", reviewType, "error", err)
		}
		return nil
	}
	return issues
}

// TransitionReview advances a stored review through its state machine
// and persists the result. Completing a review stamps CompletedAt.
func (s *LegalService) TransitionReview(reviewID, event string) (*legal.LegalReview, error) {
	if s.reviews == nil {
		return nil, fmt.Errorf("no review store configured")
	}
	review, err := s.reviews.LoadReview(reviewID)
	if err != nil {
		return nil, fmt.Errorf("load review: %w", err)
	}

	sm, err := legal.NewReviewStateMachine(review.Status, review.ID)
	if err != nil {
		return nil, err
	}
	if err := sm.Transition(event); err != nil {
		return nil, err
	}

	review.Status = sm.CurrentStatus()
	if review.Status == legal.ReviewCompleted {
		completed := s.clock.Now()
		review.CompletedAt = &completed
	}

	if err := s.reviews.SaveReview(review); err != nil {
		return nil, fmt.Errorf("store legal review: %w", err)
	}
	if s.audit != nil {
		if err := s.audit.Log("legal.review.transition", "human", map[string]interface{}{
			"review_id": review.ID,
			"event":     event,
			"status":    string(review.Status),
		}); err != nil {
			s.logger.Warn("audit log failed", "error", err)
		}
	}
	return review, nil
}
