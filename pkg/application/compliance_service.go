package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lexguard/lexguard/pkg/domain"
	"github.com/lexguard/lexguard/pkg/domain/compliance"
)

// ComplianceService runs the full check pipeline for a document:
// applicability, validation, exemptions, status aggregation and
// recommendations, with results cached per document.
type ComplianceService struct {
	registry  *compliance.Registry
	evaluator *compliance.Evaluator
	store     compliance.CheckStore
	audit     domain.AuditLogger
	clock     domain.Clock
	ids       domain.IDGenerator
	logger    *slog.Logger

	mu       sync.Mutex
	docLocks map[string]*sync.Mutex
	cache    map[string][]compliance.ComplianceCheck
}

// NewComplianceService wires the engine together. store and audit may
// be nil when persistence and audit trails are not needed; clock, ids
// and logger fall back to production defaults when nil.
func NewComplianceService(
	registry *compliance.Registry,
	evaluator *compliance.Evaluator,
	store compliance.CheckStore,
	audit domain.AuditLogger,
	clock domain.Clock,
	ids domain.IDGenerator,
	logger *slog.Logger,
) *ComplianceService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ComplianceService{
		registry:  registry,
		evaluator: evaluator,
		store:     store,
		audit:     audit,
		clock:     clock,
		ids:       ids,
		logger:    logger,
		docLocks:  make(map[string]*sync.Mutex),
		cache:     make(map[string][]compliance.ComplianceCheck),
	}
}

// CheckCompliance evaluates every applicable rule against the document
// and returns the checks sorted most severe first (ties keep registry
// order). The document's cached results are replaced wholesale.
// Concurrent calls for the same document are serialized by a
// per-document lock so re-checks cannot interleave.
func (s *ComplianceService) CheckCompliance(ctx context.Context, documentID, content string, metadata map[string]interface{}) ([]compliance.ComplianceCheck, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document ID cannot be empty")
	}

	lock := s.lockFor(documentID)
	lock.Lock()
	defer lock.Unlock()

	checks := make([]compliance.ComplianceCheck, 0, s.registry.Len())
	for _, rule := range s.registry.List() {
		applicability := compliance.CheckApplicability(content, metadata, rule)
		if !applicability.Applies {
			continue
		}
		checks = append(checks, s.checkRule(ctx, documentID, content, metadata, rule))
	}

	compliance.SortChecksBySeverity(checks)

	s.mu.Lock()
	s.cache[documentID] = checks
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveChecks(documentID, checks); err != nil {
			s.logger.Warn("persist compliance checks failed", "document", documentID, "error", err)
		}
	}
	if s.audit != nil {
		if err := s.audit.Log("compliance.check", "system", map[string]interface{}{
			"document_id": documentID,
			"checks":      len(checks),
		}); err != nil {
			s.logger.Warn("audit log failed", "error", err)
		}
	}

	return checks, nil
}

// checkRule evaluates a single applicable rule. Evaluation failures
// (e.g. the evaluation budget expiring) degrade to a check with
// unknown status and mandatory review rather than failing the batch.
func (s *ComplianceService) checkRule(ctx context.Context, documentID, content string, metadata map[string]interface{}, rule *compliance.ComplianceRule) compliance.ComplianceCheck {
	now := s.clock.Now()
	check := compliance.ComplianceCheck{
		ID:              s.ids.NewID(),
		DocumentID:      documentID,
		RuleID:          rule.ID,
		RuleName:        rule.Name,
		Severity:        rule.Severity,
		Findings:        []compliance.Finding{},
		Recommendations: []compliance.Recommendation{},
		Exemptions:      []compliance.AppliedExemption{},
		CheckedAt:       now,
		NextCheckDue:    compliance.NextCheckDue(rule.Severity, now),
		Automated:       true,
	}

	findings, err := s.evaluator.Validate(ctx, content, metadata, rule)
	if err != nil {
		s.logger.Error("rule evaluation failed", "rule", rule.ID, "document", documentID, "error", err)
		check.Status = compliance.StatusUnknown
		check.ReviewRequired = true
		return check
	}

	if len(findings) == 0 {
		check.Status = compliance.StatusCompliant
		return check
	}

	check.Findings = findings
	check.Recommendations = compliance.BuildRecommendations(findings, rule, s.ids)
	check.Exemptions = compliance.ResolveExemptions(rule, findings)
	check.Status = compliance.AggregateStatus(findings, check.Exemptions)
	check.ReviewRequired = compliance.ReviewRequired(findings)
	return check
}

// GetChecks returns the most recent checks for a document: from cache
// if this process ran the check, otherwise from the store.
func (s *ComplianceService) GetChecks(documentID string) []compliance.ComplianceCheck {
	s.mu.Lock()
	cached, ok := s.cache[documentID]
	s.mu.Unlock()
	if ok {
		return cached
	}
	if s.store == nil {
		return nil
	}
	stored, err := s.store.LoadChecks(documentID)
	if err != nil {
		s.logger.Warn("load compliance checks failed", "document", documentID, "error", err)
		return nil
	}
	return stored
}

// MarkUnderReview is the manual override path: it moves one cached
// check into the under_review status pending human judgement.
func (s *ComplianceService) MarkUnderReview(documentID, ruleID string) error {
	lock := s.lockFor(documentID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	checks, ok := s.cache[documentID]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("no checks recorded for document %s", documentID)
	}

	for i := range checks {
		if checks[i].RuleID != ruleID {
			continue
		}
		checks[i].Status = compliance.StatusUnderReview
		checks[i].ReviewRequired = true
		if s.store != nil {
			if err := s.store.SaveChecks(documentID, checks); err != nil {
				return fmt.Errorf("persist override: %w", err)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s", compliance.ErrRuleNotFound, ruleID)
}

func (s *ComplianceService) lockFor(documentID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.docLocks[documentID]
	if !ok {
		lock = &sync.Mutex{}
		s.docLocks[documentID] = lock
	}
	return lock
}
