package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lexguard/lexguard/pkg/domain"
	"github.com/lexguard/lexguard/pkg/domain/compliance"
	"github.com/lexguard/lexguard/pkg/domain/legal"
)

var errFake = errors.New("fake failure")

// fixedClock always returns the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// seqIDs hands out deterministic IDs: id-1, id-2, ...
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

// memCheckStore is an in-memory compliance.CheckStore.
type memCheckStore struct {
	mu      sync.Mutex
	checks  map[string][]compliance.ComplianceCheck
	saveErr error
	saves   int
}

func newMemCheckStore() *memCheckStore {
	return &memCheckStore{checks: make(map[string][]compliance.ComplianceCheck)}
}

func (s *memCheckStore) SaveChecks(documentID string, checks []compliance.ComplianceCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.checks[documentID] = checks
	return nil
}

func (s *memCheckStore) LoadChecks(documentID string) ([]compliance.ComplianceCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks[documentID], nil
}

func (s *memCheckStore) LoadAllChecks() (map[string][]compliance.ComplianceCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]compliance.ComplianceCheck, len(s.checks))
	for k, v := range s.checks {
		out[k] = v
	}
	return out, nil
}

// memReviewStore is an in-memory legal.ReviewStore.
type memReviewStore struct {
	mu      sync.Mutex
	reviews map[string]*legal.LegalReview
	saveErr error
}

func newMemReviewStore() *memReviewStore {
	return &memReviewStore{reviews: make(map[string]*legal.LegalReview)}
}

func (s *memReviewStore) SaveReview(review *legal.LegalReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := *review
	s.reviews[review.ID] = &copied
	return nil
}

func (s *memReviewStore) LoadReview(id string) (*legal.LegalReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review not found: %s", id)
	}
	copied := *review
	return &copied, nil
}

func (s *memReviewStore) LoadReviews() ([]legal.LegalReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]legal.LegalReview, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, *r)
	}
	return out, nil
}

// memEventStore is an in-memory domain.EventStore.
type memEventStore struct {
	mu     sync.Mutex
	events []domain.Event
}

func (s *memEventStore) RecordEvent(event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *memEventStore) LoadEvents() ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// memDocStore is an in-memory domain.DocumentStore.
type memDocStore struct {
	docs   map[string]string
	getErr error
}

func newMemDocStore() *memDocStore {
	return &memDocStore{docs: make(map[string]string)}
}

func (s *memDocStore) GetDocumentContent(_ context.Context, documentID string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	content, ok := s.docs[documentID]
	return content, ok, nil
}

// fakeAnalyzer returns canned issues or an error.
type fakeAnalyzer struct {
	reviewType legal.ReviewType
	issues     []legal.LegalIssue
	err        error
	calls      int
}

func (a *fakeAnalyzer) ReviewType() legal.ReviewType {
	return a.reviewType
}

func (a *fakeAnalyzer) Analyze(_ context.Context, _ string) ([]legal.LegalIssue, error) {
	a.calls++
	return a.issues, a.err
}
