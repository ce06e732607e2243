package application

import (
	"fmt"

	"github.com/lexguard/lexguard/pkg/domain"
)

// AuditService keeps a hash-chained trail of engine activity: check
// runs, review requests and review transitions.
type AuditService struct {
	store domain.EventStore
	clock domain.Clock
	ids   domain.IDGenerator
}

// Compile-time check that AuditService implements AuditLogger
var _ domain.AuditLogger = (*AuditService)(nil)

func NewAuditService(store domain.EventStore, clock domain.Clock, ids domain.IDGenerator) *AuditService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	return &AuditService{store: store, clock: clock, ids: ids}
}

func (s *AuditService) Log(action string, actor string, metadata map[string]interface{}) error {
	// Get the latest event to continue the hash chain
	events, _ := s.store.LoadEvents()
	prevHash := ""
	if len(events) > 0 {
		prevHash = events[len(events)-1].Hash
	}

	event := domain.Event{
		ID:        s.ids.NewID(),
		Timestamp: s.clock.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
		PrevHash:  prevHash,
	}
	event.Hash = event.CalculateHash()

	return s.store.RecordEvent(event)
}

func (s *AuditService) GetTimeline() ([]domain.Event, error) {
	return s.store.LoadEvents()
}

// VerifyIntegrity walks the chain and reports any broken links or
// tampered events.
func (s *AuditService) VerifyIntegrity() ([]string, error) {
	events, err := s.store.LoadEvents()
	if err != nil {
		return nil, err
	}

	var violations []string
	lastHash := ""

	for i, e := range events {
		if e.PrevHash != lastHash {
			violations = append(violations, fmt.Sprintf("Event %d (%s): PrevHash mismatch. Audit trail broken.", i, e.ID))
		}

		expected := e.CalculateHash()
		if e.Hash != expected {
			violations = append(violations, fmt.Sprintf("Event %d (%s): Content hash mismatch. Possible tampering.", i, e.ID))
		}

		lastHash = e.Hash
	}

	return violations, nil
}
