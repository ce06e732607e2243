package domain

import "github.com/google/uuid"

// IDGenerator produces identifiers for checks, findings, reviews and events.
// Injected so tests can assert against stable IDs.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the production IDGenerator backed by random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
