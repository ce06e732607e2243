package storage

import (
	"context"
	"sync"

	"github.com/lexguard/lexguard/pkg/domain"
)

// MemoryDocumentStore is an in-memory DocumentStore used by the CLI
// (which reads documents off disk itself) and by tests.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// Compile-time check that the store implements DocumentStore
var _ domain.DocumentStore = (*MemoryDocumentStore)(nil)

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string]string)}
}

// Put stores or replaces document content.
func (s *MemoryDocumentStore) Put(documentID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[documentID] = content
}

func (s *MemoryDocumentStore) GetDocumentContent(_ context.Context, documentID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.docs[documentID]
	return content, ok, nil
}
