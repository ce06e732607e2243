package domain

import "context"

// DocumentStore retrieves document content by ID. The engine never owns
// document persistence; callers inject whatever backend they use.
type DocumentStore interface {
	// GetDocumentContent returns the document text. The boolean is false
	// when the document does not exist; absence is not an error.
	GetDocumentContent(ctx context.Context, documentID string) (string, bool, error)
}
