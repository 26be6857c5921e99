package storage

import (
	"context"

	"github.com/poiesic/docrag/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing document records.
type DocumentRepository interface {
	Repository
	// AddDocument adds a document record to storage.
	// For a document with ID=0, generates a new ID from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the document with generated ID and timestamp populated.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentByReportID retrieves a document by its report identifier.
	// Returns ErrNotFound if no document carries the report ID.
	GetDocumentByReportID(ctx context.Context, reportID string) (*core.Document, error)

	// ListDocuments retrieves all stored documents ordered by ID.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// DeleteDocument removes a document record and its report ID index.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error
}

// ChunkRepository provides operations for managing document chunks.
// Chunks are written once per document and never updated in place.
type ChunkRepository interface {
	Repository
	// AddChunks stores the full chunk set for a document in one atomic batch.
	// Either every chunk is persisted or none are.
	// Returns ErrDuplicateKey if chunks were already written for the document.
	AddChunks(ctx context.Context, documentID core.ID, chunks []*core.Chunk) error

	// GetChunks retrieves all chunks for a document, ordered by chunk index.
	// Returns ErrNotFound if no chunks exist for the document.
	GetChunks(ctx context.Context, documentID core.ID) ([]*core.Chunk, error)

	// DeleteChunks removes all chunks for a document.
	// Deleting chunks for an unknown document is a no-op.
	DeleteChunks(ctx context.Context, documentID core.ID) error
}
