package retrieval

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

// DefaultTopK is the number of chunks returned when the caller does not ask
// for a specific count.
const DefaultTopK = 4

// Result holds the outcome of a retrieval pass over one document.
type Result struct {
	// Matches are the highest-scoring chunks in descending score order.
	Matches []*core.RetrievalMatch

	// Degraded is true when the query embedding fell back to a zero vector.
	// Scores are then 0 and ordering reduces to document order.
	Degraded bool

	// Reason describes the degradation cause when Degraded is true.
	Reason string
}

// Retriever finds the document chunks most relevant to a query.
type Retriever struct {
	chunkRepository storage.ChunkRepository
	embedder        *ai.FallbackEmbedder
	logger          *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
// The embedder wraps the provider's embedding service with the degrade-to-zero
// policy, so retrieval never fails on provider outages.
func NewRetriever(
	chunkRepository storage.ChunkRepository,
	embedder *ai.FallbackEmbedder,
	opts ...Option,
) (*Retriever, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Retriever{
		chunkRepository: chunkRepository,
		embedder:        embedder,
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns the topK chunks of a document most similar to the query.
// Returns storage.ErrNotFound when no chunks exist for the document.
func (r *Retriever) Retrieve(ctx context.Context, documentID core.ID, query string, topK int) (*Result, error) {
	return r.RetrieveWithMonitor(ctx, documentID, query, topK, nil)
}

// RetrieveWithMonitor retrieves relevant chunks with monitoring.
// The monitor receives callbacks at each stage of the retrieval process.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, documentID core.ID, query string, topK int, monitor Monitor) (*Result, error) {
	if topK < 0 {
		return nil, ErrInvalidTopK
	}

	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// Asking for zero results costs nothing, not even an embedding call.
	if topK == 0 {
		result := &Result{Matches: []*core.RetrievalMatch{}}
		monitor.Finish(result.Matches)
		return result, nil
	}

	chunks, err := r.chunkRepository.GetChunks(ctx, documentID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Error("error loading chunks", "documentID", documentID, "err", err)
		}
		return nil, err
	}
	monitor.AfterChunkLoad(len(chunks))

	embedding, degraded := r.embedder.EmbedText(ctx, query)
	monitor.AfterQueryEmbedding(degraded)

	result := &Result{
		Matches:  Rank(chunks, embedding, topK),
		Degraded: degraded,
	}
	if degraded {
		result.Reason = "query embedding unavailable, ranking reduced to document order"
		r.logger.Warn("retrieval degraded", "documentID", documentID, "reason", result.Reason)
	}

	monitor.Finish(result.Matches)
	return result, nil
}
