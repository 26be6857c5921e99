package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/chunker"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

// Pipeline orchestrates document ingestion: chunking, embedding, and the
// atomic write of the document record plus its chunk batch.
type Pipeline struct {
	documentRepository storage.DocumentRepository
	chunkRepository    storage.ChunkRepository
	embedder           *ai.FallbackEmbedder
	chunkerConfig      chunker.Config
	pool               *ants.Pool
	dimensions         int
	timeout            time.Duration
	logger             *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunkerConfig sets the chunking window parameters.
// Default is chunker.DefaultConfig().
func WithChunkerConfig(cfg chunker.Config) Option {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.chunkerConfig = cfg
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent batch ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithEmbeddingDimensions sets the zero-vector length used when embedding
// degrades. Must match the embedding model's output dimension.
func WithEmbeddingDimensions(dims int) Option {
	return func(p *Pipeline) error {
		if dims > 0 {
			p.dimensions = dims
		}
		return nil
	}
}

// WithRequestTimeout bounds each embedding call.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		if timeout > 0 {
			p.timeout = timeout
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documentRepository storage.DocumentRepository,
	chunkRepository storage.ChunkRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if documentRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		documentRepository: documentRepository,
		chunkRepository:    chunkRepository,
		chunkerConfig:      chunker.DefaultConfig(),
		pool:               pool,
		dimensions:         1536,
		timeout:            30 * time.Second,
		logger:             slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Embedder wraps the provider after options so it sees final config
	p.embedder = ai.NewFallbackEmbedder(provider.Embedder(), p.dimensions, p.timeout)

	return p, nil
}

// IngestResult reports the outcome of ingesting one document.
type IngestResult struct {
	// Document is the stored record, with ID and report ID populated.
	Document *core.Document

	// ChunkCount is the number of chunks written.
	ChunkCount int

	// Degraded is true when chunk embeddings fell back to zero vectors.
	// The document is still fully ingested; retrieval just has no
	// similarity signal for it until re-embedding.
	Degraded bool

	// Reason describes the degradation cause when Degraded is true.
	Reason string
}

// Ingest chunks, embeds, and stores a single document.
// Empty or whitespace-only text is rejected, everything else always results
// in a stored document: embedding failures degrade to zero vectors rather
// than failing ingestion.
func (p *Pipeline) Ingest(ctx context.Context, filename, text string) (*IngestResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("ingest %s: %w", filename, core.ErrEmptyDocument)
	}

	chunkTexts, err := chunker.Split(text, p.chunkerConfig)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", filename, err)
	}

	doc := &core.Document{
		ReportID:   core.NewReportID(time.Now()),
		Filename:   filename,
		Contents:   text,
		ChunkCount: len(chunkTexts),
	}

	doc, err = p.documentRepository.AddDocument(ctx, doc)
	if err != nil {
		return nil, err
	}

	// Embedding order must match chunk order; retrieval cites by index.
	outcome := p.embedder.EmbedTexts(ctx, chunkTexts)

	chunks := make([]*core.Chunk, len(chunkTexts))
	for i, chunkText := range chunkTexts {
		chunks[i] = &core.Chunk{
			DocumentId: doc.Id,
			Index:      i,
			Text:       chunkText,
			Vector:     outcome.Vectors[i],
		}
	}

	if err := p.chunkRepository.AddChunks(ctx, doc.Id, chunks); err != nil {
		// Roll back the document record so no chunkless document persists.
		if delErr := p.documentRepository.DeleteDocument(ctx, doc.Id); delErr != nil {
			p.logger.Error("failed to remove document after chunk write failure",
				"documentID", doc.Id, "err", delErr)
		}
		return nil, err
	}

	if outcome.Degraded {
		p.logger.Warn("document ingested with degraded embeddings",
			"documentID", doc.Id, "reportID", doc.ReportID, "reason", outcome.Reason)
	}

	return &IngestResult{
		Document:   doc,
		ChunkCount: len(chunks),
		Degraded:   outcome.Degraded,
		Reason:     outcome.Reason,
	}, nil
}

// Source is one document queued for batch ingestion.
type Source struct {
	Filename string
	Text     string
}

// IngestAll ingests multiple documents concurrently on the worker pool.
// Results and errors are index-aligned with the input; one failed document
// does not stop the others.
func (p *Pipeline) IngestAll(ctx context.Context, sources []Source) ([]*IngestResult, []error) {
	results := make([]*IngestResult, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, source := range sources {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = p.Ingest(ctx, source.Filename, source.Text)
		})
		if submitErr != nil {
			errs[i] = submitErr
			wg.Done()
		}
	}
	wg.Wait()

	return results, errs
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
