package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/poiesic/docrag/ai/mock"
	"github.com/poiesic/docrag/chunker"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
	"github.com/poiesic/docrag/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, provider *mock.MockProvider, opts ...Option) (*Pipeline, storage.ChunkRepository) {
	t.Helper()

	docRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		chunkRepo.Close()
		docRepo.Close()
		backend.Close()
	})

	pipeline, err := NewPipeline(docRepo, chunkRepo, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, chunkRepo
}

func mockProviderWithDims(dims int) *mock.MockProvider {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = make([]float32, dims)
			vectors[i][0] = 1
		}
		return vectors, nil
	}
	return mock.NewMockProviderWithServices(embedder, mock.NewMockCompleter()).(*mock.MockProvider)
}

func TestIngest_StoresDocumentAndChunks(t *testing.T) {
	provider := mockProviderWithDims(4)
	pipeline, chunkRepo := newTestPipeline(t, provider,
		WithChunkerConfig(chunker.Config{MaxChars: 20, Overlap: 5}),
		WithEmbeddingDimensions(4))

	ctx := context.Background()
	result, err := pipeline.Ingest(ctx, "vitals.txt", "BP 120/80. HR 72. Temp 98.6F.")
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	assert.Equal(t, 2, result.ChunkCount)
	require.NotNil(t, result.Document)
	assert.NotZero(t, result.Document.Id)
	assert.True(t, strings.HasPrefix(result.Document.ReportID, "REP-"), "report ID %q", result.Document.ReportID)
	assert.Equal(t, 2, result.Document.ChunkCount)

	chunks, err := chunkRepo.GetChunks(ctx, result.Document.Id)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "BP 120/80. HR 72. Te", chunks[0].Text)
	assert.Equal(t, "2. Temp 98.6F.", chunks[1].Text)
	assert.Len(t, chunks[0].Vector, 4)
}

func TestIngest_RejectsEmptyText(t *testing.T) {
	pipeline, _ := newTestPipeline(t, mockProviderWithDims(4))

	_, err := pipeline.Ingest(context.Background(), "empty.txt", "   \n\t  ")
	assert.ErrorIs(t, err, core.ErrEmptyDocument)
}

func TestIngest_DegradedEmbeddingStillStores(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("provider down")
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockCompleter()).(*mock.MockProvider)

	pipeline, chunkRepo := newTestPipeline(t, provider, WithEmbeddingDimensions(8))

	ctx := context.Background()
	result, err := pipeline.Ingest(ctx, "note.txt", "Patient is recovering well after surgery.")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.Reason)

	chunks, err := chunkRepo.GetChunks(ctx, result.Document.Id)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// Zero vectors of the configured dimension
	require.Len(t, chunks[0].Vector, 8)
	for _, v := range chunks[0].Vector {
		assert.Zero(t, v)
	}
}

func TestIngest_SurfacesChunkerError(t *testing.T) {
	pipeline, _ := newTestPipeline(t, mockProviderWithDims(4))

	// Bypass the option-time guard to prove Ingest itself surfaces the error.
	pipeline.chunkerConfig = chunker.Config{MaxChars: 10, Overlap: 10}

	_, err := pipeline.Ingest(context.Background(), "note.txt", "Patient stable.")
	assert.ErrorIs(t, err, chunker.ErrInvalidStep)
}

type failingChunkRepository struct {
	storage.ChunkRepository
}

func (f *failingChunkRepository) AddChunks(ctx context.Context, documentID core.ID, chunks []*core.Chunk) error {
	return errors.New("chunk write failed")
}

func TestIngest_RollsBackDocumentOnChunkWriteFailure(t *testing.T) {
	docRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	pipeline, err := NewPipeline(docRepo, &failingChunkRepository{chunkRepo}, mockProviderWithDims(4))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	_, err = pipeline.Ingest(ctx, "note.txt", "Patient stable.")
	require.Error(t, err)

	docs, err := docRepo.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs, "document record must not outlive its failed chunk batch")
}

func TestIngestAll_Concurrent(t *testing.T) {
	pipeline, _ := newTestPipeline(t, mockProviderWithDims(4), WithPoolSize(4))

	sources := make([]Source, 10)
	for i := range sources {
		sources[i] = Source{
			Filename: fmt.Sprintf("doc%d.txt", i),
			Text:     fmt.Sprintf("Document number %d with some clinical text.", i),
		}
	}

	results, errs := pipeline.IngestAll(context.Background(), sources)

	require.Len(t, results, 10)
	seen := make(map[core.ID]bool)
	for i, result := range results {
		require.NoError(t, errs[i])
		require.NotNil(t, result)
		assert.False(t, seen[result.Document.Id], "duplicate document ID %d", result.Document.Id)
		seen[result.Document.Id] = true
	}
}

func TestIngestAll_MixedFailures(t *testing.T) {
	pipeline, _ := newTestPipeline(t, mockProviderWithDims(4))

	results, errs := pipeline.IngestAll(context.Background(), []Source{
		{Filename: "good.txt", Text: "Valid content here."},
		{Filename: "bad.txt", Text: "   "},
	})

	require.NoError(t, errs[0])
	assert.NotNil(t, results[0])
	assert.ErrorIs(t, errs[1], core.ErrEmptyDocument)
	assert.Nil(t, results[1])
}

func TestNewPipeline_RequiresDependencies(t *testing.T) {
	docRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	provider := mockProviderWithDims(4)

	_, err = NewPipeline(nil, chunkRepo, provider)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)

	_, err = NewPipeline(docRepo, nil, provider)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewPipeline(docRepo, chunkRepo, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestNewPipeline_RejectsInvalidChunkerConfig(t *testing.T) {
	docRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	_, err = NewPipeline(docRepo, chunkRepo, mockProviderWithDims(4),
		WithChunkerConfig(chunker.Config{MaxChars: 100, Overlap: 100}))
	assert.ErrorIs(t, err, chunker.ErrInvalidStep)
}
