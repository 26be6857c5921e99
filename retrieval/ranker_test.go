package retrieval

import (
	"testing"

	"github.com/poiesic/docrag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float32
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 0},
			b:        []float32{-1, 0},
			expected: -1.0,
		},
		{
			name:     "zero query vector",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "zero chunk vector",
			a:        []float32{1, 2, 3},
			b:        []float32{0, 0, 0},
			expected: 0.0,
		},
		{
			name:     "both zero",
			a:        []float32{0, 0},
			b:        []float32{0, 0},
			expected: 0.0,
		},
		{
			name:     "empty vectors",
			a:        []float32{},
			b:        []float32{},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestCosineSimilarity_ScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.7, 0.1}
	scaled := []float32{3, 7, 1}

	assert.InDelta(t, 1.0, CosineSimilarity(a, scaled), 1e-6)
}

func chunkWithVector(index int, vector []float32) *core.Chunk {
	return &core.Chunk{
		DocumentId: 1,
		Index:      index,
		Text:       "chunk",
		Vector:     vector,
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	chunks := []*core.Chunk{
		chunkWithVector(0, []float32{0, 1}),
		chunkWithVector(1, []float32{1, 0}),
		chunkWithVector(2, []float32{1, 1}),
	}

	matches := Rank(chunks, []float32{1, 0}, 3)
	require.Len(t, matches, 3)

	assert.Equal(t, 1, matches[0].Chunk.Index)
	assert.Equal(t, 2, matches[1].Chunk.Index)
	assert.Equal(t, 0, matches[2].Chunk.Index)
}

func TestRank_TiesKeepDocumentOrder(t *testing.T) {
	// All chunks score identically, so order must follow chunk index.
	chunks := []*core.Chunk{
		chunkWithVector(0, []float32{2, 0}),
		chunkWithVector(1, []float32{5, 0}),
		chunkWithVector(2, []float32{1, 0}),
	}

	matches := Rank(chunks, []float32{1, 0}, 3)
	require.Len(t, matches, 3)

	for i, match := range matches {
		assert.Equal(t, i, match.Chunk.Index)
		assert.InDelta(t, 1.0, match.Score, 1e-6)
	}
}

func TestRank_TruncatesToTopK(t *testing.T) {
	chunks := []*core.Chunk{
		chunkWithVector(0, []float32{1, 0}),
		chunkWithVector(1, []float32{1, 0}),
		chunkWithVector(2, []float32{1, 0}),
		chunkWithVector(3, []float32{1, 0}),
	}

	matches := Rank(chunks, []float32{1, 0}, 2)
	assert.Len(t, matches, 2)
}

func TestRank_ZeroQueryScoresZero(t *testing.T) {
	chunks := []*core.Chunk{
		chunkWithVector(0, []float32{1, 0}),
		chunkWithVector(1, []float32{0, 1}),
	}

	matches := Rank(chunks, []float32{0, 0}, 2)
	require.Len(t, matches, 2)

	// Zero query means no signal; document order wins.
	assert.Equal(t, 0, matches[0].Chunk.Index)
	assert.Equal(t, 1, matches[1].Chunk.Index)
	assert.Equal(t, float32(0), matches[0].Score)
	assert.Equal(t, float32(0), matches[1].Score)
}

func TestRank_EmptyChunks(t *testing.T) {
	matches := Rank(nil, []float32{1, 0}, 4)
	assert.Empty(t, matches)
}
