package retrieval

import (
	"math"
	"slices"

	"github.com/poiesic/docrag/core"
)

// CosineSimilarity computes the cosine of the angle between two vectors.
// Vectors of different lengths are compared over their shared prefix.
// If either vector has zero magnitude, the similarity is 0.
func CosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float32
	for i := 0; i < minLen; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// Rank scores every chunk against the query vector and returns the top
// matches in descending score order. Chunks with equal scores keep their
// document order, so ties resolve to the earlier chunk.
func Rank(chunks []*core.Chunk, query []float32, topK int) []*core.RetrievalMatch {
	matches := make([]*core.RetrievalMatch, 0, len(chunks))
	for _, chunk := range chunks {
		matches = append(matches, &core.RetrievalMatch{
			Chunk: chunk,
			Score: CosineSimilarity(query, chunk.Vector),
		})
	}

	slices.SortStableFunc(matches, func(a, b *core.RetrievalMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if topK >= 0 && len(matches) > topK {
		matches = matches[:topK]
	}

	return matches
}
