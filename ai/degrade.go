package ai

import (
	"context"
	"log/slog"
	"time"
)

// EmbedOutcome reports how a batch embedding call concluded. A degraded
// outcome still carries vectors (all zeros) so the pipeline can proceed with
// no similarity signal instead of aborting; the flag and reason exist for
// observability.
type EmbedOutcome struct {
	Vectors  [][]float32
	Degraded bool
	Reason   string
}

// FallbackEmbedder wraps an Embedder with the degrade-to-zero policy:
// provider failures and timeouts never surface as errors, they produce zero
// vectors of the configured dimension. At most one bounded retry is made
// before degrading.
type FallbackEmbedder struct {
	inner      Embedder
	dimensions int
	timeout    time.Duration
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewFallbackEmbedder wraps inner with the degrade-to-zero policy.
// dimensions is the zero-vector length used on failure; timeout bounds each
// provider call.
func NewFallbackEmbedder(inner Embedder, dimensions int, timeout time.Duration) *FallbackEmbedder {
	return &FallbackEmbedder{
		inner:      inner,
		dimensions: dimensions,
		timeout:    timeout,
		retryDelay: 500 * time.Millisecond,
		logger:     slog.Default().With("component", "fallback-embedder"),
	}
}

// EmbedTexts embeds a batch of texts, degrading to zero vectors on failure.
// Empty input yields an empty outcome without touching the network. The
// returned vectors are index-aligned with the input.
func (f *FallbackEmbedder) EmbedTexts(ctx context.Context, texts []string) EmbedOutcome {
	if len(texts) == 0 {
		return EmbedOutcome{Vectors: [][]float32{}}
	}

	vectors, err := f.embedOnce(ctx, texts)
	if err != nil {
		f.logger.Warn("embedding call failed, retrying once", "count", len(texts), "err", err)

		select {
		case <-ctx.Done():
			return f.degrade(texts, ctx.Err().Error())
		case <-time.After(f.retryDelay):
		}

		vectors, err = f.embedOnce(ctx, texts)
	}
	if err != nil {
		f.logger.Warn("embedding degraded to zero vectors", "count", len(texts), "reason", err)
		return f.degrade(texts, err.Error())
	}

	if len(vectors) != len(texts) {
		f.logger.Warn("embedding result misaligned with input",
			"expected", len(texts), "received", len(vectors))
		return f.degrade(texts, "provider returned misaligned embedding batch")
	}

	return EmbedOutcome{Vectors: vectors}
}

// EmbedText embeds a single text, degrading to a zero vector on failure.
func (f *FallbackEmbedder) EmbedText(ctx context.Context, text string) ([]float32, bool) {
	outcome := f.EmbedTexts(ctx, []string{text})
	return outcome.Vectors[0], outcome.Degraded
}

func (f *FallbackEmbedder) embedOnce(ctx context.Context, texts []string) ([][]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return f.inner.EmbedTexts(callCtx, texts)
}

func (f *FallbackEmbedder) degrade(texts []string, reason string) EmbedOutcome {
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = make([]float32, f.dimensions)
	}
	return EmbedOutcome{Vectors: vectors, Degraded: true, Reason: reason}
}
