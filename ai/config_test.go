package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.CompletionHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.CompletionModel)
	assert.Equal(t, 1536, cfg.EmbeddingDimensions)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://example.com:9100"),
		WithEmbeddingModel("embeddinggemma"),
		WithCompletionModel("qwen2.5:3b"),
		WithEmbeddingDimensions(384),
		WithRequestTimeout(5*time.Second),
		WithMaxCompletionTokens(600),
	)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://example.com:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://example.com:9100/v1", cfg.CompletionHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.CompletionModel)
	assert.Equal(t, 384, cfg.EmbeddingDimensions)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 600, cfg.MaxCompletionTokens)
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "bare host", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "already normalized", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.CompletionHost)
		})
	}
}

func TestConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty embedding model", mutate: func(c *Config) { c.EmbeddingModel = "" }},
		{name: "empty completion model", mutate: func(c *Config) { c.CompletionModel = "" }},
		{name: "zero dimensions", mutate: func(c *Config) { c.EmbeddingDimensions = 0 }},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }},
		{name: "zero max tokens", mutate: func(c *Config) { c.MaxCompletionTokens = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// failingEmbedder always returns an error.
type failingEmbedder struct {
	calls int
}

func (f *failingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return nil, errors.New("provider unavailable")
}

func (f *failingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	return nil, errors.New("provider unavailable")
}

func TestFallbackEmbedder_EmptyInput(t *testing.T) {
	inner := &failingEmbedder{}
	fe := NewFallbackEmbedder(inner, 8, time.Second)

	outcome := fe.EmbedTexts(context.Background(), nil)
	assert.Empty(t, outcome.Vectors)
	assert.False(t, outcome.Degraded)
	assert.Zero(t, inner.calls, "empty input must not invoke the provider")
}

func TestFallbackEmbedder_DegradesToZeroVectors(t *testing.T) {
	inner := &failingEmbedder{}
	fe := NewFallbackEmbedder(inner, 4, time.Second)
	fe.retryDelay = time.Millisecond

	outcome := fe.EmbedTexts(context.Background(), []string{"BP 120/80", "HR 72"})
	assert.True(t, outcome.Degraded)
	assert.NotEmpty(t, outcome.Reason)
	require.Len(t, outcome.Vectors, 2)
	for _, vec := range outcome.Vectors {
		assert.Equal(t, []float32{0, 0, 0, 0}, vec)
	}
	assert.Equal(t, 2, inner.calls, "one bounded retry before degrading")
}

func TestFallbackEmbedder_Misaligned(t *testing.T) {
	misaligned := &MockEmbedderFunc{
		TextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil // always one vector, regardless of input
		},
	}
	fe := NewFallbackEmbedder(misaligned, 2, time.Second)
	fe.retryDelay = time.Millisecond

	outcome := fe.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	assert.True(t, outcome.Degraded)
	require.Len(t, outcome.Vectors, 3)
}

// MockEmbedderFunc adapts plain functions to the Embedder interface for tests.
type MockEmbedderFunc struct {
	TextFunc  func(ctx context.Context, text string) ([]float32, error)
	TextsFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedderFunc) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return m.TextFunc(ctx, text)
}

func (m *MockEmbedderFunc) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return m.TextsFunc(ctx, texts)
}
