package synthesis

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/docrag/ai"
	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/retrieval"
)

// DefaultTopK is the number of chunks pulled into the synthesis prompt.
const DefaultTopK = 6

const defaultCompletionTimeout = 30 * time.Second

// AnalysisResult is an Analysis plus availability flags.
type AnalysisResult struct {
	Analysis *Analysis

	// Fallback is true when the payload is a deterministic fallback rather
	// than model output.
	Fallback bool

	// RetrievalDegraded is true when the query embedding degraded and chunk
	// ranking reduced to document order.
	RetrievalDegraded bool

	// Reason describes the failure when Fallback is true.
	Reason string
}

// AnswerResult is an Answer plus availability flags.
type AnswerResult struct {
	Answer            *Answer
	Fallback          bool
	RetrievalDegraded bool
	Reason            string
}

// Orchestrator drives the retrieval-then-synthesis flow for one document.
// Synthesis failures never surface as errors; callers always receive a
// well-formed payload with flags describing what happened.
type Orchestrator struct {
	retriever *retrieval.Retriever
	completer ai.Completer
	topK      int
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithTopK sets how many ranked chunks feed the synthesis prompt.
// Default is DefaultTopK.
func WithTopK(topK int) Option {
	return func(o *Orchestrator) error {
		if topK < 0 {
			return retrieval.ErrInvalidTopK
		}
		o.topK = topK
		return nil
	}
}

// WithCompletionTimeout bounds each completion call.
func WithCompletionTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) error {
		if timeout > 0 {
			o.timeout = timeout
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a new synthesis orchestrator.
func NewOrchestrator(retriever *retrieval.Retriever, completer ai.Completer, opts ...Option) (*Orchestrator, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	o := &Orchestrator{
		retriever: retriever,
		completer: completer,
		topK:      DefaultTopK,
		timeout:   defaultCompletionTimeout,
		logger:    slog.Default().With("component", "synthesis"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Analyze produces a structured analysis of the whole document.
// Retrieval uses a fixed summarization query so the prompt sees the most
// representative chunks.
func (o *Orchestrator) Analyze(ctx context.Context, documentID core.ID) (*AnalysisResult, error) {
	retrieved, err := o.retriever.Retrieve(ctx, documentID, analysisQuery, o.topK)
	if err != nil {
		return nil, err
	}

	if len(retrieved.Matches) == 0 {
		return &AnalysisResult{
			Analysis: noContentAnalysis(),
			Fallback: true,
			Reason:   "no chunks available for analysis",
		}, nil
	}

	chunkTexts := matchTexts(retrieved.Matches)

	payload, err := o.complete(ctx, systemPromptAnalysis, buildAnalysisPrompt(chunkTexts))
	if err != nil {
		o.logger.Warn("analysis completion failed, using fallback", "documentID", documentID, "err", err)
		return &AnalysisResult{
			Analysis:          fallbackAnalysis(chunkTexts),
			Fallback:          true,
			RetrievalDegraded: retrieved.Degraded,
			Reason:            err.Error(),
		}, nil
	}

	analysis, parseErr := parseAnalysis(payload)
	if parseErr != nil {
		o.logger.Warn("analysis payload rejected, using fallback",
			"documentID", documentID, "err", parseErr)
		return &AnalysisResult{
			Analysis:          fallbackAnalysis(chunkTexts),
			Fallback:          true,
			RetrievalDegraded: retrieved.Degraded,
			Reason:            parseErr.Error(),
		}, nil
	}

	return &AnalysisResult{
		Analysis:          analysis,
		RetrievalDegraded: retrieved.Degraded,
	}, nil
}

// Ask answers a question grounded in the document's chunks.
func (o *Orchestrator) Ask(ctx context.Context, documentID core.ID, question string) (*AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	retrieved, err := o.retriever.Retrieve(ctx, documentID, question, o.topK)
	if err != nil {
		return nil, err
	}

	if len(retrieved.Matches) == 0 {
		return &AnswerResult{
			Answer:   fallbackAnswer(),
			Fallback: true,
			Reason:   "no chunks available for question answering",
		}, nil
	}

	chunkTexts := matchTexts(retrieved.Matches)

	payload, err := o.complete(ctx, systemPromptQA, buildQAPrompt(chunkTexts, question))
	if err != nil {
		o.logger.Warn("QA completion failed, using fallback", "documentID", documentID, "err", err)
		return &AnswerResult{
			Answer:            fallbackAnswer(),
			Fallback:          true,
			RetrievalDegraded: retrieved.Degraded,
			Reason:            err.Error(),
		}, nil
	}

	answer, parseErr := parseAnswer(payload)
	if parseErr != nil {
		o.logger.Warn("QA payload rejected, using fallback",
			"documentID", documentID, "err", parseErr)
		return &AnswerResult{
			Answer:            fallbackAnswer(),
			Fallback:          true,
			RetrievalDegraded: retrieved.Degraded,
			Reason:            parseErr.Error(),
		}, nil
	}

	return &AnswerResult{
		Answer:            answer,
		RetrievalDegraded: retrieved.Degraded,
	}, nil
}

// complete invokes the completion service under the configured timeout.
func (o *Orchestrator) complete(ctx context.Context, system, user string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.completer.Complete(callCtx, system, user)
}

// parseAnalysis decodes a completion payload, repairing it once on failure.
func parseAnalysis(payload string) (*Analysis, error) {
	cleaned := stripFences(payload)
	analysis, err := DecodeAnalysis(cleaned)
	if err == nil {
		return analysis, nil
	}
	return DecodeAnalysis(repairJSON(cleaned))
}

// parseAnswer decodes a completion payload, repairing it once on failure.
func parseAnswer(payload string) (*Answer, error) {
	cleaned := stripFences(payload)
	answer, err := DecodeAnswer(cleaned)
	if err == nil {
		return answer, nil
	}
	return DecodeAnswer(repairJSON(cleaned))
}

// matchTexts extracts chunk texts from ranked matches, preserving order.
func matchTexts(matches []*core.RetrievalMatch) []string {
	texts := make([]string, len(matches))
	for i, match := range matches {
		texts[i] = match.Chunk.Text
	}
	return texts
}
