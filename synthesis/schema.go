package synthesis

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Confidence levels allowed in an Answer.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

var (
	// ErrSchemaViolation is returned when a completion payload does not
	// conform to the expected structure.
	ErrSchemaViolation = errors.New("completion payload violates schema")
)

// Section is one titled part of an analysis breakdown.
type Section struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Quotes  []string `json:"quotes"`
}

// Suggestion is an evidence-backed recommendation.
// Models sometimes emit suggestions as bare strings, so decoding accepts
// either a string or the full object.
type Suggestion struct {
	Text     string `json:"text"`
	Evidence string `json:"evidence,omitempty"`
}

// UnmarshalJSON accepts both `"do X"` and `{"text":"do X","evidence":"..."}`.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		s.Text = text
		s.Evidence = ""
		return nil
	}

	type plain Suggestion
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Suggestion(p)
	return nil
}

// Analysis is the structured result of full-document analysis.
type Analysis struct {
	Report         []string     `json:"report"`
	Breakdown      []Section    `json:"breakdown"`
	Suggestions    []Suggestion `json:"suggestions"`
	PatientSummary string       `json:"patient_summary"`
	Sources        []string     `json:"sources"`
}

// Answer is the structured result of grounded question answering.
type Answer struct {
	Answer     string   `json:"answer"`
	Evidence   []string `json:"evidence"`
	Confidence string   `json:"confidence"`
}

// DecodeAnalysis parses a completion payload into an Analysis.
// The payload must be a single JSON object with at least one report bullet;
// anything else is a schema violation.
func DecodeAnalysis(payload string) (*Analysis, error) {
	var analysis Analysis
	if err := decodeStrict(payload, &analysis); err != nil {
		return nil, err
	}
	if len(analysis.Report) == 0 {
		return nil, ErrSchemaViolation
	}
	return &analysis, nil
}

// DecodeAnswer parses a completion payload into an Answer.
// The answer text must be present and confidence must be one of the three
// allowed levels.
func DecodeAnswer(payload string) (*Answer, error) {
	var answer Answer
	if err := decodeStrict(payload, &answer); err != nil {
		return nil, err
	}
	if answer.Answer == "" {
		return nil, ErrSchemaViolation
	}
	switch answer.Confidence {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
	default:
		return nil, ErrSchemaViolation
	}
	if answer.Evidence == nil {
		answer.Evidence = []string{}
	}
	return &answer, nil
}

// decodeStrict decodes exactly one JSON value and rejects trailing content.
func decodeStrict(payload string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return ErrSchemaViolation
	}
	return nil
}
