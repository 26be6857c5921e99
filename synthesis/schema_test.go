package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnswer(t *testing.T) {
	answer, err := DecodeAnswer(`{"answer":"BP is 120/80","evidence":["BP 120/80"],"confidence":"high"}`)
	require.NoError(t, err)

	assert.Equal(t, "BP is 120/80", answer.Answer)
	assert.Equal(t, []string{"BP 120/80"}, answer.Evidence)
	assert.Equal(t, ConfidenceHigh, answer.Confidence)
}

func TestDecodeAnswer_MissingEvidence(t *testing.T) {
	answer, err := DecodeAnswer(`{"answer":"yes","confidence":"low"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{}, answer.Evidence)
}

func TestDecodeAnswer_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty answer", `{"answer":"","evidence":[],"confidence":"low"}`},
		{"missing answer", `{"evidence":[],"confidence":"low"}`},
		{"bad confidence", `{"answer":"yes","evidence":[],"confidence":"certain"}`},
		{"missing confidence", `{"answer":"yes","evidence":[]}`},
		{"not json", `the answer is yes`},
		{"trailing content", `{"answer":"yes","evidence":[],"confidence":"low"} extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAnswer(tt.payload)
			assert.Error(t, err)
		})
	}
}

func TestDecodeAnalysis(t *testing.T) {
	payload := `{
		"report": ["Stable vitals", "No acute findings"],
		"breakdown": [{"title": "Vitals", "summary": "Within normal range", "quotes": ["BP 120/80"]}],
		"suggestions": [{"text": "Routine follow-up", "evidence": "stable readings"}],
		"patient_summary": "Your checkup looked normal.",
		"sources": ["chunk 0"]
	}`

	analysis, err := DecodeAnalysis(payload)
	require.NoError(t, err)

	assert.Len(t, analysis.Report, 2)
	require.Len(t, analysis.Breakdown, 1)
	assert.Equal(t, "Vitals", analysis.Breakdown[0].Title)
	require.Len(t, analysis.Suggestions, 1)
	assert.Equal(t, "Routine follow-up", analysis.Suggestions[0].Text)
	assert.Equal(t, "Your checkup looked normal.", analysis.PatientSummary)
}

func TestDecodeAnalysis_SuggestionsAsStrings(t *testing.T) {
	payload := `{
		"report": ["finding"],
		"breakdown": [],
		"suggestions": ["Review manually", {"text": "Follow up", "evidence": "page 2"}],
		"patient_summary": "ok",
		"sources": []
	}`

	analysis, err := DecodeAnalysis(payload)
	require.NoError(t, err)

	require.Len(t, analysis.Suggestions, 2)
	assert.Equal(t, "Review manually", analysis.Suggestions[0].Text)
	assert.Empty(t, analysis.Suggestions[0].Evidence)
	assert.Equal(t, "Follow up", analysis.Suggestions[1].Text)
	assert.Equal(t, "page 2", analysis.Suggestions[1].Evidence)
}

func TestDecodeAnalysis_EmptyReport(t *testing.T) {
	_, err := DecodeAnalysis(`{"report":[],"breakdown":[],"suggestions":[],"patient_summary":"x","sources":[]}`)
	assert.ErrorIs(t, err, ErrSchemaViolation)
}

func TestStripFences(t *testing.T) {
	fenced := "```json\n{\"answer\":\"yes\"}\n```"
	assert.Equal(t, `{"answer":"yes"}`, stripFences(fenced))

	bare := `{"answer":"yes"}`
	assert.Equal(t, bare, stripFences(bare))
}

func TestRepairJSON_FixesMissingKeyQuote(t *testing.T) {
	broken := `{"answer":"yes", confidence": "low"}`
	repaired := repairJSON(broken)
	assert.Equal(t, `{"answer":"yes", "confidence": "low"}`, repaired)
}
