package synthesis

import "fmt"

// excerptLimit caps the leading excerpt taken from the top-ranked chunk for
// the fallback breakdown entry.
const excerptLimit = 200

// sentinelAnswer is the literal answer the QA path must return whenever it
// cannot ground a response in the document. Unconstrained generation is not
// acceptable for clinical content, so this exact sentence stands in for any
// failure mode.
const sentinelAnswer = "I cannot determine from the provided document."

// fallbackAnswer returns the literal QA fallback payload.
// The same shape serves both "no content" and "synthesis failed".
func fallbackAnswer() *Answer {
	return &Answer{
		Answer:     sentinelAnswer,
		Evidence:   []string{},
		Confidence: ConfidenceLow,
	}
}

// noContentAnalysis is the analysis payload for a document with no
// retrievable chunks.
func noContentAnalysis() *Analysis {
	return &Analysis{
		Report:         []string{"No content available for analysis"},
		Breakdown:      []Section{},
		Suggestions:    []Suggestion{},
		PatientSummary: "Document analysis not available",
		Sources:        []string{},
	}
}

// fallbackAnalysis is the analysis payload when synthesis fails but chunks
// were retrieved. The breakdown carries a leading excerpt of the top-ranked
// chunk so the reader gets real document text instead of fabricated content.
func fallbackAnalysis(chunkTexts []string) *Analysis {
	excerpt := "No content"
	if len(chunkTexts) > 0 {
		excerpt = leadingExcerpt(chunkTexts[0])
	}

	return &Analysis{
		Report: []string{
			"Document uploaded and processed successfully",
			"Automated analysis temporarily unavailable",
			"Manual review recommended for clinical decisions",
		},
		Breakdown: []Section{
			{
				Title:   "Document Content",
				Summary: "Text extracted from uploaded document",
				Quotes:  []string{excerpt},
			},
		},
		Suggestions: []Suggestion{
			{Text: "Review document manually for clinical insights"},
			{Text: "Consider re-uploading if text extraction seems incomplete"},
		},
		PatientSummary: "Your document has been uploaded and is ready for review.",
		Sources:        []string{fmt.Sprintf("Document chunks 1-%d", len(chunkTexts))},
	}
}

// leadingExcerpt truncates text to excerptLimit runes with an ellipsis.
func leadingExcerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit]) + "..."
}
