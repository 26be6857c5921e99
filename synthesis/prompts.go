package synthesis

import "strings"

// chunkDelimiter separates chunk texts inside the assembled prompt.
const chunkDelimiter = "\n\n---\n\n"

// systemPromptAnalysis instructs the model to produce the structured
// analysis payload and nothing else.
const systemPromptAnalysis = `You are a clinical document analyst assistant. You will be given relevant document text chunks and a user request.
Return JSON ONLY with the following keys:
- "report": a short clinician-ready report (5-8 bullet points) summarizing the document's key findings.
- "breakdown": an array of sections, each { "title": "...", "summary": "...", "quotes": ["..."] } describing important subparts.
- "suggestions": an array of evidence-based suggestions or actions doctors could take (each with short rationale).
- "patient_summary": a simplified plain-language summary (2-4 sentences) suitable to share with a patient.
- "sources": array of provenance strings referencing which chunk(s) you used (give chunk indexes or brief phrase).
If a medical recommendation is given, include explicit "evidence" tying it to text. DO NOT hallucinate facts outside the provided text. If unsure, say so in the report.`

// systemPromptQA instructs the model to answer only from the supplied
// context and to admit when it cannot.
const systemPromptQA = `You are a clinical QA assistant. You will be given document text chunks and a user's question.
Answer concisely and cite the chunk text used. Return JSON ONLY:
{
  "answer": "short answer",
  "evidence": ["quote from text", "..."],
  "confidence": "low|medium|high"
}
If the answer cannot be found in the text, respond with answer = "I cannot determine from the provided document."`

// analysisQuery is the fixed retrieval query used to pull representative
// chunks for full-document analysis.
const analysisQuery = "Please summarize the entire document content"

// buildAnalysisPrompt assembles the user prompt for document analysis from
// ranked chunk texts.
func buildAnalysisPrompt(chunkTexts []string) string {
	var b strings.Builder
	b.WriteString("DOCUMENT CHUNKS:\n\n")
	b.WriteString(strings.Join(chunkTexts, chunkDelimiter))
	b.WriteString("\n\nPlease produce the structured analysis.")
	return b.String()
}

// buildQAPrompt assembles the user prompt for grounded question answering.
func buildQAPrompt(chunkTexts []string, question string) string {
	var b strings.Builder
	b.WriteString("CONTEXT:\n\n")
	b.WriteString(strings.Join(chunkTexts, chunkDelimiter))
	b.WriteString("\n\nQUESTION: ")
	b.WriteString(question)
	b.WriteString("\nAnswer using only the context and cite quotes.")
	return b.String()
}
