package core

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NewReportID generates a human-facing report identifier of the form
// REP-YYYYMMDD-XXXXXX, where the suffix is random hex. Report IDs are handed
// to patients so a document can be looked up later without its numeric ID.
func NewReportID(now time.Time) string {
	suffix := make([]byte, 3)
	rand.Read(suffix)
	return "REP-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(suffix))
}

// Document represents one ingested clinical document. The raw text is captured
// once at ingestion and never mutated afterwards; chunks are derived from it
// in a single batch and stored separately.
type Document struct {
	Id         ID
	ReportID   string // Human-facing identifier (REP-YYYYMMDD-XXXXXX)
	Filename   string
	Contents   string // Extracted plain text
	ChunkCount int
	InsertedAt time.Time
}

// Preview returns the leading portion of the document text, capped at max
// characters, for display in listings and lookups.
func (d *Document) Preview(max int) string {
	runes := []rune(d.Contents)
	if len(runes) <= max {
		return d.Contents
	}
	return string(runes[:max])
}

// Chunk is a contiguous, bounded-length, possibly overlapping substring of a
// document. It is the unit of retrieval. Index is the zero-based position
// within the document and defines a stable ordering used for citation.
type Chunk struct {
	DocumentId ID
	Index      int
	Text       string
	Vector     []float32 // Embedding vector; all zeros when the provider degraded
}

// RetrievalMatch pairs a chunk with its similarity score for one query.
// Scores are cosine similarities in [-1, 1]; degraded zero embeddings always
// score exactly 0.
type RetrievalMatch struct {
	Chunk *Chunk
	Score float32
}
