package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/docrag/core"
)

// Key prefixes for different data types
const (
	documentRecordPrefix   = "docrec"
	documentReportIDPrefix = "docrepid"
	documentIDSeq          = "docrecseq"
	chunkRecordPrefix      = "docchunk"
)

// makeDocumentKey generates a key for a document record by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentRecordPrefix, id))
}

// makeReportIDKey generates a key for the report ID index.
// Format: prefix:reportID
func makeReportIDKey(reportID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentReportIDPrefix, reportID))
}

// makeChunkKey generates a composite key for a chunk.
// Format: prefix:documentID:index
func makeChunkKey(documentID core.ID, index int) []byte {
	prefix := chunkRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for documentID + 8 bytes for index
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches chunk order
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// makePartialChunkKey generates a partial key covering all chunks of a document.
// Format: prefix:documentID
func makePartialChunkKey(documentID core.ID) []byte {
	prefix := chunkRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for documentID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches chunk order
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}
