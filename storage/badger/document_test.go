package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/docrag/core"
	"github.com/poiesic/docrag/storage"
)

func TestDocumentBasics(t *testing.T) {
	// Create in-memory repositories
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		chunkRepo.Close()
		docRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Test adding a document
	doc := &core.Document{
		ReportID:   "REP-20250314-AB12CD",
		Filename:   "visit_note.txt",
		Contents:   "Patient presented with mild fever.",
		ChunkCount: 1,
	}

	added, err := docRepo.AddDocument(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if added.Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added.InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	// Test retrieving the document
	retrieved, err := docRepo.GetDocument(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}

	if retrieved.Contents != "Patient presented with mild fever." {
		t.Fatalf("Unexpected contents: '%s'", retrieved.Contents)
	}
}

func TestDocumentByReportID(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc := &core.Document{
		ReportID: "REP-20250314-FF00AA",
		Filename: "labs.txt",
		Contents: "CBC within normal limits.",
	}

	added, err := docRepo.AddDocument(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	retrieved, err := docRepo.GetDocumentByReportID(ctx, "REP-20250314-FF00AA")
	if err != nil {
		t.Fatalf("Failed to get document by report ID: %v", err)
	}
	if retrieved.Id != added.Id {
		t.Fatalf("Expected ID %d, got %d", added.Id, retrieved.Id)
	}

	// Unknown report ID
	_, err = docRepo.GetDocumentByReportID(ctx, "REP-20250314-000000")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDocumentNotFound(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = docRepo.GetDocument(ctx, core.ID(9999))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDocumentDelete(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc := &core.Document{
		ReportID: "REP-20250314-123ABC",
		Filename: "consult.txt",
		Contents: "Referred to cardiology.",
	}

	added, err := docRepo.AddDocument(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := docRepo.DeleteDocument(ctx, added.Id); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}

	_, err = docRepo.GetDocument(ctx, added.Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Report ID index should be gone too
	_, err = docRepo.GetDocumentByReportID(ctx, "REP-20250314-123ABC")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for deleted report ID, got %v", err)
	}

	// Deleting again should fail
	err = docRepo.DeleteDocument(ctx, added.Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestListDocuments(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	for _, contents := range []string{"First note.", "Second note.", "Third note."} {
		_, err := docRepo.AddDocument(ctx, &core.Document{
			Filename: "note.txt",
			Contents: contents,
		})
		if err != nil {
			t.Fatalf("Failed to add document: %v", err)
		}
	}

	docs, err := docRepo.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(docs))
	}
	for i := 1; i < len(docs); i++ {
		if docs[i-1].Id >= docs[i].Id {
			t.Fatalf("Expected documents ordered by ID, got %d before %d", docs[i-1].Id, docs[i].Id)
		}
	}
}

func TestAddDocumentRejectsEmpty(t *testing.T) {
	docRepo, chunkRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { chunkRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = docRepo.AddDocument(ctx, &core.Document{Filename: "empty.txt", Contents: "   \n\t"})
	if !errors.Is(err, core.ErrEmptyDocument) {
		t.Fatalf("Expected ErrEmptyDocument, got %v", err)
	}
}
