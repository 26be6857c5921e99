package core

import (
	"strings"
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "Patient presented with elevated blood pressure and mild tachycardia during the visit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNewReportID(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	id := NewReportID(now)

	if !strings.HasPrefix(id, "REP-20250314-") {
		t.Errorf("NewReportID() = %q, want REP-20250314- prefix", id)
	}
	if len(id) != len("REP-20250314-")+6 {
		t.Errorf("NewReportID() = %q, want 6-character suffix", id)
	}
	if id != strings.ToUpper(id) {
		t.Errorf("NewReportID() = %q, want uppercase suffix", id)
	}
}

func TestDocument_Preview(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		max      int
		want     string
	}{
		{name: "shorter than max", contents: "BP 120/80", max: 500, want: "BP 120/80"},
		{name: "truncated", contents: "abcdefghij", max: 4, want: "abcd"},
		{name: "exact length", contents: "abcd", max: 4, want: "abcd"},
		{name: "empty", contents: "", max: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Contents: tt.contents}
			got := doc.Preview(tt.max)
			if got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.max, got, tt.want)
			}
		})
	}
}
