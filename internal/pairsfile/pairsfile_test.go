package pairsfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.jsonl")
	content := `{"x":"dog","y":"Chloe"}
{"x":"dog","y":"Ozzie"}

{"x":"cat","y":"Jinx"}
not json at all
{"x":"gecko"}
{"x":"gecko","y":"Remy"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := LoadFromJSONL(path)
	if err != nil {
		t.Fatalf("LoadFromJSONL: %v", err)
	}

	// Blank line, malformed line and incomplete pair are skipped.
	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	if records[0].X != "dog" || records[0].Y != "Chloe" {
		t.Errorf("first record = %+v, want dog/Chloe", records[0])
	}
	if records[3].Y != "Remy" {
		t.Errorf("last record = %+v, want gecko/Remy", records[3])
	}
}

func TestLoadFromJSONLMissingFile(t *testing.T) {
	if _, err := LoadFromJSONL("/nonexistent/pairs.jsonl"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadFromJSONLNoValidRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.jsonl")
	if err := os.WriteFile(path, []byte("garbage\n\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadFromJSONL(path); err == nil {
		t.Error("file without valid pairs should fail")
	}
}
