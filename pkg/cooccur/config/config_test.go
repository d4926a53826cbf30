package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadVocabulary(t *testing.T) {
	path := writeFile(t, "species.yaml", `
variable: species
symbols:
  - dog
  - cat
  - gecko
`)

	v, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	if v.Variable != "species" {
		t.Errorf("variable = %q, want %q", v.Variable, "species")
	}
	if len(v.Symbols) != 3 || v.Symbols[0] != "dog" || v.Symbols[2] != "gecko" {
		t.Errorf("symbols = %v, want [dog cat gecko]", v.Symbols)
	}
}

func TestLoadVocabularyMissingFile(t *testing.T) {
	if _, err := LoadVocabulary("/nonexistent/vocab.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadSettings(t *testing.T) {
	path := writeFile(t, "settings.yaml", "top_k: 25\n")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.TopK != 25 {
		t.Errorf("TopK = %d, want 25", s.TopK)
	}
}

func TestLoaderBuildsIndexes(t *testing.T) {
	xPath := writeFile(t, "x.yaml", "symbols: [dog, cat, gecko]\n")
	yPath := writeFile(t, "y.yaml", "symbols: [Chloe, Ozzie, Jinx, Fritz, Remy]\n")

	loader := Loader{XVocabPath: xPath, YVocabPath: yPath}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.XVocab == nil || comp.YVocab == nil {
		t.Fatal("both vocabularies should be built")
	}
	if comp.XVocab.Size() != 3 || comp.YVocab.Size() != 5 {
		t.Errorf("index sizes = %d,%d, want 3,5", comp.XVocab.Size(), comp.YVocab.Size())
	}
	if id, err := comp.XVocab.ID("gecko"); err != nil || id != 2 {
		t.Errorf("ID(gecko) = %d,%v, want 2,nil", id, err)
	}
}

func TestLoaderEmptyPathsSelectDiscovery(t *testing.T) {
	loader := Loader{}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.XVocab != nil || comp.YVocab != nil {
		t.Error("no paths given, vocabularies should stay nil")
	}
}

func TestLoaderRejectsDuplicateSymbols(t *testing.T) {
	xPath := writeFile(t, "x.yaml", "symbols: [dog, dog]\n")

	loader := Loader{XVocabPath: xPath}
	if _, err := loader.Load(); err == nil {
		t.Error("duplicate symbols in a vocabulary file should fail")
	}
}
