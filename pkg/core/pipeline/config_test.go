package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"eps_extractor/pkg/core/normalize"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Workers)
	}
	if cfg.YearMin != normalize.DefaultYearMin || cfg.YearMax != normalize.DefaultYearMax {
		t.Errorf("year range = [%d, %d]", cfg.YearMin, cfg.YearMax)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	yaml := `
workers: 8
text_window: 80
extra_terms:
  - phrase: "core eps"
    category: "ADJUSTED_NON_GAAP"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Workers)
	}
	if cfg.TextWindow != 80 {
		t.Errorf("text_window = %d, want 80", cfg.TextWindow)
	}
	// Unset fields keep their defaults.
	if cfg.YearMin != normalize.DefaultYearMin {
		t.Errorf("year_min = %d, want default %d", cfg.YearMin, normalize.DefaultYearMin)
	}
	if len(cfg.ExtraTerms) != 1 || cfg.ExtraTerms[0].Phrase != "core eps" {
		t.Errorf("extra_terms = %+v", cfg.ExtraTerms)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("workers: [not an int"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestBuildLexiconRejectsBadCategory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtraTerms = []TermConfig{{Phrase: "core eps", Category: "bogus"}}
	if _, err := cfg.buildLexicon(); err == nil {
		t.Error("expected error for unknown category")
	}
}
