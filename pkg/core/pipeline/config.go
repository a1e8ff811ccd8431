// Package pipeline drives batch extraction over a directory of filings.
package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"eps_extractor/pkg/core/lexicon"
	"eps_extractor/pkg/core/normalize"
)

// =============================================================================
// RUN CONFIGURATION - Optional YAML overrides for a batch run
// =============================================================================

// TermConfig is one extra lexicon entry supplied by configuration.
type TermConfig struct {
	Phrase   string `yaml:"phrase"`
	Category string `yaml:"category"`
}

// Config holds the tunable knobs of a batch run. Zero values fall back
// to defaults, so a partial YAML file is fine.
type Config struct {
	Workers    int          `yaml:"workers"`
	TextWindow int          `yaml:"text_window"`
	YearMin    int          `yaml:"year_min"`
	YearMax    int          `yaml:"year_max"`
	ExtraTerms []TermConfig `yaml:"extra_terms"`
}

// DefaultConfig returns the built-in run settings.
func DefaultConfig() Config {
	return Config{
		Workers:    4,
		TextWindow: 0, // 0 = extract.DefaultWindow
		YearMin:    normalize.DefaultYearMin,
		YearMax:    normalize.DefaultYearMax,
	}
}

// LoadConfig reads a YAML run configuration, filling unset fields with
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.YearMin == 0 {
		c.YearMin = normalize.DefaultYearMin
	}
	if c.YearMax == 0 {
		c.YearMax = normalize.DefaultYearMax
	}
}

// buildLexicon materializes the catalog plus any configured extras.
func (c Config) buildLexicon() (*lexicon.Lexicon, error) {
	if len(c.ExtraTerms) == 0 {
		return lexicon.New(), nil
	}

	extra := make([]lexicon.Term, 0, len(c.ExtraTerms))
	for _, tc := range c.ExtraTerms {
		cat, err := lexicon.ParseCategory(tc.Category)
		if err != nil {
			return nil, fmt.Errorf("extra term %q: %w", tc.Phrase, err)
		}
		extra = append(extra, lexicon.Term{Phrase: tc.Phrase, Category: cat})
	}

	return lexicon.NewWithExtra(extra)
}
