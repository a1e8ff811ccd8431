package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"eps_extractor/pkg/core/document"
	"eps_extractor/pkg/core/extract"
	"eps_extractor/pkg/core/normalize"
)

// =============================================================================
// BATCH RUNNER - Parallel map over independent documents
// =============================================================================

// Runner processes every filing in a directory. Documents are fully
// independent, so they are fanned out to a worker pool; results are
// collected back into input order. A single bad document never aborts
// the run.
type Runner struct {
	cfg       Config
	parser    *document.Parser
	extractor *extract.Extractor
	logger    *zap.Logger
}

// NewRunner wires the lexicon, normalizer, and extractor from a run
// configuration. An invalid lexicon configuration is a fatal setup
// error.
func NewRunner(cfg Config, logger *zap.Logger) (*Runner, error) {
	cfg.applyDefaults()

	lex, err := cfg.buildLexicon()
	if err != nil {
		return nil, fmt.Errorf("build lexicon: %w", err)
	}

	norm := normalize.NewWithYearRange(cfg.YearMin, cfg.YearMax)

	return &Runner{
		cfg:       cfg,
		parser:    document.NewParser(),
		extractor: extract.NewWithWindow(lex, norm, cfg.TextWindow),
		logger:    logger,
	}, nil
}

// Run extracts EPS from every HTML filing under inputDir and returns
// one result per file, in directory listing order.
func (r *Runner) Run(inputDir string) ([]extract.Result, error) {
	files, err := listFilings(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		r.logger.Warn("no filings found", zap.String("dir", inputDir))
		return nil, nil
	}

	results := make([]extract.Result, len(files))

	type job struct {
		index int
		path  string
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = r.processFile(j.path)
			}
		}()
	}

	for i, path := range files {
		jobs <- job{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	found := 0
	for _, res := range results {
		if res.Found() {
			found++
		}
	}
	r.logger.Info("batch complete",
		zap.String("dir", inputDir),
		zap.Int("documents", len(results)),
		zap.Int("extracted", found),
	)

	return results, nil
}

// processFile extracts one document. Read or parse failures are logged
// and recovered as a NONE/NONE result, per-document failures must not
// abort the batch.
func (r *Runner) processFile(path string) extract.Result {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		r.logger.Error("failed to read filing", zap.String("file", name), zap.Error(err))
		return extract.Result{DocumentID: name}
	}
	defer f.Close()

	doc, err := r.parser.Parse(name, f)
	if err != nil {
		r.logger.Error("failed to parse filing", zap.String("file", name), zap.Error(err))
		return extract.Result{DocumentID: name}
	}

	res := r.extractor.ExtractDocument(doc)
	if res.Found() {
		r.logger.Info("eps extracted",
			zap.String("file", name),
			zap.String("eps", res.Value.String()),
			zap.String("term", res.Term),
		)
	} else {
		r.logger.Info("eps not found", zap.String("file", name))
	}

	return res
}

// listFilings returns the HTML files in dir, in directory listing order.
func listFilings(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".html" || ext == ".htm" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	return files, nil
}
