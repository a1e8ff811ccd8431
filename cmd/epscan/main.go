package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"eps_extractor/pkg/core/extract"
	"eps_extractor/pkg/core/pipeline"
	"eps_extractor/pkg/core/report"
	"eps_extractor/pkg/core/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-config run.yaml] <input_dir> <output_file>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s -rerun <run_id> <output_file>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "optional YAML run configuration")
	rerunID := flag.String("rerun", "", "re-emit a stored run by id instead of scanning filings")
	flag.Usage = usage
	flag.Parse()

	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info(".env not found, using environment variables")
	}

	if *rerunID != "" {
		if flag.NArg() != 1 {
			usage()
			os.Exit(2)
		}
		rerun(*rerunID, flag.Arg(0), logger)
		return
	}

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	inputDir := flag.Arg(0)
	outputFile := flag.Arg(1)

	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		logger.Fatal("input directory does not exist", zap.String("dir", inputDir))
	}

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		cfg, err = pipeline.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("invalid run configuration", zap.Error(err))
		}
	}

	runner, err := pipeline.NewRunner(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up pipeline", zap.Error(err))
	}

	results, err := runner.Run(inputDir)
	if err != nil {
		logger.Fatal("batch run failed", zap.Error(err))
	}

	if err := report.Write(outputFile, results); err != nil {
		logger.Fatal("failed to write results", zap.Error(err))
	}
	logger.Info("results written", zap.String("file", outputFile), zap.Int("rows", len(results)))

	// Persistence is best-effort: a missing or unreachable database is
	// logged, never fatal to the batch.
	if os.Getenv("DATABASE_URL") != "" {
		persistRun(inputDir, results, logger)
	}
}

func persistRun(inputDir string, results []extract.Result, logger *zap.Logger) {
	ctx := context.Background()
	if err := store.Open(ctx, os.Getenv("DATABASE_URL")); err != nil {
		logger.Warn("skipping persistence", zap.Error(err))
		return
	}
	defer store.Close()

	runID := uuid.New()
	if err := store.NewRunRepo().SaveRun(ctx, runID, inputDir, results); err != nil {
		logger.Warn("failed to persist run", zap.Error(err))
		return
	}
	logger.Info("run persisted", zap.String("run_id", runID.String()))
}

// rerun re-emits a previously persisted run to a fresh output file.
// Unlike save-side persistence this mode is useless without a database,
// so failures here are fatal.
func rerun(id, outputFile string, logger *zap.Logger) {
	runID, err := uuid.Parse(id)
	if err != nil {
		logger.Fatal("invalid run id", zap.String("run_id", id), zap.Error(err))
	}

	ctx := context.Background()
	if err := store.Open(ctx, os.Getenv("DATABASE_URL")); err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer store.Close()

	results, err := store.NewRunRepo().LoadRun(ctx, runID)
	if err != nil {
		logger.Fatal("failed to load run", zap.Error(err))
	}

	if err := report.Write(outputFile, results); err != nil {
		logger.Fatal("failed to write results", zap.Error(err))
	}
	logger.Info("run re-emitted",
		zap.String("run_id", runID.String()),
		zap.String("file", outputFile),
		zap.Int("rows", len(results)),
	)
}
