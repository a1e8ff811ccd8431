package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"eps_extractor/pkg/core/extract"
	"eps_extractor/pkg/core/report"
)

// RunRepo handles the storage of batch extraction runs.
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// resultRow is the JSON shape of one document's result, matching the
// tabular output columns.
type resultRow struct {
	Filename string `json:"filename"`
	EPS      string `json:"eps"`
	EPSTerm  string `json:"eps_term"`
}

// SaveRun persists one batch run and its per-document results.
//
// Schema assumption (managed outside this repo):
//
//	CREATE TABLE IF NOT EXISTS extraction_runs (
//	  run_id TEXT PRIMARY KEY,
//	  input_dir TEXT,
//	  results_json JSONB,
//	  created_at TIMESTAMPTZ
//	);
func (r *RunRepo) SaveRun(ctx context.Context, runID uuid.UUID, inputDir string, results []extract.Result) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(resultRows(results))
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	query := `
		INSERT INTO extraction_runs (run_id, input_dir, results_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id)
		DO UPDATE SET
			input_dir = EXCLUDED.input_dir,
			results_json = EXCLUDED.results_json,
			created_at = EXCLUDED.created_at;
	`

	_, err = pool.Exec(ctx, query, runID.String(), inputDir, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// LoadRun retrieves the stored results of a previous run.
func (r *RunRepo) LoadRun(ctx context.Context, runID uuid.UUID) ([]extract.Result, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT results_json FROM extraction_runs WHERE run_id = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, runID.String()).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no run found for id %s", runID)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var rows []resultRow
	if err := json.Unmarshal(jsonData, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run results: %w", err)
	}

	results := make([]extract.Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, rowToResult(row))
	}

	return results, nil
}

// resultRows converts results to their stored shape, NONE markers
// included.
func resultRows(results []extract.Result) []resultRow {
	rows := make([]resultRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, resultRow{
			Filename: res.DocumentID,
			EPS:      report.EPSString(res),
			EPSTerm:  report.TermString(res),
		})
	}
	return rows
}

func rowToResult(row resultRow) extract.Result {
	res := extract.Result{DocumentID: row.Filename}
	if row.EPS != report.NoneMarker {
		if v, err := decimal.NewFromString(row.EPS); err == nil {
			res.Value = &v
			res.Term = row.EPSTerm
		}
	}
	return res
}
