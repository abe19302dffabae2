package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/manacurve/manasim/internal/montecarlo"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS simulation_runs (
	run_id     UUID PRIMARY KEY,
	deck_name  TEXT NOT NULL,
	iterations INTEGER NOT NULL,
	turns      INTEGER NOT NULL,
	seed       BIGINT NOT NULL,
	results    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_simulation_runs_created_at
	ON simulation_runs (created_at DESC);
`

// RunRepository stores finished run results.
type RunRepository struct {
	db *DB
}

// NewRunRepository builds a RunRepository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// EnsureSchema creates the runs table if it does not exist.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, runsSchema); err != nil {
		return fmt.Errorf("creating runs schema: %w", err)
	}
	return nil
}

// SaveRun persists one finished run. The full results document is stored
// as JSONB; the scalar columns exist for listing and filtering.
func (r *RunRepository) SaveRun(ctx context.Context, runID, deckName string, results *montecarlo.SimulationResults) error {
	doc, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO simulation_runs (run_id, deck_name, iterations, turns, seed, results)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id) DO NOTHING`,
		runID, deckName, results.Iterations, results.Turns, results.Seed, doc,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", runID, err)
	}
	return nil
}

// RunSummary is one row of a recent-runs listing.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	DeckName   string    `json:"deck_name"`
	Iterations int       `json:"iterations"`
	Turns      int       `json:"turns"`
	Seed       int64     `json:"seed"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListRecent returns the most recent runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Pool.Query(ctx, `
		SELECT run_id, deck_name, iterations, turns, seed, created_at
		FROM simulation_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.DeckName, &s.Iterations, &s.Turns, &s.Seed, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetResults loads the stored results document for one run.
func (r *RunRepository) GetResults(ctx context.Context, runID string) (*montecarlo.SimulationResults, error) {
	var doc []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT results FROM simulation_runs WHERE run_id = $1`, runID,
	).Scan(&doc)
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}

	var results montecarlo.SimulationResults
	if err := json.Unmarshal(doc, &results); err != nil {
		return nil, fmt.Errorf("unmarshaling run %s: %w", runID, err)
	}
	return &results, nil
}
