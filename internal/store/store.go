// Package store appends scoring runs to an SQLite database so results can be
// compared across runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/anafora-eval/core/eval"
	"github.com/FocuswithJustin/anafora-eval/core/sqlite"
	"github.com/FocuswithJustin/anafora-eval/internal/fingerprint"
	"github.com/FocuswithJustin/anafora-eval/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	reference TEXT NOT NULL,
	predicted TEXT,
	overlap INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	digest TEXT,
	units INTEGER NOT NULL,
	comparisons INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS inputs (
	run_id TEXT NOT NULL REFERENCES runs(id),
	path TEXT NOT NULL,
	digest TEXT,
	status TEXT NOT NULL,
	annotations INTEGER NOT NULL,
	removed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS scores (
	run_id TEXT NOT NULL REFERENCES runs(id),
	name TEXT NOT NULL,
	pair TEXT,
	type TEXT NOT NULL,
	property TEXT,
	value TEXT,
	kind INTEGER NOT NULL,
	reference INTEGER NOT NULL,
	predicted INTEGER NOT NULL,
	correct INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scores_run ON scores(run_id, name);
`

// Store is an SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID          string
	Mode        string
	Reference   string
	Predicted   string
	Overlap     bool
	StartedAt   time.Time
	Duration    time.Duration
	Digest      string
	Units       int
	Comparisons int
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema (driver %s): %w", sqlite.DriverName(), err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes rep in one transaction and returns its run ID. An empty
// rep.RunID gets a new one, and an empty rep.Digest is derived from the
// input digests.
func (s *Store) Save(ctx context.Context, rep *report.Report) (string, error) {
	if rep.RunID == "" {
		rep.RunID = NewRunID()
	}
	if rep.Digest == "" {
		rep.Digest = CorpusDigest(rep)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, mode, reference, predicted, overlap, started_at, duration_ms, digest, units, comparisons)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID, rep.Mode, rep.Reference, rep.Predicted, rep.Overlap,
		rep.StartedAt.UTC().Format(time.RFC3339Nano), rep.DurationMS, rep.Digest,
		rep.Units, rep.Comparisons)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, in := range rep.Inputs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inputs (run_id, path, digest, status, annotations, removed) VALUES (?, ?, ?, ?, ?, ?)`,
			rep.RunID, in.Path, in.Digest, in.Status, in.Annotations, in.Removed)
		if err != nil {
			return "", fmt.Errorf("failed to insert input %s: %w", in.Path, err)
		}
	}

	for _, row := range rep.Scores {
		k := row.Key
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scores (run_id, name, pair, type, property, value, kind, reference, predicted, correct)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rep.RunID, row.Name, k.Pair, k.Type, k.Property, k.Value, int(k.Kind),
			row.Reference, row.Predicted, row.Correct)
		if err != nil {
			return "", fmt.Errorf("failed to insert score %s: %w", row.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return rep.RunID, nil
}

// CorpusDigest combines the digests of every input that was read.
func CorpusDigest(rep *report.Report) string {
	var digests []string
	for _, in := range rep.Inputs {
		if in.Digest != "" {
			digests = append(digests, in.Digest)
		}
	}
	if len(digests) == 0 {
		return ""
	}
	return fingerprint.Combine(digests)
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, reference, predicted, overlap, started_at, duration_ms, digest, units, comparisons
		 FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			r                 RunSummary
			predicted, digest sql.NullString
			started           string
			durationMS        int64
		)
		if err := rows.Scan(&r.ID, &r.Mode, &r.Reference, &predicted, &r.Overlap, &started,
			&durationMS, &digest, &r.Units, &r.Comparisons); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Predicted = predicted.String
		r.Digest = digest.String
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %s has bad start time: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Scores returns the stored results of one run.
func (s *Store) Scores(ctx context.Context, runID string) (eval.Results, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pair, type, property, value, kind, reference, predicted, correct
		 FROM scores WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	results := eval.Results{}
	for rows.Next() {
		var (
			pair, property, value sql.NullString
			k                     eval.Key
			kind                  int
			sc                    eval.Scores
		)
		if err := rows.Scan(&pair, &k.Type, &property, &value, &kind,
			&sc.Reference, &sc.Predicted, &sc.Correct); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		k.Pair = pair.String
		k.Property = property.String
		k.Value = value.String
		k.Kind = eval.KeyKind(kind)
		results.Get(k).Update(&sc)
	}
	return results, rows.Err()
}
