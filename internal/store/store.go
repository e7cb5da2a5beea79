// Package store keeps a history of evaluation runs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dkfz-mic/adeval/internal/metrics"
	"github.com/dkfz-mic/adeval/internal/models"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

const schema = `
	CREATE TABLE IF NOT EXISTS evaluation_runs (
		run_id            TEXT PRIMARY KEY,
		segmentation_csv  TEXT NOT NULL,
		ground_truth_csv  TEXT,
		output_path       TEXT NOT NULL,
		cases             INTEGER NOT NULL,
		positives         INTEGER NOT NULL,
		roc_auc           REAL NOT NULL,
		youden_threshold  REAL,
		sensitivity       REAL,
		specificity       REAL,
		sweep_positions   INTEGER NOT NULL,
		has_stanford      INTEGER NOT NULL,
		created_at        INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_evaluation_runs_created ON evaluation_runs (created_at DESC);`

// Run is one recorded evaluation.
type Run struct {
	RunID           string       `json:"run_id"`
	SegmentationCSV string       `json:"segmentation_csv"`
	GroundTruthCSV  string       `json:"ground_truth_csv,omitempty"`
	OutputPath      string       `json:"output_path"`
	Cases           int          `json:"cases"`
	Positives       int          `json:"positives"`
	AUC             float64      `json:"roc_auc"`
	YoudenThreshold *float64     `json:"youden_threshold,omitempty"`
	Sensitivity     metrics.Rate `json:"sensitivity"`
	Specificity     metrics.Rate `json:"specificity"`
	SweepPositions  int          `json:"sweep_positions"`
	HasStanford     bool         `json:"has_stanford"`
	CreatedAt       int64        `json:"created_at"`
}

// Created returns CreatedAt as a time.
func (r *Run) Created() time.Time {
	return time.Unix(0, r.CreatedAt)
}

// NewRun summarizes res for the run history.
func NewRun(res *models.EvaluationResult, segmentationCSV, groundTruthCSV, outputPath string) *Run {
	run := &Run{
		SegmentationCSV: segmentationCSV,
		GroundTruthCSV:  groundTruthCSV,
		OutputPath:      outputPath,
		Cases:           res.CaseCount(),
		Positives:       res.Dataset.Positives,
		AUC:             res.ROC.AUC,
		SweepPositions:  len(res.Detection),
		HasStanford:     res.HasStanford(),
	}
	if p := res.YoudenPoint(); p != nil {
		threshold := p.Threshold
		run.YoudenThreshold = &threshold
		run.Sensitivity = p.Performance.Sensitivity
		run.Specificity = p.Performance.Specificity
	}
	return run
}

// Store persists runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps :memory: databases shared across calls.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert records run. An empty RunID is replaced by a new UUID and a zero
// CreatedAt by the current time.
func (s *Store) Insert(ctx context.Context, run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluation_runs (
			run_id, segmentation_csv, ground_truth_csv, output_path,
			cases, positives, roc_auc, youden_threshold, sensitivity, specificity,
			sweep_positions, has_stanford, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.SegmentationCSV, nullString(run.GroundTruthCSV), run.OutputPath,
		run.Cases, run.Positives, run.AUC, nullFloat(run.YoudenThreshold),
		nullRate(run.Sensitivity), nullRate(run.Specificity),
		run.SweepPositions, run.HasStanford, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

const selectRun = `
	SELECT run_id, segmentation_csv, ground_truth_csv, output_path,
	       cases, positives, roc_auc, youden_threshold, sensitivity, specificity,
	       sweep_positions, has_stanford, created_at
	FROM evaluation_runs`

// List returns up to limit runs, newest first. A limit <= 0 returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	query := selectRun + ` ORDER BY created_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns a single run by ID.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var r Run
	var gt sql.NullString
	var youden, sens, spec sql.NullFloat64
	err := sc.Scan(
		&r.RunID, &r.SegmentationCSV, &gt, &r.OutputPath,
		&r.Cases, &r.Positives, &r.AUC, &youden, &sens, &spec,
		&r.SweepPositions, &r.HasStanford, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan run row: %w", err)
	}
	r.GroundTruthCSV = gt.String
	if youden.Valid {
		r.YoudenThreshold = &youden.Float64
	}
	r.Sensitivity = rateFrom(sens)
	r.Specificity = rateFrom(spec)
	return &r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullRate(r metrics.Rate) sql.NullFloat64 {
	v, ok := r.Value()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func rateFrom(n sql.NullFloat64) metrics.Rate {
	if !n.Valid {
		return metrics.Undefined
	}
	return metrics.Defined(n.Float64)
}
