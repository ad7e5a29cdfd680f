// Package store persists sweep runs and their BER record tables to SQLite,
// so repeated sweeps can be compared without re-simulating. The simulation
// core never touches this package; the CLI wires it in when a database path
// is configured.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/ber.report/internal/sweep"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run is the stored metadata for one sweep run.
type Run struct {
	RunID        string `json:"run_id"`
	Schemes      string `json:"schemes"` // comma-separated, in sweep order
	BitsPerPoint int    `json:"bits_per_point"`
	Seed         int64  `json:"seed"`
	Points       int    `json:"points"`
	CreatedAt    int64  `json:"created_at"` // unix nanoseconds
}

// Store wraps the SQLite database holding sweep results.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies any
// pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// migrateUp applies all pending migrations from the embedded filesystem.
func (s *Store) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	// Not closed: closing would also close the shared DB connection.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// SaveRun persists a run and its full record table in one transaction and
// returns the generated run ID.
func (s *Store) SaveRun(schemes string, bitsPerPoint int, seed int64, result *sweep.Result) (string, error) {
	runID := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sweep_runs (run_id, schemes, bits_per_point, seed, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, schemes, bitsPerPoint, seed, len(result.Records), time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, rec := range result.Records {
		_, err = tx.Exec(`
			INSERT INTO sweep_records (
				run_id, position, scheme, eb_n0_db,
				simulated_ber, theoretical_ber, error_count, total_bits, low_confidence
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, rec.Scheme, rec.EbN0dB,
			rec.SimulatedBER, rec.TheoreticalBER, rec.ErrorCount, rec.TotalBits, rec.LowConfidence,
		)
		if err != nil {
			return "", fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns all stored runs, newest first.
func (s *Store) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, schemes, bits_per_point, seed, points, created_at
		FROM sweep_runs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Schemes, &r.BitsPerPoint, &r.Seed, &r.Points, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by ID.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, schemes, bits_per_point, seed, points, created_at
		FROM sweep_runs
		WHERE run_id = ?`, runID)

	var r Run
	err := row.Scan(&r.RunID, &r.Schemes, &r.BitsPerPoint, &r.Seed, &r.Points, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", runID)
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return &r, nil
}

// Records returns a run's record table in its original sweep order.
func (s *Store) Records(runID string) ([]sweep.Record, error) {
	rows, err := s.db.Query(`
		SELECT scheme, eb_n0_db, simulated_ber, theoretical_ber, error_count, total_bits, low_confidence
		FROM sweep_records
		WHERE run_id = ?
		ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []sweep.Record
	for rows.Next() {
		var rec sweep.Record
		err := rows.Scan(&rec.Scheme, &rec.EbN0dB, &rec.SimulatedBER, &rec.TheoreticalBER,
			&rec.ErrorCount, &rec.TotalBits, &rec.LowConfidence)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
