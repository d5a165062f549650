package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"memprobe/internal/config"
	"memprobe/internal/domain"
)

// HistoryStore keeps run metadata in MySQL so results survive across
// machines and the history command can compare runs over time.
type HistoryStore struct {
	config *config.Config
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(cfg *config.Config) *HistoryStore {
	return &HistoryStore{config: cfg}
}

// HistoryEntry is one recorded run.
type HistoryEntry struct {
	ID         int64
	Meta       domain.RunMeta
	RecordedAt time.Time
}

func (hs *HistoryStore) open() (*sql.DB, error) {
	db, err := sql.Open("mysql", hs.config.GetHistoryDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	return db, nil
}

// ensureSchema creates the runs table if it does not exist.
func (hs *HistoryStore) ensureSchema(db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS memprobe_runs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		total_cases INT NOT NULL,
		passed_cases INT NOT NULL,
		failed_cases INT NOT NULL,
		errored_cases INT NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		workers INT NOT NULL,
		memory_budget BIGINT NOT NULL,
		recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}

// Record stores one run's metadata.
func (hs *HistoryStore) Record(meta domain.RunMeta) error {
	db, err := hs.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := hs.ensureSchema(db); err != nil {
		return err
	}

	query := `INSERT INTO memprobe_runs
		(total_cases, passed_cases, failed_cases, errored_cases, duration_seconds, workers, memory_budget)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = db.Exec(query,
		meta.TotalCases,
		meta.PassedCases,
		meta.FailedCases,
		meta.ErroredCases,
		meta.DurationSeconds,
		meta.Workers,
		meta.MemoryBudget,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (hs *HistoryStore) List(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	db, err := hs.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := hs.ensureSchema(db); err != nil {
		return nil, err
	}

	query := `SELECT id, total_cases, passed_cases, failed_cases, errored_cases,
		duration_seconds, workers, memory_budget, recorded_at
		FROM memprobe_runs ORDER BY id DESC LIMIT ?`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		err := rows.Scan(
			&e.ID,
			&e.Meta.TotalCases,
			&e.Meta.PassedCases,
			&e.Meta.FailedCases,
			&e.Meta.ErroredCases,
			&e.Meta.DurationSeconds,
			&e.Meta.Workers,
			&e.Meta.MemoryBudget,
			&e.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
