// Package store provides SQLite-based persistence for mergebench.
// It holds the result table: merge scenarios and the per-tool outcomes
// recorded by the external test-running harness.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store represents the SQLite database store
type Store struct {
	db *sql.DB
}

// New creates a new store connection
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the database schema
func (s *Store) Initialize() error {
	schema := `
	-- Merge scenarios (commit tuples under evaluation)
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		repository TEXT NOT NULL,
		base_sha TEXT NOT NULL,
		left_sha TEXT NOT NULL,
		right_sha TEXT NOT NULL,
		merge_sha TEXT NOT NULL,
		branch_name TEXT
	);

	-- Per (scenario, tool) outcomes from the test harness
	CREATE TABLE IF NOT EXISTS outcomes (
		scenario_id TEXT NOT NULL,
		tool TEXT NOT NULL,
		state TEXT NOT NULL,
		fingerprint TEXT,
		run_time REAL DEFAULT 0,
		PRIMARY KEY (scenario_id, tool),
		FOREIGN KEY (scenario_id) REFERENCES scenarios(id)
	);

	-- Run metadata
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT
	);

	-- Indexes
	CREATE INDEX IF NOT EXISTS idx_outcomes_tool ON outcomes(tool);
	CREATE INDEX IF NOT EXISTS idx_scenarios_repo ON scenarios(repository);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// DB returns the underlying database connection for advanced queries
func (s *Store) DB() *sql.DB {
	return s.db
}

// GetValue gets a value from the key-value store
func (s *Store) GetValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetValue sets a value in the key-value store
func (s *Store) SetValue(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = ?",
		key, value, value,
	)
	return err
}
