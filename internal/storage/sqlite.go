// Package storage provides SQLite-based persistence for fetched puzzles.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/money-machine/internal/puzzle"
)

// Store manages the SQLite database connection for the puzzle history.
type Store struct {
	db *sql.DB
}

// PuzzleEntry is one fetched puzzle as recorded in the history.
type PuzzleEntry struct {
	RowID int64
	puzzle.Puzzle
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS puzzles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			puzzle_id TEXT NOT NULL,
			title TEXT NOT NULL,
			email TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_puzzles_email ON puzzles(email);
		CREATE INDEX IF NOT EXISTS idx_puzzles_fetched_at ON puzzles(fetched_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePuzzle records a fetched puzzle.
// Returns the row ID of the inserted record.
func (s *Store) SavePuzzle(p puzzle.Puzzle) (int64, error) {
	fetchedAt := p.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO puzzles (puzzle_id, title, email, difficulty, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Email, p.Difficulty, fetchedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save puzzle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentPuzzles retrieves the most recently fetched puzzles, newest first.
// An empty email lists puzzles for everyone.
func (s *Store) RecentPuzzles(email string, limit int) ([]PuzzleEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, puzzle_id, title, email, difficulty, fetched_at
		 FROM puzzles`
	args := []any{}
	if email != "" {
		query += ` WHERE email = ?`
		args = append(args, email)
	}
	query += ` ORDER BY fetched_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query puzzles: %w", err)
	}
	defer rows.Close()

	var entries []PuzzleEntry
	for rows.Next() {
		var e PuzzleEntry
		var fetchedAt int64
		if err := rows.Scan(&e.RowID, &e.ID, &e.Title, &e.Email, &e.Difficulty, &fetchedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.FetchedAt = time.UnixMilli(fetchedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PuzzleCount returns how many puzzles have been fetched.
func (s *Store) PuzzleCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM puzzles").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count puzzles: %w", err)
	}
	return n, nil
}

// ClearPuzzles removes the whole puzzle history.
func (s *Store) ClearPuzzles() error {
	if _, err := s.db.Exec("DELETE FROM puzzles"); err != nil {
		return fmt.Errorf("storage: cannot clear puzzles: %w", err)
	}
	return nil
}
