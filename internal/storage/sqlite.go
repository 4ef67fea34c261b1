// Package storage provides SQLite-based persistence for level completions
// and the resume point of each level pack.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// Completion represents one cleared level.
type Completion struct {
	ID         int64
	PackID     string
	Level      int
	Moves      int
	Eliminated int
	Duration   time.Duration
	CreatedAt  time.Time
}

// LevelProgress aggregates the completions of one level.
type LevelProgress struct {
	Level        int
	Completions  int
	BestMoves    int
	BestDuration time.Duration
	LastPlayed   time.Time
}

// PackStats contains aggregated statistics for a pack.
type PackStats struct {
	PackID          string
	Completions     int
	LevelsCompleted int
	TotalMoves      int64
	AvgMoves        float64
	LastPlayed      time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			eliminated INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_pack ON completions(pack_id, level);
		CREATE INDEX IF NOT EXISTS idx_completions_best ON completions(pack_id, level, moves);

		CREATE TABLE IF NOT EXISTS resume (
			pack_id TEXT PRIMARY KEY,
			level INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// RecordCompletion stores a cleared level.
// Returns the ID of the inserted record.
func (s *Store) RecordCompletion(c Completion) (int64, error) {
	if c.PackID == "" || c.Level < 1 {
		return 0, fmt.Errorf("storage: invalid completion %q level %d", c.PackID, c.Level)
	}

	result, err := s.db.Exec(
		`INSERT INTO completions (pack_id, level, moves, eliminated, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		c.PackID, c.Level, c.Moves, c.Eliminated, c.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestMoves returns the fewest moves any completion of the level took.
// ok is false if the level was never completed.
func (s *Store) BestMoves(packID string, level int) (moves int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(moves) FROM completions WHERE pack_id = ? AND level = ?",
		packID, level,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best moves: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// CompletedLevels returns the distinct completed level numbers in order.
func (s *Store) CompletedLevels(packID string) ([]int, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT level FROM completions WHERE pack_id = ? ORDER BY level",
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completed levels: %w", err)
	}
	defer rows.Close()

	var levels []int
	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels = append(levels, level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return levels, nil
}

// Progress returns per-level aggregates for every completed level of a pack.
func (s *Store) Progress(packID string) ([]LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MIN(moves), MIN(duration_ms), MAX(created_at)
		 FROM completions
		 WHERE pack_id = ?
		 GROUP BY level
		 ORDER BY level`,
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var progress []LevelProgress
	for rows.Next() {
		var p LevelProgress
		var bestMS int64
		var lastPlayed any
		if err := rows.Scan(&p.Level, &p.Completions, &p.BestMoves, &bestMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		p.BestDuration = time.Duration(bestMS) * time.Millisecond
		p.LastPlayed = parseTime(lastPlayed)
		progress = append(progress, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return progress, nil
}

// RecentCompletions retrieves the most recent completions of a pack.
func (s *Store) RecentCompletions(packID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, pack_id, level, moves, eliminated, duration_ms, created_at
		 FROM completions
		 WHERE pack_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		packID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&c.ID, &c.PackID, &c.Level, &c.Moves, &c.Eliminated, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Duration = time.Duration(durationMS) * time.Millisecond
		c.CreatedAt = parseTime(createdAt)
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SaveResume remembers the level to continue from for a pack.
func (s *Store) SaveResume(packID string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO resume (pack_id, level, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(pack_id) DO UPDATE SET level = excluded.level, updated_at = CURRENT_TIMESTAMP`,
		packID, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save resume point: %w", err)
	}
	return nil
}

// ResumeLevel returns the saved resume level for a pack, or 0 if none.
func (s *Store) ResumeLevel(packID string) (int, error) {
	var level int
	err := s.db.QueryRow("SELECT level FROM resume WHERE pack_id = ?", packID).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query resume point: %w", err)
	}
	return level, nil
}

// ClearProgress deletes all completions and the resume point of a pack.
func (s *Store) ClearProgress(packID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM completions WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM resume WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot clear resume point: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// GetPackStats retrieves aggregated statistics for a pack.
func (s *Store) GetPackStats(packID string) (*PackStats, error) {
	stats := &PackStats{PackID: packID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level), COALESCE(SUM(moves), 0), COALESCE(AVG(moves), 0), MAX(created_at)
		 FROM completions WHERE pack_id = ?`,
		packID,
	).Scan(&stats.Completions, &stats.LevelsCompleted, &stats.TotalMoves, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
