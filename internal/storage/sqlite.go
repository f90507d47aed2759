// Package storage provides SQLite-based persistence for scores and settings.
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

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single leaderboard record.
type ScoreEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	DayKey    string    `json:"day"`
	WeekKey   string    `json:"week"`
	CreatedAt time.Time `json:"created_at"`
}

// Period selects which slice of the board to read.
type Period string

const (
	PeriodAllTime Period = "all-time"
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
)

// ParsePeriod converts user input to a Period.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodAllTime, PeriodDaily, PeriodWeekly:
		return p, nil
	case "":
		return PeriodAllTime, nil
	default:
		return "", fmt.Errorf("storage: unknown period %q", s)
	}
}

// Next cycles all-time -> daily -> weekly -> all-time.
func (p Period) Next() Period {
	switch p {
	case PeriodAllTime:
		return PeriodDaily
	case PeriodDaily:
		return PeriodWeekly
	default:
		return PeriodAllTime
	}
}

// DayKey returns the daily board key for t, e.g. "2026-10-18".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekKey returns the weekly board key for t, e.g. "2026-W42".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
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
	// SQLite allows one writer; the leaderboard server writes from many handlers.
	db.SetMaxOpenConns(1)

	// Test connection
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			day_key TEXT NOT NULL,
			week_key TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_day ON scores(day_key, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_week ON scores(week_key, score DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
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

// SaveScore records a score made at the given time.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(name string, score int, at time.Time) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (name, score, day_key, week_key, created_at) VALUES (?, ?, ?, ?, ?)",
		name, score, DayKey(at), WeekKey(at), at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// periodFilter returns the WHERE clause and argument selecting period at t.
func periodFilter(period Period, at time.Time) (string, []any) {
	switch period {
	case PeriodDaily:
		return "WHERE day_key = ?", []any{DayKey(at)}
	case PeriodWeekly:
		return "WHERE week_key = ?", []any{WeekKey(at)}
	default:
		return "", nil
	}
}

// TopScores retrieves the top N scores of a period containing at.
// Results are ordered by score descending, earlier entries first on ties.
func (s *Store) TopScores(period Period, at time.Time, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	where, args := periodFilter(period, at)
	rows, err := s.db.Query(
		`SELECT id, name, score, day_key, week_key, created_at
		 FROM scores `+where+`
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		append(args, limit)...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.DayKey, &e.WeekKey, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Rank returns the 1-based position score would take in the period.
func (s *Store) Rank(period Period, at time.Time, score int) (int, error) {
	where, args := periodFilter(period, at)
	cond := "WHERE score > ?"
	if where != "" {
		cond = where + " AND score > ?"
	}

	var above int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scores "+cond, append(args, score)...).Scan(&above)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return above + 1, nil
}

// Prune keeps only the best keep scores.
func (s *Store) Prune(keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, id ASC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prune scores: %w", err)
	}
	return nil
}

// ClearScores deletes every score.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all recorded runs.
type Stats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores`,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// Setting returns a stored value. ok is false when the key is unset.
func (s *Store) Setting(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores a value, replacing any previous one.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
