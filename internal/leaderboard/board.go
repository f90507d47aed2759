// Package leaderboard keeps the high score tables: a local SQLite board, an
// HTTP client for a shared board with local fallback, and the server that
// hosts a shared board.
package leaderboard

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-snake/internal/storage"
)

const (
	// TopSize is how many places count as a top score.
	TopSize = 10
	// LocalKeep is how many entries the local board retains.
	LocalKeep = 100
	// MaxNameLen bounds player names in runes.
	MaxNameLen = 20
	// AnonymousName is used when the player gives no name.
	AnonymousName = "Anonymous"
)

// Board is a score table. Implementations must be safe for concurrent use.
type Board interface {
	Top(ctx context.Context, period storage.Period, limit int) ([]storage.ScoreEntry, error)
	Submit(ctx context.Context, name string, score int) (storage.ScoreEntry, error)
	Rank(ctx context.Context, period storage.Period, score int) (int, error)
}

// CleanName trims name and clamps it to MaxNameLen runes. Empty becomes AnonymousName.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return AnonymousName
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = string([]rune(name)[:MaxNameLen])
	}
	return name
}

// qualifies reports whether score beats the last of the top entries.
func qualifies(top []storage.ScoreEntry, score int) bool {
	if len(top) < TopSize {
		return true
	}
	return score > top[TopSize-1].Score
}

// Local is a board stored in the local SQLite database.
type Local struct {
	store *storage.Store
	log   *log.Logger
	now   func() time.Time
}

// NewLocal creates a board over store.
func NewLocal(store *storage.Store, logger *log.Logger) *Local {
	return &Local{store: store, log: logger, now: time.Now}
}

// Top returns the best scores of the current period.
func (l *Local) Top(_ context.Context, period storage.Period, limit int) ([]storage.ScoreEntry, error) {
	return l.store.TopScores(period, l.now(), limit)
}

// Submit records a score and trims the table to LocalKeep entries.
func (l *Local) Submit(_ context.Context, name string, score int) (storage.ScoreEntry, error) {
	at := l.now()
	name = CleanName(name)
	id, err := l.store.SaveScore(name, score, at)
	if err != nil {
		return storage.ScoreEntry{}, err
	}
	if err := l.store.Prune(LocalKeep); err != nil {
		l.log.Warn("cannot prune local leaderboard", "err", err)
	}
	return storage.ScoreEntry{
		ID:        id,
		Name:      name,
		Score:     score,
		DayKey:    storage.DayKey(at),
		WeekKey:   storage.WeekKey(at),
		CreatedAt: at.UTC().Truncate(time.Second),
	}, nil
}

// Rank returns the place score would take in the current period.
func (l *Local) Rank(_ context.Context, period storage.Period, score int) (int, error) {
	return l.store.Rank(period, l.now(), score)
}
