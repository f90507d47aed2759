package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-snake/internal/storage"
)

// NameStore remembers the player's name between sessions.
type NameStore interface {
	PlayerName() (string, error)
	SetPlayerName(name string) error
}

// PromptFunc asks the player for a name and calls done with the answer.
// An empty answer means the prompt was skipped.
type PromptFunc func(score int, done func(name string))

// Hook connects a finished run to a Board. Board calls run in the background
// so a slow remote board never stalls the game loop. Answers to IsTopScore
// are queued and handed back by Poll on the goroutine that owns the game.
type Hook struct {
	board   Board
	names   NameStore
	log     *log.Logger
	timeout time.Duration

	mu     sync.Mutex
	prompt PromptFunc
	ready  []func() // Answered top-score checks waiting for Poll

	wg sync.WaitGroup
}

// NewHook creates a hook. names may be nil.
func NewHook(board Board, names NameStore, logger *log.Logger) *Hook {
	return &Hook{
		board:   board,
		names:   names,
		log:     logger,
		timeout: 5 * time.Second,
	}
}

// SetPrompt installs the name prompt. Without one every top score is
// submitted under the default name.
func (h *Hook) SetPrompt(p PromptFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prompt = p
}

// IsTopScore checks in the background whether score would enter the
// all-time top ten. result runs from the next Poll after the check ends.
func (h *Hook) IsTopScore(score int, result func(top bool)) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		top := h.checkTop(score)

		h.mu.Lock()
		h.ready = append(h.ready, func() { result(top) })
		h.mu.Unlock()
	}()
}

func (h *Hook) checkTop(score int) bool {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	top, err := h.board.Top(ctx, storage.PeriodAllTime, TopSize)
	if err != nil {
		h.log.Warn("cannot read leaderboard", "err", err)
		return false
	}
	return qualifies(top, score)
}

// Poll runs the callbacks of finished top-score checks and returns how many ran.
func (h *Hook) Poll() int {
	h.mu.Lock()
	ready := h.ready
	h.ready = nil
	h.mu.Unlock()

	for _, fn := range ready {
		fn()
	}
	return len(ready)
}

// PromptForName forwards to the installed prompt.
func (h *Hook) PromptForName(score int, done func(name string)) {
	h.mu.Lock()
	p := h.prompt
	h.mu.Unlock()

	if p == nil {
		done("")
		return
	}
	p(score, done)
}

// Submit records the score in the background and remembers a new name.
func (h *Hook) Submit(score int, name string) {
	name = CleanName(name)
	if name != AnonymousName && h.names != nil {
		if stored, _ := h.names.PlayerName(); stored != name {
			if err := h.names.SetPlayerName(name); err != nil {
				h.log.Warn("cannot save player name", "err", err)
			}
		}
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		entry, err := h.board.Submit(ctx, name, score)
		if err != nil {
			h.log.Error("score submission failed", "score", score, "name", name, "err", err)
			return
		}
		h.log.Info("score submitted", "score", entry.Score, "name", entry.Name)
	}()
}

// DefaultName returns the remembered name or AnonymousName.
func (h *Hook) DefaultName() string {
	if h.names == nil {
		return AnonymousName
	}
	name, err := h.names.PlayerName()
	if err != nil {
		h.log.Warn("cannot read player name", "err", err)
	}
	return CleanName(name)
}

// Wait blocks until background checks and submissions finish. Answers still
// need a Poll.
func (h *Hook) Wait() {
	h.wg.Wait()
}
