package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/neon-snake/internal/storage"
)

type memNames struct {
	mu   sync.Mutex
	name string
	sets int
}

func (m *memNames) PlayerName() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name, nil
}

func (m *memNames) SetPlayerName(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
	m.sets++
	return nil
}

type brokenBoard struct{}

func (brokenBoard) Top(context.Context, storage.Period, int) ([]storage.ScoreEntry, error) {
	return nil, errors.New("down")
}
func (brokenBoard) Submit(context.Context, string, int) (storage.ScoreEntry, error) {
	return storage.ScoreEntry{}, errors.New("down")
}
func (brokenBoard) Rank(context.Context, storage.Period, int) (int, error) {
	return 0, errors.New("down")
}

// slowBoard holds every Top call until release is closed.
type slowBoard struct {
	Board
	release chan struct{}
}

func (b slowBoard) Top(ctx context.Context, period storage.Period, limit int) ([]storage.ScoreEntry, error) {
	<-b.release
	return b.Board.Top(ctx, period, limit)
}

// answer runs a top-score check to completion.
func answer(t *testing.T, h *Hook, score int) bool {
	t.Helper()
	var got []bool
	h.IsTopScore(score, func(top bool) { got = append(got, top) })
	h.Wait()
	if n := h.Poll(); n != 1 || len(got) != 1 {
		t.Fatalf("Poll ran %d callbacks, got answers %v", n, got)
	}
	return got[0]
}

func TestHookIsTopScore(t *testing.T) {
	local, _ := newTestLocal(t)
	h := NewHook(local, nil, quiet)
	ctx := context.Background()

	if !answer(t, h, 1) {
		t.Error("empty board: any score is a top score")
	}
	for i := 1; i <= TopSize; i++ {
		local.Submit(ctx, "p", i*10)
	}
	if answer(t, h, 10) {
		t.Error("tying tenth place is not a top score")
	}
	if !answer(t, h, 15) {
		t.Error("beating tenth place is a top score")
	}

	if answer(t, NewHook(brokenBoard{}, nil, quiet), 999) {
		t.Error("unreadable board should not report a top score")
	}
}

func TestHookIsTopScoreDoesNotBlock(t *testing.T) {
	local, _ := newTestLocal(t)
	board := slowBoard{Board: local, release: make(chan struct{})}
	h := NewHook(board, nil, quiet)

	var got []bool
	start := time.Now()
	h.IsTopScore(10, func(top bool) { got = append(got, top) })
	if took := time.Since(start); took > 100*time.Millisecond {
		t.Fatalf("IsTopScore took %v while the board was stalled", took)
	}
	if n := h.Poll(); n != 0 || len(got) != 0 {
		t.Fatalf("answer delivered before the board replied: %v", got)
	}

	close(board.release)
	h.Wait()
	if n := h.Poll(); n != 1 || len(got) != 1 || !got[0] {
		t.Errorf("after the board replied: Poll ran %d, answers %v", n, got)
	}
	if h.Poll() != 0 {
		t.Error("answers must be delivered once")
	}
}

func TestHookSubmitRemembersName(t *testing.T) {
	local, _ := newTestLocal(t)
	names := &memNames{name: "old"}
	h := NewHook(local, names, quiet)

	h.Submit(40, "  new ")
	h.Submit(50, "new")
	h.Submit(60, "")
	h.Wait()

	if names.name != "new" || names.sets != 1 {
		t.Errorf("name = %q after %d sets, want new after 1", names.name, names.sets)
	}

	top, _ := local.Top(context.Background(), storage.PeriodAllTime, TopSize)
	if len(top) != 3 {
		t.Fatalf("got %d entries, want 3", len(top))
	}
	if top[0].Name != AnonymousName || top[1].Name != "new" {
		t.Errorf("top = %+v", top)
	}
}

func TestHookSubmitFailureIsLogged(t *testing.T) {
	h := NewHook(brokenBoard{}, nil, quiet)
	h.Submit(10, "x")
	h.Wait()
}

func TestHookPrompt(t *testing.T) {
	local, _ := newTestLocal(t)
	h := NewHook(local, nil, quiet)

	var got []string
	h.PromptForName(10, func(name string) { got = append(got, name) })
	if len(got) != 1 || got[0] != "" {
		t.Errorf("without a prompt done should get \"\", got %q", got)
	}

	var asked int
	h.SetPrompt(func(score int, done func(string)) {
		asked = score
		done("typed")
	})
	h.PromptForName(25, func(name string) { got = append(got, name) })
	if asked != 25 || got[1] != "typed" {
		t.Errorf("asked = %d, got = %q", asked, got)
	}
}

func TestHookDefaultName(t *testing.T) {
	local, _ := newTestLocal(t)

	if got := NewHook(local, nil, quiet).DefaultName(); got != AnonymousName {
		t.Errorf("no store: DefaultName() = %q", got)
	}
	if got := NewHook(local, &memNames{}, quiet).DefaultName(); got != AnonymousName {
		t.Errorf("empty store: DefaultName() = %q", got)
	}
	if got := NewHook(local, &memNames{name: "zed"}, quiet).DefaultName(); got != "zed" {
		t.Errorf("DefaultName() = %q, want zed", got)
	}
}
