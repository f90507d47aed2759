package game

import (
	"github.com/charmbracelet/log"
)

// Cue identifies a fire-and-forget audio/visual event.
type Cue int

const (
	CueTurn     Cue = iota // Move committed with a new direction
	CueEat                 // Food eaten
	CueTwist               // Twist applied
	CueTeleport            // Head went through a portal
	CueGameOver            // Run ended
	CueStart               // Run started
)

func (c Cue) String() string {
	switch c {
	case CueTurn:
		return "turn"
	case CueEat:
		return "eat"
	case CueTwist:
		return "twist"
	case CueTeleport:
		return "teleport"
	case CueGameOver:
		return "game_over"
	case CueStart:
		return "start"
	default:
		return "unknown"
	}
}

// Renderer draws one frame. It must not retain the View's slices past the call.
type Renderer interface {
	Render(View)
}

// Audio plays cues. Implementations must not block.
type Audio interface {
	Play(Cue)
}

// HighScores persists the best score across runs.
type HighScores interface {
	Load() int
	Save(score int)
}

// Leaderboard receives finished runs with a positive score. Every method is
// called from the goroutine that drives the game and must return promptly.
type Leaderboard interface {
	// IsTopScore checks whether score would enter the all-time top 10 and
	// calls result with the answer, possibly later. result must run on the
	// goroutine that drives the game.
	IsTopScore(score int, result func(top bool))
	// PromptForName asks the player for a name and calls done with it,
	// possibly later. An empty name means the prompt was skipped.
	PromptForName(score int, done func(name string))
	// Submit records the score. Failures are the implementation's concern.
	Submit(score int, name string)
	// DefaultName returns the stored player name.
	DefaultName() string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

// Render calls f(v).
func (f RendererFunc) Render(v View) { f(v) }

// guard runs a collaborator call, logging instead of propagating a panic.
func guard(logger *log.Logger, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("hook panicked", "hook", hook, "panic", r)
		}
	}()
	fn()
}
