package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/game"
	"github.com/vovakirdan/neon-snake/internal/imagerender"
	"github.com/vovakirdan/neon-snake/internal/leaderboard"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

const statusTTL = 3 * time.Second

// GameModel runs one game inside a Bubble Tea program.
type GameModel struct {
	env      *Env
	game     *game.Game
	loop     *game.Loop
	renderer *ScreenRenderer
	prompt   *namePrompt
	hook     *leaderboard.Hook // nil without a board
	shots    *imagerender.Renderer
	keys     *KeyMapper

	difficulty string
	baseCfg    *config.SnakeConfig // Last base config handed to the game

	status      string
	statusUntil time.Time

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game in the Ready state. names remembers the
// player's name for the leaderboard and may be nil.
func NewGameModel(env *Env, settings storage.Settings, names leaderboard.NameStore, width, height int) GameModel {
	if width <= 0 || height <= 0 {
		width, height = env.Runtime.ScreenW, env.Runtime.ScreenH
	}

	base := env.Config()
	deps := game.Deps{
		Logger: env.Logger,
		Rand:   env.rand(),
	}
	if env.Audio != nil {
		env.Audio.SetEnabled(settings.Sound)
		deps.Audio = env.Audio
	}
	if env.Store != nil {
		deps.HighScores = storage.HighScoreKeeper{Store: env.Store, Logger: env.Logger}
	}

	prompt := newNamePrompt()
	var (
		hook *leaderboard.Hook
		g    *game.Game
	)
	if env.Board != nil {
		hook = leaderboard.NewHook(env.Board, names, env.Logger)
		hook.SetPrompt(func(score int, done func(string)) {
			// A slow board can answer after the next run started.
			if g.State() == game.StateRunning {
				g.TogglePause()
			}
			prompt.open(score, hook.DefaultName(), done)
		})
		deps.Leaderboard = hook
	}

	renderer := NewScreenRenderer(core.NewScreen(width, height))
	g = game.New(snakeConfig(base, settings.Difficulty), deps)
	loop := game.NewLoop(g, renderer)
	loop.Render()

	return GameModel{
		env:        env,
		game:       g,
		loop:       loop,
		renderer:   renderer,
		prompt:     prompt,
		hook:       hook,
		shots:      imagerender.New(imagerender.DefaultTile),
		keys:       NewKeyMapper(),
		difficulty: settings.Difficulty,
		baseCfg:    &base,
	}
}

// Init starts the frame ticker.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.fps())
}

// fps is the runtime override, or the rate from the game config.
func (m GameModel) fps() int {
	if m.env.Runtime.TickRate > 0 {
		return m.env.Runtime.TickRate
	}
	return m.game.Config().Loop.FPS
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.renderer.Screen().Resize(msg.Width, msg.Height)
		m.loop.Render()
		return m, nil

	case TickMsg:
		m.syncConfig()
		if m.hook != nil {
			m.hook.Poll()
		}
		m.loop.Frame(time.Time(msg))
		return m, tickCmd(m.fps())
	}
	return m, nil
}

// syncConfig hands a reloaded base config to the game. The game applies it
// at the next run start.
func (m *GameModel) syncConfig() {
	base := m.env.Config()
	if m.baseCfg != nil && *m.baseCfg == base {
		return
	}
	m.baseCfg = &base
	m.game.SetConfig(snakeConfig(base, m.difficulty))
	m.env.Logger.Info("config reloaded")
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.active {
		cmd := m.prompt.update(msg)
		m.loop.Render()
		return m, cmd
	}

	state := m.game.State()
	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionScreenshot:
		m.screenshot()

	case core.ActionPause:
		m.game.TogglePause()

	case core.ActionStart:
		if state == game.StateReady || state == game.StateGameOver {
			m.game.Start()
		}

	case core.ActionBack:
		if state != game.StateRunning {
			m.backToMenu = true
			return m, nil
		}

	default:
		if d, ok := action.Direction(); ok {
			m.game.SetDirection(d)
		}
	}

	m.loop.Render()
	return m, nil
}

// screenshot saves the last frame as a PNG.
func (m *GameModel) screenshot() {
	path, err := m.shots.Screenshot(m.env.ScreenshotDir, m.renderer.Last(), time.Now())
	if err != nil {
		m.env.Logger.Warn("screenshot failed", "err", err)
		m.setStatus("Screenshot failed")
		return
	}
	m.env.Logger.Info("screenshot saved", "path", path)
	m.setStatus("Saved " + path)
}

func (m *GameModel) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(statusTTL)
}

// View renders the last drawn frame, or the name prompt while it is open.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.renderer.Screen()
	if m.prompt.active {
		return m.prompt.view(s.Width(), s.Height())
	}
	if m.status != "" && time.Now().Before(m.statusUntil) {
		s.DrawTextCentered(s.Height()-1, m.status, core.ColorGreen)
	}
	return RenderScreen(s)
}

// Close waits for leaderboard work still in flight. A top score whose check
// finishes after the player left is submitted under the default name.
func (m GameModel) Close() {
	if m.hook == nil {
		return
	}
	m.hook.Wait()
	m.hook.Poll()
	if m.prompt.active {
		m.prompt.finish("")
	}
	m.hook.Wait()
}

// Game returns the running game.
func (m GameModel) Game() *game.Game {
	return m.game
}

// IsQuitting reports whether the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked for the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
