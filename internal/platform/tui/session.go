package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-snake/internal/leaderboard"
)

// Start selects the first screen of a session.
type Start int

const (
	StartMenu Start = iota
	StartGame
	StartScores
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
	screenSettings
)

// SessionModel manages the full session flow: menu -> game/scores/settings -> menu.
// It is the top-level model both locally and over SSH.
type SessionModel struct {
	env    *Env
	names  leaderboard.NameStore
	width  int
	height int
	start  Start

	current  screenKind
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	settings SettingsModel
	quitting bool
}

// NewSessionModel creates a session. names may be nil.
func NewSessionModel(env *Env, names leaderboard.NameStore, start Start, width, height int) SessionModel {
	if width <= 0 || height <= 0 {
		width, height = env.Runtime.ScreenW, env.Runtime.ScreenH
	}
	m := SessionModel{
		env:    env,
		names:  names,
		width:  width,
		height: height,
		start:  start,
	}
	switch start {
	case StartGame:
		m.openGame()
	case StartScores:
		m.openScores()
	default:
		m.openMenu()
	}
	return m
}

func (m *SessionModel) openMenu() {
	hi := 0
	if m.env.Store != nil {
		hi, _ = m.env.Store.HighScore()
	}
	m.current = screenMenu
	m.menu = NewMenuModel(m.width, m.height, hi)
}

func (m *SessionModel) openGame() tea.Cmd {
	gm := NewGameModel(m.env, m.env.Settings(), m.names, m.width, m.height)
	m.game = &gm
	m.current = screenGame
	return gm.Init()
}

func (m *SessionModel) openScores() {
	m.current = screenScores
	m.scores = NewScoreboardModel(m.env.Board, m.width, m.height)
}

func (m *SessionModel) openSettings() {
	m.current = screenSettings
	m.settings = NewSettingsModel(m.env.Settings(), m.width, m.height)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.current == screenGame && m.game != nil {
		return m.game.Init()
	}
	return nil
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenSettings:
		return m.updateSettings(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}
	if m.menu.IsQuitting() {
		return m.quit()
	}

	switch m.menu.Chosen() {
	case ChoicePlay:
		return m, m.openGame()
	case ChoiceScores:
		m.openScores()
	case ChoiceSettings:
		m.openSettings()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.game == nil {
		m.openMenu()
		return m, nil
	}
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		return m.quit()
	}
	if m.game.BackToMenu() {
		m.game.Close()
		m.game = nil
		m.openMenu()
		// The pending tick still arrives; the menu ignores it.
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}
	if m.scores.IsQuitting() {
		return m.quit()
	}
	if m.scores.IsGoingBack() {
		if m.start == StartScores {
			return m.quit()
		}
		m.openMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.settings.Update(msg)
	if sm, ok := next.(SettingsModel); ok {
		m.settings = sm
	}
	if m.settings.IsQuitting() {
		return m.quit()
	}
	if m.settings.Done() {
		if m.settings.Changed() {
			m.env.SaveSettings(m.settings.Settings())
		}
		m.openMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scores.View()
	case screenSettings:
		return m.settings.View()
	}
	return m.menu.View()
}

// Close waits for background work of the active game.
func (m SessionModel) Close() {
	if m.game != nil {
		m.game.Close()
	}
}

// Run starts a local session on the terminal.
func Run(env *Env, names leaderboard.NameStore, start Start) error {
	model := NewSessionModel(env, names, start, env.Runtime.ScreenW, env.Runtime.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Close()
	}
	return err
}
