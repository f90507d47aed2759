package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

const (
	settingSound = iota
	settingDifficulty
	settingBack
	settingCount
)

// SettingsModel edits sound and difficulty.
type SettingsModel struct {
	settings  storage.Settings
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	changed   bool
	done      bool
	quitting  bool
}

// NewSettingsModel edits a copy of s.
func NewSettingsModel(s storage.Settings, width, height int) SettingsModel {
	return SettingsModel{
		settings:  s,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keyMapper.MapKeyToMenuAction(msg); action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = (m.cursor + settingCount - 1) % settingCount
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % settingCount
	case MenuActionBack:
		m.done = true
	case MenuActionSelect, MenuActionLeft, MenuActionRight:
		switch m.cursor {
		case settingSound:
			m.settings.Sound = !m.settings.Sound
			m.changed = true
		case settingDifficulty:
			d := config.ParseDifficulty(m.settings.Difficulty)
			if action == MenuActionLeft {
				d = d.Next().Next()
			} else {
				d = d.Next()
			}
			m.settings.Difficulty = string(d)
			m.changed = true
		case settingBack:
			if action == MenuActionSelect {
				m.done = true
			}
		}
	}
	return m, nil
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	sound := "OFF"
	if m.settings.Sound {
		sound = "ON"
	}
	rows := []string{
		"Sound effects:  " + sound,
		"Difficulty:     " + strings.ToUpper(string(config.ParseDifficulty(m.settings.Difficulty))),
		"Back",
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centerText(titleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")
	for i, row := range rows {
		line := "  " + row
		if i == m.cursor {
			line = selectedStyle.Render("> " + row)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter/Left/Right: Change  |  Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() storage.Settings {
	return m.settings
}

// Changed reports whether anything was edited.
func (m SettingsModel) Changed() bool {
	return m.changed
}

// Done reports whether the player left the screen.
func (m SettingsModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user wants to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
