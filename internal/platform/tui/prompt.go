package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-snake/internal/leaderboard"
)

var promptStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("201")).
	Padding(1, 3).
	Align(lipgloss.Center)

// namePrompt asks for a leaderboard name after a top score. While active it
// takes every key.
type namePrompt struct {
	input  textinput.Model
	active bool
	score  int
	done   func(name string)
}

func newNamePrompt() *namePrompt {
	ti := textinput.New()
	ti.CharLimit = leaderboard.MaxNameLen
	ti.Width = leaderboard.MaxNameLen + 2
	ti.Prompt = "> "
	return &namePrompt{input: ti}
}

// open shows the prompt. placeholder is the name used when the field is left empty.
func (p *namePrompt) open(score int, placeholder string, done func(name string)) {
	p.active = true
	p.score = score
	p.done = done
	p.input.Placeholder = placeholder
	p.input.SetValue("")
	p.input.Focus()
}

// finish closes the prompt and hands name to the waiting callback.
func (p *namePrompt) finish(name string) {
	done := p.done
	p.active = false
	p.done = nil
	p.input.Blur()
	if done != nil {
		done(name)
	}
}

func (p *namePrompt) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		p.finish(strings.TrimSpace(p.input.Value()))
		return nil
	case tea.KeyEsc:
		p.finish("")
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *namePrompt) view(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")).Render("NEW TOP SCORE!"),
		fmt.Sprintf("Score: %d", p.score),
		"",
		"Enter your name:",
		p.input.View(),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("Enter: save  Esc: skip"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, promptStyle.Render(body))
}
