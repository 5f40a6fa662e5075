package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Prompt asks for a single value. Enter accepts, esc or ctrl+c cancels.
type Prompt struct {
	input     Input
	styles    Styles
	title     string
	done      bool
	cancelled bool
}

// NewPrompt creates a focused prompt around input
func NewPrompt(title string, input Input) Prompt {
	input.Focus()
	return Prompt{input: input, styles: DefaultStyles(), title: title}
}

// Input returns the wrapped input
func (p Prompt) Input() Input {
	return p.input
}

// Cancelled reports whether the prompt was left without accepting
func (p Prompt) Cancelled() bool {
	return p.cancelled
}

// Init implements tea.Model
func (p Prompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (p Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			p.done = true
			return p, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View implements tea.Model
func (p Prompt) View() string {
	if p.done || p.cancelled {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render(p.title))
	sb.WriteString("\n")
	sb.WriteString(p.input.View(p.styles))
	sb.WriteString("\n")
	sb.WriteString(p.styles.Help.Render("enter: accept • esc: cancel"))
	return sb.String()
}
