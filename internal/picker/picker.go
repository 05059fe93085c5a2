// Package picker is the interactive candidate selector: a small terminal
// list with a filter line, rendered on stderr so stdout stays clean for
// scripted output.
package picker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"openwith/internal/assoc"
)

// ErrCancelled is returned when the user quits without choosing.
var ErrCancelled = errors.New("selection cancelled")

// KeyMap defines the picker keybindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	defaultMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220"))

	assocMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

const pageSize = 10

type model struct {
	candidates []assoc.Candidate
	visible    []int
	cursor     int
	filter     textinput.Model
	keys       KeyMap
	title      string
	choice     int
}

func newModel(candidates []assoc.Candidate, title string) model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "> "
	ti.Focus()

	m := model{
		candidates: candidates,
		filter:     ti,
		keys:       DefaultKeyMap(),
		title:      title,
		choice:     -1,
	}
	m.refilter()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if len(m.visible) > 0 {
				m.choice = m.visible[m.cursor]
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.cursor -= pageSize
			if m.cursor < 0 {
				m.cursor = 0
			}
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.cursor += pageSize
			if m.cursor >= len(m.visible) {
				m.cursor = len(m.visible) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *model) refilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, c := range m.candidates {
		if query == "" ||
			strings.Contains(strings.ToLower(c.Name()), query) ||
			strings.Contains(strings.ToLower(c.ID()), query) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(commentStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	start := 0
	if m.cursor >= pageSize {
		start = m.cursor - pageSize + 1
	}
	end := start + pageSize
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for row := start; row < end; row++ {
		c := m.candidates[m.visible[row]]

		cursor := "  "
		if row == m.cursor {
			cursor = cursorStyle.Render("▶ ")
		}

		mark := "  "
		switch {
		case c.IsDefault:
			mark = defaultMarkStyle.Render("★ ")
		case c.XdgAssociated:
			mark = assocMarkStyle.Render("• ")
		}

		label := c.Name()
		if c.Action != nil {
			label = "  ↳ " + label
		}
		line := cursor + mark + label
		if c.Entry.Comment != "" && c.Action == nil {
			line += commentStyle.Render("  " + c.Entry.Comment)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"%d/%d  ↑/↓ move · enter open · esc cancel", len(m.visible), len(m.candidates))))
	b.WriteString("\n")
	return b.String()
}

// Run shows the picker and returns the index of the chosen candidate in
// the original slice. ErrCancelled is returned when the user aborts.
func Run(candidates []assoc.Candidate, title string) (int, error) {
	p := tea.NewProgram(newModel(candidates, title), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("picker failed: %w", err)
	}
	m := final.(model)
	if m.choice < 0 {
		return -1, ErrCancelled
	}
	return m.choice, nil
}
