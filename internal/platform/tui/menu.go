package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ModeChoice is one entry of the mode picker.
type ModeChoice struct {
	Name   string // Returned on selection, e.g. "normal"
	Title  string
	Detail string // Shown dimmed next to the title
}

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var menuKeys = menuKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
	Select: key.NewBinding(key.WithKeys("enter", " ", "space")),
	Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c", "q")),
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2a94fd"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f52a4c"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ModePicker lets the user choose the start mode before playing.
type ModePicker struct {
	choices  []ModeChoice
	cursor   int
	width    int
	height   int
	selected string
	quitting bool
}

// NewModePicker creates a picker with the cursor on the initial choice.
func NewModePicker(choices []ModeChoice, initial string, width, height int) ModePicker {
	m := ModePicker{choices: choices, width: width, height: height}
	for i, c := range choices {
		if c.Name == initial {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m ModePicker) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, menuKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, menuKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, menuKeys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case key.Matches(msg, menuKeys.Select):
			if len(m.choices) > 0 {
				m.selected = m.choices[m.cursor].Name
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the mode list.
func (m ModePicker) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.center(menuTitleStyle.Render("C U B E   R U N N E R")))
	b.WriteString("\n\n")
	b.WriteString(m.center("Select game mode:"))
	b.WriteString("\n\n")

	for i, c := range m.choices {
		cursor := "  "
		title := fmt.Sprintf("%-10s", c.Title)
		if i == m.cursor {
			cursor = menuCursorStyle.Render("> ")
			title = menuCursorStyle.Render(title)
		}
		line := cursor + title
		if c.Detail != "" {
			line += " " + menuDimStyle.Render(c.Detail)
		}
		b.WriteString(m.center(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.center(menuDimStyle.Render("Enter: Select  |  Esc: Quit")))
	return b.String()
}

func (m ModePicker) center(s string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

// Selected returns the chosen mode name, or "" if the user quit.
func (m ModePicker) Selected() string {
	return m.selected
}

// RunModePicker shows the picker and returns the chosen mode name. An empty
// name means the user quit.
func RunModePicker(choices []ModeChoice, initial string, width, height int) (string, error) {
	p := tea.NewProgram(NewModePicker(choices, initial, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := finalModel.(ModePicker)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
