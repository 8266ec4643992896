package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cuberunner/internal/storage"
)

const maxRuns = 100 // Max runs loaded per tab

// RunboardKeyMap defines the key bindings for the run log browser.
type RunboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextTab, k.PrevTab, k.Quit}}
}

// DefaultRunboardKeyMap returns default key bindings.
func DefaultRunboardKeyMap() RunboardKeyMap {
	return RunboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunboardModel browses the run log, one tab per mode.
type RunboardModel struct {
	tabs     []string // Mode names; "" is the all-modes tab
	tab      int
	store    *storage.Store
	runs     []storage.Run
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RunboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewRunboardModel creates a browser over the given modes, starting on the
// all-modes tab.
func NewRunboardModel(store *storage.Store, modes []string, width, height int) RunboardModel {
	m := RunboardModel{
		tabs:   append([]string{""}, modes...),
		store:  store,
		keys:   DefaultRunboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m *RunboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Mode", Width: 10},
		{Title: "Seconds", Width: 10},
		{Title: "Ticks", Width: 8},
		{Title: "Auto", Width: 5},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, tabs and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RunboardModel) loadRuns() {
	m.runs, m.loadErr = nil, nil
	if m.store != nil {
		m.runs, m.loadErr = m.store.TopRuns(m.tabs[m.tab], maxRuns)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		auto := ""
		if r.Autonomous {
			auto = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Mode,
			fmt.Sprintf("%.2f", r.Seconds),
			fmt.Sprintf("%d", r.Ticks),
			auto,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the model.
func (m RunboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m RunboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab - 1 + len(m.tabs)) % len(m.tabs)
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.loadRuns()
		return m, nil
	}

	// Scrolling is handled by the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m RunboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("LONGEST RUNS")))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, name := range m.tabs {
		if name == "" {
			name = "all"
		}
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(tabs, " ")))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RunboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Run log unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set the first one!")
	}
	return m.table.View()
}

// RunRunboard runs the run log browser until the user quits.
func RunRunboard(store *storage.Store, modes []string, width, height int) error {
	p := tea.NewProgram(
		NewRunboardModel(store, modes, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
