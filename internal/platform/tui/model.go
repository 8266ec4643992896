package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cuberunner/internal/core"
	"github.com/vovakirdan/cuberunner/internal/registry"
	"github.com/vovakirdan/cuberunner/internal/sim"
	"github.com/vovakirdan/cuberunner/internal/storage"
)

// holdCheckMsg polls the hold tracker for keys whose repeats stopped.
type holdCheckMsg time.Time

// Options configure a play session.
type Options struct {
	Runtime       core.RuntimeConfig
	Store         *storage.Store // nil disables the run log
	ConfigHash    string         // stored with every run
	ScreenshotDir string         // empty means ~/.cuberunner/screenshots
	Logger        *log.Logger    // nil discards
	Now           func() time.Time
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game        registry.Game
	driver      *sim.Driver
	sched       *TickScheduler
	hold        *holdTracker
	keys        KeyMap
	help        help.Model
	renderer    *Renderer
	screen      *core.Screen
	opts        Options
	log         *log.Logger
	width       int
	height      int
	holdPolling bool
	quitting    bool
	runSaved    bool // Whether the current crash has been written to the run log
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sched := NewTickScheduler()
	m := Model{
		game:     game,
		driver:   sim.NewDriver(sched, game, opts.Runtime.TickRate),
		sched:    sched,
		hold:     newHoldTracker(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		renderer: NewRenderer(),
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		opts:     opts,
		log:      logger,
		width:    opts.Runtime.ScreenW,
		height:   opts.Runtime.ScreenH,
	}
	m.layout()
	return m
}

// Init resets the game and arms the tick timer.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.opts.Runtime)
	m.driver.Start()
	return m.sched.Cmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		cmd := m.sched.Fire(msg)
		m.recordRun()
		return m, cmd

	case holdCheckMsg:
		m.apply(m.hold.Expire(time.Time(msg))...)
		if m.hold.Holding() {
			return m, holdCheck()
		}
		m.holdPolling = false
		return m, nil
	}

	return m, nil
}

func holdCheck() tea.Cmd {
	return tea.Tick(holdPoll, func(t time.Time) tea.Msg {
		return holdCheckMsg(t)
	})
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch a := m.keys.MapKey(msg); a {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		m.driver.Stop()
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	case core.ActionLeftPress, core.ActionRightPress:
		d := dirLeft
		if a == core.ActionRightPress {
			d = dirRight
		}
		m.apply(m.hold.Press(d, m.opts.Now())...)
		if !m.holdPolling {
			m.holdPolling = true
			cmds = append(cmds, holdCheck())
		}
	default:
		m.apply(a)
	}

	// Pause, resume and mode switches change whether the timer should run.
	m.driver.Sync()
	m.recordRun()
	cmds = append(cmds, m.sched.Cmd())
	return m, tea.Batch(cmds...)
}

func (m *Model) apply(actions ...core.Action) {
	for _, a := range actions {
		m.game.Handle(a)
	}
}

// layout sizes the game screen to the window minus the help area.
func (m *Model) layout() {
	m.help.Width = m.width
	helpLines := lipgloss.Height(m.help.View(m.keys))
	m.screen.Resize(max(m.width, 0), max(m.height-helpLines, 0))
}

// recordRun writes a finished run to the run log once per crash.
func (m *Model) recordRun() {
	st := m.game.Status()
	if !st.Crashed {
		m.runSaved = false
		return
	}
	if m.runSaved {
		return
	}
	m.runSaved = true
	if m.opts.Store == nil {
		return
	}

	_, err := m.opts.Store.SaveRun(storage.Run{
		Mode:       st.Mode,
		Seconds:    st.Score,
		Ticks:      int64(st.Ticks),
		Autonomous: st.Auto,
		ConfigHash: m.opts.ConfigHash,
	})
	if err != nil {
		m.log.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.log.Warn("screenshot skipped", "error", err)
			return
		}
		dir = filepath.Join(home, ".cuberunner", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := m.opts.Now().Format("20060102_150405.000")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderer.Render(m.screen),
		m.help.View(m.keys),
	)
}

// Run starts the Bubble Tea program for the game and blocks until it exits.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(NewModel(game, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
