package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cuberunner/internal/core"
)

// KeyMap holds the key bindings of the game. It implements help.KeyMap.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Jump        key.Binding
	Resume      key.Binding
	Pause       key.Binding
	Tutorial    key.Binding
	Normal      key.Binding
	Death       key.Binding
	Auto        key.Binding
	SpeedUp     key.Binding
	SpeedDown   key.Binding
	SpawnFaster key.Binding
	SpawnSlower key.Binding
	StepBack    key.Binding
	StepForward key.Binding
	Screenshot  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "steer left")),
		Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "steer right")),
		Jump:        key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "jump")),
		Resume:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "continue")),
		Pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Tutorial:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tutorial")),
		Normal:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "normal")),
		Death:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "death")),
		Auto:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "autopilot")),
		SpeedUp:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "faster")),
		SpeedDown:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "slower")),
		SpawnFaster: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "more cubes")),
		SpawnSlower: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "fewer cubes")),
		StepBack:    key.NewBinding(key.WithKeys(","), key.WithHelp(",", "step back")),
		StepForward: key.NewBinding(key.WithKeys("."), key.WithHelp(".", "step forward")),
		Screenshot:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "screenshot")),
		Help:        key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Quit:        key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Pause, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Resume, k.Pause},
		{k.Tutorial, k.Normal, k.Death, k.Auto},
		{k.SpeedUp, k.SpeedDown, k.SpawnFaster, k.SpawnSlower},
		{k.StepBack, k.StepForward, k.Screenshot, k.Help, k.Quit},
	}
}

// MapKey translates a key message to an action. Steering keys map to
// presses; releases are synthesized by the hold tracker.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		b key.Binding
		a core.Action
	}{
		{k.Quit, core.ActionQuit},
		{k.Left, core.ActionLeftPress},
		{k.Right, core.ActionRightPress},
		{k.Jump, core.ActionJump},
		{k.Resume, core.ActionResume},
		{k.Pause, core.ActionPause},
		{k.Tutorial, core.ActionModeTutorial},
		{k.Normal, core.ActionModeNormal},
		{k.Death, core.ActionModeDeath},
		{k.Auto, core.ActionToggleAuto},
		{k.SpeedUp, core.ActionSpeedUp},
		{k.SpeedDown, core.ActionSpeedDown},
		{k.SpawnFaster, core.ActionSpawnFaster},
		{k.SpawnSlower, core.ActionSpawnSlower},
		{k.StepBack, core.ActionStepBack},
		{k.StepForward, core.ActionStepForward},
		{k.Screenshot, core.ActionScreenshot},
		{k.Help, core.ActionHelp},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			return kb.a
		}
	}
	return core.ActionNone
}
