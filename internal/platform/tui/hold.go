package tui

import (
	"time"

	"github.com/vovakirdan/cuberunner/internal/core"
)

// Terminals report key presses and auto-repeats but never key releases.
// The hold tracker treats a steering key as held until its repeats stop.
const (
	holdInitial = 550 * time.Millisecond // covers the typical auto-repeat delay
	holdRepeat  = 120 * time.Millisecond
	holdPoll    = 40 * time.Millisecond
)

type direction int

const (
	dirLeft direction = iota
	dirRight
)

var (
	pressAction   = [...]core.Action{dirLeft: core.ActionLeftPress, dirRight: core.ActionRightPress}
	releaseAction = [...]core.Action{dirLeft: core.ActionLeftRelease, dirRight: core.ActionRightRelease}
)

type holdTracker struct {
	initial   time.Duration
	repeat    time.Duration
	held      [2]bool
	repeating [2]bool
	lastSeen  [2]time.Time
}

func newHoldTracker() *holdTracker {
	return &holdTracker{initial: holdInitial, repeat: holdRepeat}
}

// Press records a key event for d and returns the actions to apply. Only
// one key repeats at a time, so pressing one direction releases the other.
func (h *holdTracker) Press(d direction, now time.Time) []core.Action {
	var out []core.Action
	other := 1 - d
	if h.held[other] {
		h.held[other] = false
		out = append(out, releaseAction[other])
	}
	if h.held[d] {
		h.repeating[d] = true
		h.lastSeen[d] = now
		return out
	}
	h.held[d] = true
	h.repeating[d] = false
	h.lastSeen[d] = now
	return append(out, pressAction[d])
}

// Expire releases keys whose repeats have stopped.
func (h *holdTracker) Expire(now time.Time) []core.Action {
	var out []core.Action
	for d := dirLeft; d <= dirRight; d++ {
		if !h.held[d] {
			continue
		}
		timeout := h.initial
		if h.repeating[d] {
			timeout = h.repeat
		}
		if now.Sub(h.lastSeen[d]) > timeout {
			h.held[d] = false
			out = append(out, releaseAction[d])
		}
	}
	return out
}

// ReleaseAll drops every held key.
func (h *holdTracker) ReleaseAll() []core.Action {
	var out []core.Action
	for d := dirLeft; d <= dirRight; d++ {
		if h.held[d] {
			h.held[d] = false
			out = append(out, releaseAction[d])
		}
	}
	return out
}

// Holding reports whether any key is held.
func (h *holdTracker) Holding() bool {
	return h.held[dirLeft] || h.held[dirRight]
}
