package cuberunner

// JumpPhase is the state of the jump machine.
type JumpPhase int

const (
	JumpIdle JumpPhase = iota
	JumpAscending
	JumpDescending
)

func (p JumpPhase) String() string {
	switch p {
	case JumpAscending:
		return "ascending"
	case JumpDescending:
		return "descending"
	default:
		return "idle"
	}
}

// Jump tracks the vertical offset of the player during a jump arc.
type Jump struct {
	InProgress  bool
	PeakReached bool
	Height      float64
}

// Phase returns the current jump phase.
func (j Jump) Phase() JumpPhase {
	switch {
	case !j.InProgress:
		return JumpIdle
	case j.PeakReached:
		return JumpDescending
	default:
		return JumpAscending
	}
}

// Trigger starts a jump. It is ignored while a jump is in progress.
func (j *Jump) Trigger() bool {
	if j.InProgress {
		return false
	}
	j.InProgress = true
	j.PeakReached = false
	return true
}

// Step advances the arc by one tick and returns the height change.
// The ascent stops short of peak rather than overshooting it; the descent
// snaps to exactly zero once less than one step remains.
func (j *Jump) Step(step, peak float64) float64 {
	if !j.InProgress {
		return 0
	}
	before := j.Height
	if !j.PeakReached {
		if peak-j.Height > step {
			j.Height += step
		} else {
			j.PeakReached = true
		}
	} else {
		if j.Height >= step {
			j.Height -= step
		} else {
			j.Height = 0
			j.InProgress = false
			j.PeakReached = false
		}
	}
	return j.Height - before
}

// Reset lands the player immediately.
func (j *Jump) Reset() {
	*j = Jump{}
}
