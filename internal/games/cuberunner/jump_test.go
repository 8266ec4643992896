package cuberunner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpFullCycle(t *testing.T) {
	const step, peak = 0.1, 0.72
	var j Jump
	require.Equal(t, JumpIdle, j.Phase())
	require.True(t, j.Trigger())
	assert.Equal(t, JumpAscending, j.Phase())

	sawDescent := false
	total := 0.0
	for i := 0; i < 100 && j.InProgress; i++ {
		total += j.Step(step, peak)
		require.GreaterOrEqual(t, j.Height, 0.0)
		require.LessOrEqual(t, j.Height, peak)
		if j.Phase() == JumpDescending {
			sawDescent = true
		}
	}

	assert.True(t, sawDescent)
	assert.Equal(t, JumpIdle, j.Phase())
	assert.Equal(t, 0.0, j.Height)
	assert.False(t, j.InProgress)
	assert.False(t, j.PeakReached)
	assert.InDelta(t, 0.0, total, 1e-12)
}

func TestJumpStopsShortOfPeak(t *testing.T) {
	var j Jump
	j.Trigger()
	maxHeight := 0.0
	for j.InProgress {
		j.Step(0.1, 0.72)
		if j.Height > maxHeight {
			maxHeight = j.Height
		}
	}
	assert.InDelta(t, 0.7, maxHeight, 1e-9)
}

func TestJumpTriggerIgnoredMidArc(t *testing.T) {
	var j Jump
	j.Trigger()
	j.Step(0.1, 0.72)
	j.Step(0.1, 0.72)

	assert.False(t, j.Trigger())
	assert.InDelta(t, 0.2, j.Height, 1e-12)
	assert.Equal(t, JumpAscending, j.Phase())
}

func TestJumpStepWhileIdle(t *testing.T) {
	var j Jump
	assert.Equal(t, 0.0, j.Step(0.1, 0.72))
	assert.Equal(t, JumpIdle, j.Phase())
}
