package cuberunner

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestCollisionRequiresAllAxes(t *testing.T) {
	h := NewHitbox(0.22, 3.5)
	camera := mgl64.Vec3{0, 0.25, 4}
	runner := mgl64.Vec3{0, 0, 0}
	hit := mgl64.Vec3{0.05, 0.06, 3.45}

	assert.True(t, h.Collides(camera, runner, hit))

	tests := []struct {
		name string
		o    mgl64.Vec3
	}{
		{"lateral", mgl64.Vec3{0.2, 0.06, 3.45}},
		{"vertical", mgl64.Vec3{0.05, 0.2, 3.45}},
		{"depth", mgl64.Vec3{0.05, 0.06, 3.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, h.Collides(camera, runner, tt.o))
		})
	}
}

func TestCollisionUsesRunnerHeight(t *testing.T) {
	h := NewHitbox(0.22, 3.5)
	camera := mgl64.Vec3{0, 0.55, 4}
	o := mgl64.Vec3{0, 0.06, 3.5}

	assert.False(t, h.Collides(camera, mgl64.Vec3{0, 0.3, 0}, o))
	assert.True(t, h.Collides(camera, mgl64.Vec3{0, 0.1, 0}, o))
}

func TestHitboxThresholds(t *testing.T) {
	h := NewHitbox(0.22, 3.5)
	assert.InDelta(t, 0.155563, h.Lateral, 1e-6)
	assert.InDelta(t, 0.11, h.Vertical, 1e-12)
	assert.InDelta(t, 0.11, h.Depth, 1e-12)
	assert.InDelta(t, 0.5, h.Distance(mgl64.Vec3{0, 0, 3}), 1e-12)
}
