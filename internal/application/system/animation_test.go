package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/duel/internal/domain/entity"
)

func TestAnimationSystem_TicksPerFrame(t *testing.T) {
	tun := testTuning()
	tun.TicksPerFrame[entity.Idle] = 3
	sys := NewAnimationSystem(tun, testColliders())
	p := newIdlePlayer()

	var indices []int32
	for i := 0; i < 7; i++ {
		sys.Advance(&p)
		indices = append(indices, p.SpriteIndex)
	}

	assert.Equal(t, []int32{0, 0, 1, 1, 1, 2, 2}, indices)
}

func TestAnimationSystem_WrapForcesFinishedState(t *testing.T) {
	tests := []struct {
		state      entity.State
		wantForced bool
		wantNext   entity.State
	}{
		{entity.Idle, false, entity.Idle},
		{entity.LightAttack, true, entity.Idle},
		{entity.TakeHeavyHit, true, entity.Idle},
		{entity.Death, false, entity.Death},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			sys := NewAnimationSystem(testTuning(), testColliders())
			p := newIdlePlayer()
			p.State = tt.state
			p.SpriteIndex = 3

			wrapped := sys.Advance(&p)

			assert.True(t, wrapped)
			assert.Equal(t, int32(0), p.SpriteIndex)
			assert.Equal(t, tt.wantForced, p.Forced)
			if tt.wantForced {
				assert.Equal(t, tt.wantNext, p.Desired)
			}
		})
	}
}

func TestAnimationSystem_WrapKeepsPendingHit(t *testing.T) {
	sys := NewAnimationSystem(testTuning(), testColliders())
	p := newIdlePlayer()
	p.State = entity.HeavyAttack
	p.SpriteIndex = 3
	p.ForceTransition(entity.TakeLightHit)

	sys.Advance(&p)

	assert.Equal(t, entity.TakeLightHit, p.Desired)
}
