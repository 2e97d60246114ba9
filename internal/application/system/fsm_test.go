package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

func newTestStateSystem() (*StateSystem, *entity.Tuning) {
	tun := testTuning()
	return NewStateSystem(tun, NewAnimationSystem(tun, testColliders())), tun
}

func newIdlePlayer() entity.PlayerState {
	return entity.NewPlayerState(0, entity.SideLeft, testTuning().Cooldowns)
}

func TestStateSystem_IdleToRun(t *testing.T) {
	sys, tun := newTestStateSystem()
	p := newIdlePlayer()
	var events Events

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: 1}, &events)

	assert.Equal(t, entity.Run, p.State)
	assert.Equal(t, tun.PlayerSpeed, p.XVelocity)
	assert.False(t, p.StateIsDirty, "dirty flag cleared at end of step")

	changed := eventsOf[AnimationChanged](events)
	require.Len(t, changed, 1)
	assert.Equal(t, "run", changed[0].Clip)
}

func TestStateSystem_RunToJumpKeepsHorizontalVelocity(t *testing.T) {
	sys, tun := newTestStateSystem()
	p := newIdlePlayer()
	var events Events

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: 1}, &events)
	require.Equal(t, entity.Run, p.State)

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: 1, Jump: true}, &events)

	assert.Equal(t, entity.Jump, p.State)
	assert.Equal(t, tun.JumpImpulse, p.YVelocity)
	assert.Equal(t, tun.PlayerSpeed, p.XVelocity)
}

func TestStateSystem_RunReentersOnAxisChange(t *testing.T) {
	sys, tun := newTestStateSystem()
	p := newIdlePlayer()
	var events Events

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: 1}, &events)
	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: 1}, &events)
	assert.Equal(t, int32(1), p.SpriteIndex, "holding the same axis does not restart the clip")

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: -1}, &events)
	assert.Equal(t, entity.Run, p.State)
	assert.Equal(t, -tun.PlayerSpeed, p.XVelocity)
	assert.Equal(t, int32(0), p.SpriteIndex)

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{}, &events)
	assert.Equal(t, entity.Idle, p.State)
	assert.Zero(t, p.XVelocity)
}

func TestStateSystem_InputPriority(t *testing.T) {
	tests := []struct {
		name string
		in   input.Snapshot
		want entity.State
	}{
		{"move", input.Snapshot{LeftRight: -1}, entity.Run},
		{"jump beats move", input.Snapshot{LeftRight: -1, Jump: true}, entity.Jump},
		{"light beats jump", input.Snapshot{Jump: true, Light: true}, entity.LightAttack},
		{"heavy beats light", input.Snapshot{Light: true, Heavy: true}, entity.HeavyAttack},
		{"dash beats everything", input.Snapshot{LeftRight: 1, Jump: true, Light: true, Heavy: true, Dash: true}, entity.Dash},
		{"up/down alone does nothing", input.Snapshot{UpDown: 1}, entity.Idle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, _ := newTestStateSystem()
			p := newIdlePlayer()
			var events Events
			sys.UpdatePlayer(&p, entity.Body{}, tt.in, &events)
			assert.Equal(t, tt.want, p.State)
		})
	}
}

func TestStateSystem_AbilityGating(t *testing.T) {
	sys, _ := newTestStateSystem()
	p := newIdlePlayer()
	var events Events

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{Light: true}, &events)
	require.Equal(t, entity.LightAttack, p.State)
	require.True(t, p.LightAttack.Running())

	// four sprite frames at one tick each, then back to idle
	for i := 0; i < 4; i++ {
		sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{}, &events)
	}
	require.Equal(t, entity.Idle, p.State)
	require.True(t, p.LightAttack.Running(), "cooldown outlasts the clip")

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{Light: true}, &events)
	assert.Equal(t, entity.Idle, p.State, "light attack is gated while its timer runs")

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{Light: true, Heavy: true}, &events)
	assert.Equal(t, entity.HeavyAttack, p.State, "a gated button does not mask a lower one")
}

func TestStateSystem_DashDirectionAndExpiry(t *testing.T) {
	t.Run("neutral dash goes forward", func(t *testing.T) {
		sys, tun := newTestStateSystem()
		p := entity.NewPlayerState(1, entity.SideRight, tun.Cooldowns)
		var events Events
		sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{Dash: true}, &events)
		assert.Equal(t, entity.Dash, p.State)
		assert.Equal(t, -tun.DashSpeed, p.XVelocity)
	})

	t.Run("dash follows the held axis", func(t *testing.T) {
		sys, tun := newTestStateSystem()
		p := newIdlePlayer()
		var events Events
		sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{Dash: true, LeftRight: -1}, &events)
		assert.Equal(t, -tun.DashSpeed, p.XVelocity)
	})

	t.Run("dash ends after its duration", func(t *testing.T) {
		sys, tun := newTestStateSystem()
		p := newIdlePlayer()
		var events Events
		sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{Dash: true}, &events)

		for i := int32(1); i < tun.DashDuration; i++ {
			sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{}, &events)
		}
		assert.Equal(t, entity.Dash, p.State)

		sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{}, &events)
		assert.Equal(t, entity.Idle, p.State)
		assert.Zero(t, p.XVelocity)
		assert.True(t, p.Dash.Running(), "cooldown keeps running after the dash")
	})
}

func TestStateSystem_ForcedHitAppliesNextStep(t *testing.T) {
	sys, tun := newTestStateSystem()
	p := newIdlePlayer()
	var events Events

	// set by collision late in the previous frame
	p.ForceTransition(entity.TakeLightHit)

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: 1}, &events)

	assert.Equal(t, entity.TakeLightHit, p.State, "input does not override a pending hit")
	assert.Equal(t, tun.LightHitSpeed*entity.SideLeft.BackDirection(), p.XVelocity)
	assert.False(t, p.Forced)
}

func TestStateSystem_SpecialSpawnsOneCloudPerPress(t *testing.T) {
	sys, tun := newTestStateSystem()
	p := newIdlePlayer()
	body := entity.Body{X: 300 * px, Y: 0}
	var events Events

	sys.UpdatePlayer(&p, body, input.Snapshot{Special: true}, &events)
	sys.UpdatePlayer(&p, body, input.Snapshot{Special: true}, &events)

	clouds := eventsOf[CloudSpawned](events)
	require.Len(t, clouds, 1)
	assert.Equal(t, body.X+tun.CloudOffsetX, clouds[0].X)
	assert.Equal(t, tun.CloudOffsetY, clouds[0].Y)
	assert.True(t, p.HasSpawnedCloud)

	sys.UpdatePlayer(&p, body, input.Snapshot{}, &events)
	assert.False(t, p.HasSpawnedCloud, "release clears the latch")

	sys.UpdatePlayer(&p, body, input.Snapshot{Special: true}, &events)
	assert.Len(t, eventsOf[CloudSpawned](events), 2)
}

func TestStateSystem_SpecialOnlyWhenIdle(t *testing.T) {
	sys, _ := newTestStateSystem()
	p := newIdlePlayer()
	var events Events

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: 1}, &events)
	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{LeftRight: 1, Special: true}, &events)

	assert.Empty(t, eventsOf[CloudSpawned](events))
}

func TestStateSystem_UpdateIgnoresInputOutsideFighting(t *testing.T) {
	tun := testTuning()
	tun.IntroFrames = 10
	w := NewWorld(tun, testArena())
	sys := NewStateSystem(tun, NewAnimationSystem(tun, testColliders()))
	var events Events

	sys.Update(&w, [2]input.Snapshot{{LeftRight: 1}, {Heavy: true}}, &events)

	assert.Equal(t, entity.Idle, w.Players[0].State)
	assert.Equal(t, entity.Idle, w.Players[1].State)
	assert.Empty(t, events)
}

func TestStateSystem_TimersTickOncePerFrame(t *testing.T) {
	sys, _ := newTestStateSystem()
	p := newIdlePlayer()
	var events Events

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{Heavy: true}, &events)
	require.Equal(t, int32(0), p.HeavyAttack.Current)

	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{}, &events)
	sys.UpdatePlayer(&p, entity.Body{}, input.Snapshot{}, &events)
	assert.Equal(t, int32(2), p.HeavyAttack.Current)
	assert.Equal(t, int32(2), p.StateFrames)
}
