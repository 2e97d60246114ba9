package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPlayer() PlayerState {
	return NewPlayerState(0, SideLeft, Cooldowns{Dash: 30, LightAttack: 10, HeavyAttack: 20})
}

func TestNewPlayerState(t *testing.T) {
	p := NewPlayerState(1, SideRight, Cooldowns{Dash: 30, LightAttack: 10, HeavyAttack: 20})

	assert.Equal(t, PlayerID(1), p.PlayerID)
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, Idle, p.Desired)
	assert.Equal(t, SideRight, p.Side)
	assert.Zero(t, p.XVelocity)
	assert.Zero(t, p.YVelocity)
	assert.Equal(t, int32(30), p.Dash.Total)
	assert.False(t, p.Dash.Running())
}

func TestAttemptToTransitionState_Legality(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		desired State
		want    State
	}{
		{"idle to run", Idle, Run, Run},
		{"idle to dash", Idle, Dash, Dash},
		{"run to jump", Run, Jump, Jump},
		{"run to heavy", Run, HeavyAttack, HeavyAttack},
		{"light attack cancels into jump", LightAttack, Jump, Jump},
		{"heavy attack cancels into jump", HeavyAttack, Jump, Jump},
		{"light attack refuses run", LightAttack, Run, LightAttack},
		{"jump refuses light", Jump, LightAttack, Jump},
		{"fall refuses idle", Fall, Idle, Fall},
		{"dash refuses jump", Dash, Jump, Dash},
		{"hit reaction refuses run", TakeLightHit, Run, TakeLightHit},
		{"death refuses idle", Death, Idle, Death},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer()
			p.State = tt.from
			p.RequestTransition(tt.desired)

			changed := p.AttemptToTransitionState()
			assert.Equal(t, tt.want, p.State)
			assert.Equal(t, tt.want != tt.from, changed)
		})
	}
}

func TestForceTransition_BypassesLegality(t *testing.T) {
	p := newTestPlayer()
	p.State = Jump
	p.ForceTransition(Fall)

	assert.True(t, p.StateIsDirty)
	assert.True(t, p.Forced)
	assert.True(t, p.AttemptToTransitionState())
	assert.Equal(t, Fall, p.State)
}

func TestForceTransition_Priority(t *testing.T) {
	t.Run("clip completion does not undo a pending hit", func(t *testing.T) {
		p := newTestPlayer()
		p.State = LightAttack
		p.ForceTransition(TakeHeavyHit)
		p.ForceTransition(Idle)
		assert.Equal(t, TakeHeavyHit, p.Desired)
	})

	t.Run("death overrides a pending hit", func(t *testing.T) {
		p := newTestPlayer()
		p.ForceTransition(TakeLightHit)
		p.ForceTransition(Death)
		assert.Equal(t, Death, p.Desired)
	})

	t.Run("nothing overrides death", func(t *testing.T) {
		p := newTestPlayer()
		p.ForceTransition(Death)
		p.ForceTransition(TakeHeavyHit)
		p.ForceTransition(Idle)
		assert.Equal(t, Death, p.Desired)
	})

	t.Run("equal priority keeps the latest", func(t *testing.T) {
		p := newTestPlayer()
		p.ForceTransition(Fall)
		p.ForceTransition(Idle)
		assert.Equal(t, Idle, p.Desired)
	})

	t.Run("input request does not lower a force", func(t *testing.T) {
		p := newTestPlayer()
		p.RequestTransition(Run)
		p.ForceTransition(Idle)
		assert.True(t, p.Forced)
		assert.Equal(t, Idle, p.Desired)
	})
}

func TestAnimationFinished(t *testing.T) {
	tests := []struct {
		state State
		want  State
	}{
		{Idle, Idle},
		{Run, Run},
		{Jump, Jump},
		{Fall, Fall},
		{LightAttack, Idle},
		{HeavyAttack, Idle},
		{TakeLightHit, Idle},
		{TakeHeavyHit, Idle},
		{Death, Death},
		{Dash, Dash},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			p := newTestPlayer()
			p.State = tt.state
			assert.Equal(t, tt.want, p.AnimationFinished())
		})
	}
}

func TestCanTakeAHit(t *testing.T) {
	p := newTestPlayer()
	assert.True(t, p.CanTakeAHit())

	p.State = TakeLightHit
	assert.False(t, p.CanTakeAHit())

	p.State = Death
	assert.False(t, p.CanTakeAHit())

	p.State = Run
	p.ForceTransition(TakeHeavyHit)
	assert.False(t, p.CanTakeAHit(), "pending reaction blocks a second hit")

	q := newTestPlayer()
	q.ForceTransition(Fall)
	assert.True(t, q.CanTakeAHit())
}

func TestLevelAndAmountDamage(t *testing.T) {
	tun := &Tuning{LightDamage: 2, HeavyDamage: 5}

	tests := []struct {
		state        State
		wantAmount   int32
		wantReaction State
		wantOK       bool
	}{
		{LightAttack, 2, TakeLightHit, true},
		{HeavyAttack, 5, TakeHeavyHit, true},
		{Idle, 0, Idle, false},
		{Dash, 0, Dash, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			p := newTestPlayer()
			p.State = tt.state
			amount, reaction, ok := p.LevelAndAmountDamage(tun)
			assert.Equal(t, tt.wantAmount, amount)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantReaction, reaction)
			}
		})
	}
}

func TestHardReset(t *testing.T) {
	p := NewPlayerState(1, SideRight, Cooldowns{Dash: 30, LightAttack: 10, HeavyAttack: 20})
	p.State = Death
	p.XVelocity = 500
	p.YVelocity = -20
	p.SpriteIndex = 3
	p.HasSpawnedCloud = true
	p.HasLandedHit = true
	p.Dash.Start()
	p.ForceTransition(Death)

	p.HardReset(SideLeft, Cooldowns{Dash: 25, LightAttack: 10, HeavyAttack: 20})

	assert.Equal(t, PlayerID(1), p.PlayerID, "identity survives reset")
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, SideLeft, p.Side)
	assert.Zero(t, p.XVelocity)
	assert.Zero(t, p.YVelocity)
	assert.Zero(t, p.SpriteIndex)
	assert.False(t, p.HasSpawnedCloud)
	assert.False(t, p.StateIsDirty)
	assert.False(t, p.Dash.Running())
	assert.Equal(t, int32(25), p.Dash.Total, "cooldowns come from the current tuning")
}

func TestInputLocked(t *testing.T) {
	p := newTestPlayer()
	assert.False(t, p.InputLocked())

	p.State = Jump
	assert.True(t, p.InputLocked())

	p.State = Run
	p.ForceTransition(Idle)
	assert.True(t, p.InputLocked())
}
