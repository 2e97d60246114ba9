package system

import (
	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

// StateSystem runs the per-frame state machine protocol of both players
type StateSystem struct {
	tuning *entity.Tuning
	anim   *AnimationSystem
}

// NewStateSystem creates a new state system
func NewStateSystem(t *entity.Tuning, anim *AnimationSystem) *StateSystem {
	return &StateSystem{tuning: t, anim: anim}
}

// Update steps both players in id order. Outside RoundFighting input is
// treated as neutral.
func (s *StateSystem) Update(w *World, inputs [entity.PlayerCount]input.Snapshot, events *Events) {
	fighting := w.Round.Fighting()
	for i := range w.Players {
		in := inputs[i]
		if !fighting {
			in = input.Snapshot{}
		}
		s.UpdatePlayer(&w.Players[i], w.Bodies[i], in, events)
	}
}

// UpdatePlayer runs one frame of the protocol for a single player
func (s *StateSystem) UpdatePlayer(p *entity.PlayerState, body entity.Body, in input.Snapshot, events *Events) {
	p.Dash.Tick()
	p.LightAttack.Tick()
	p.HeavyAttack.Tick()
	p.StateFrames++

	s.anim.Advance(p)

	if p.State == entity.Dash && p.StateFrames >= s.tuning.DashDuration {
		p.ForceTransition(entity.Idle)
	}

	if !p.InputLocked() {
		s.handleInput(p, in)
	}

	s.handleSpecial(p, body, in, events)

	requested := p.StateIsDirty
	changed := p.AttemptToTransitionState()
	if changed || (requested && p.State == p.Desired) {
		s.enter(p, events)
	}

	p.StateIsDirty = false
	p.Forced = false
}

// handleInput maps input to a requested state.
// Later checks win: move < jump < light < heavy < dash.
func (s *StateSystem) handleInput(p *entity.PlayerState, in input.Snapshot) {
	target := entity.Idle
	if in.LeftRight != 0 {
		target = entity.Run
	}
	if in.Jump {
		target = entity.Jump
	}
	if in.Light && !p.LightAttack.Running() {
		target = entity.LightAttack
	}
	if in.Heavy && !p.HeavyAttack.Running() {
		target = entity.HeavyAttack
	}
	if in.Dash && !p.Dash.Running() {
		target = entity.Dash
	}

	if target == p.State && (target != entity.Run || in.LeftRight == p.RunAxis) {
		return
	}
	p.RunAxis = in.LeftRight
	p.RequestTransition(target)
}

// handleSpecial spawns one cloud per press while standing idle
func (s *StateSystem) handleSpecial(p *entity.PlayerState, body entity.Body, in input.Snapshot, events *Events) {
	if !in.Special {
		p.HasSpawnedCloud = false
		return
	}
	if p.State != entity.Idle || p.HasSpawnedCloud {
		return
	}
	p.HasSpawnedCloud = true
	events.Emit(CloudSpawned{
		Player: p.PlayerID,
		X:      body.X + s.tuning.CloudOffsetX*p.Side.Mirror(),
		Y:      body.Y + s.tuning.CloudOffsetY,
	})
}

// enter runs the entry actions of the current state
func (s *StateSystem) enter(p *entity.PlayerState, events *Events) {
	t := s.tuning
	p.SpriteIndex = 0
	p.AnimTick = 0
	p.StateFrames = 0

	switch p.State {
	case entity.Idle, entity.Death:
		p.XVelocity = 0
	case entity.Run:
		p.XVelocity = t.PlayerSpeed * int32(p.RunAxis)
	case entity.Jump:
		p.YVelocity = t.JumpImpulse
	case entity.LightAttack:
		p.XVelocity = 0
		p.LightAttack.Start()
		p.HasLandedHit = false
	case entity.HeavyAttack:
		p.XVelocity = 0
		p.HeavyAttack.Start()
		p.HasLandedHit = false
	case entity.Dash:
		axis := int32(p.RunAxis)
		if axis == 0 {
			axis = p.Side.Forward()
		}
		p.XVelocity = t.DashSpeed * axis
		p.Dash.Start()
	case entity.TakeLightHit:
		p.XVelocity = t.LightHitSpeed * p.Side.BackDirection()
	case entity.TakeHeavyHit:
		p.XVelocity = t.HeavyHitSpeed * p.Side.BackDirection()
	case entity.Fall:
	}

	events.Emit(AnimationChanged{Player: p.PlayerID, State: p.State, Clip: p.State.Clip()})
}
