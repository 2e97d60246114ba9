package entity

// PlayerState is the per-combatant combat state.
// It is a plain value: copying it is enough to snapshot it for rollback.
type PlayerState struct {
	PlayerID PlayerID

	State   State
	Desired State

	// SpriteIndex drives both the animation frame and the active collider set
	SpriteIndex int32
	// AnimTick counts frames spent on the current sprite frame
	AnimTick int32
	// StateFrames counts frames since the current state was entered
	StateFrames int32

	XVelocity int32
	YVelocity int32

	// RunAxis is the movement axis Run was entered with
	RunAxis int8
	Side    ScreenSide

	IsColliding     bool
	StateIsDirty    bool
	Forced          bool
	HasSpawnedCloud bool
	// HasLandedHit limits an attack to one hit per state entry
	HasLandedHit bool

	Dash        AbilityTimer
	LightAttack AbilityTimer
	HeavyAttack AbilityTimer
}

// NewPlayerState creates an idle combatant with zero velocity
func NewPlayerState(id PlayerID, side ScreenSide, cd Cooldowns) PlayerState {
	return PlayerState{
		PlayerID:    id,
		State:       Idle,
		Desired:     Idle,
		Side:        side,
		Dash:        NewAbilityTimer(cd.Dash),
		LightAttack: NewAbilityTimer(cd.LightAttack),
		HeavyAttack: NewAbilityTimer(cd.HeavyAttack),
	}
}

// HardReset puts the combatant back to its round-start state.
// Only the identity survives.
func (p *PlayerState) HardReset(side ScreenSide, cd Cooldowns) {
	*p = NewPlayerState(p.PlayerID, side, cd)
}

// RequestTransition sets an input-driven desired state.
// It is subject to the legality table in AttemptToTransitionState.
func (p *PlayerState) RequestTransition(s State) {
	p.Desired = s
	p.StateIsDirty = true
}

// forcePriority orders forced requests made within the same frame
func forcePriority(s State) int {
	switch {
	case s == Death:
		return 2
	case s.IsHitReaction():
		return 1
	default:
		return 0
	}
}

// ForceTransition requests a transition that bypasses the legality table
// (integrator, clip completion, hits, death). A pending forced request of
// higher priority is kept: a hit is never undone by a clip ending, and
// nothing undoes Death.
func (p *PlayerState) ForceTransition(s State) {
	if p.Forced && forcePriority(s) < forcePriority(p.Desired) {
		return
	}
	p.Desired = s
	p.StateIsDirty = true
	p.Forced = true
}

// AttemptToTransitionState moves State towards Desired. It is the only place
// State changes. Returns true if State changed.
//
//	Idle, Run                                -> any desired state
//	Jump, Fall                               -> none
//	LightAttack, HeavyAttack                 -> Jump only
//	TakeLightHit, TakeHeavyHit, Death, Dash  -> none
//
// Forced requests are applied unconditionally.
func (p *PlayerState) AttemptToTransitionState() bool {
	initial := p.State
	if p.Forced {
		p.State = p.Desired
		return initial != p.State
	}

	switch p.State {
	case Idle, Run:
		p.State = p.Desired
	case LightAttack, HeavyAttack:
		if p.Desired == Jump {
			p.State = p.Desired
		}
	case Jump, Fall, TakeLightHit, TakeHeavyHit, Death, Dash:
	}
	return initial != p.State
}

// AnimationFinished returns the state to enter once the current clip has
// played a full cycle. Jump leaves through Fall when the integrator sees the
// fighter falling, Dash through its duration, Death never.
func (p *PlayerState) AnimationFinished() State {
	switch p.State {
	case LightAttack, HeavyAttack, TakeLightHit, TakeHeavyHit:
		return Idle
	default:
		return p.State
	}
}

// CanTakeAHit reports whether an incoming hit may force a hit reaction.
// A fighter already reacting, dying, or with a reaction pending cannot be interrupted.
func (p *PlayerState) CanTakeAHit() bool {
	if p.State.IsHitReaction() || p.State == Death {
		return false
	}
	if p.Forced && (p.Desired.IsHitReaction() || p.Desired == Death) {
		return false
	}
	return true
}

// LevelAndAmountDamage returns the damage and the reaction an attack in the
// current state inflicts. ok is false when the state is not an attack.
func (p *PlayerState) LevelAndAmountDamage(t *Tuning) (amount int32, reaction State, ok bool) {
	switch p.State {
	case LightAttack:
		return t.LightDamage, TakeLightHit, true
	case HeavyAttack:
		return t.HeavyDamage, TakeHeavyHit, true
	default:
		return 0, p.State, false
	}
}

// InputLocked reports whether input-driven transitions are evaluated this frame
func (p *PlayerState) InputLocked() bool {
	return p.StateIsDirty || (p.State != Idle && p.State != Run)
}
