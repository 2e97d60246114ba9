package entity

// PlayerCount is the number of combatants in a match
const PlayerCount = 2

// PlayerID is a stable combatant index (0 or 1), used to pick the input vector
type PlayerID uint8

// Opponent returns the other combatant's id
func (id PlayerID) Opponent() PlayerID {
	return 1 - id
}

// Arena holds the static layout of the fighting stage in internal units.
// Y grows upwards; a fighter standing on the floor has Y == FloorY.
type Arena struct {
	FloorY   int32
	HasWalls bool
	MinX     int32
	MaxX     int32
	Spawns   [PlayerCount]Body
}

// ClampX keeps an X position between the arena walls
func (a *Arena) ClampX(x int32) int32 {
	if !a.HasWalls {
		return x
	}
	if x < a.MinX {
		return a.MinX
	}
	if x > a.MaxX {
		return a.MaxX
	}
	return x
}

// Cooldowns holds ability timer lengths in frames
type Cooldowns struct {
	Dash        int32
	LightAttack int32
	HeavyAttack int32
}

// Tuning holds the gameplay constants of a match.
// Speeds are in internal units per frame, durations in frames.
type Tuning struct {
	PlayerSpeed   int32
	DashSpeed     int32
	JumpImpulse   int32
	Gravity       int32
	PushbackSpeed int32
	LightHitSpeed int32
	HeavyHitSpeed int32

	LightDamage int32
	HeavyDamage int32
	MaxHealth   int32

	DashDuration int32
	Cooldowns    Cooldowns

	RoundFrames int32
	IntroFrames int32
	ResetFrames int32

	// TicksPerFrame is how many simulation frames each sprite frame is shown
	TicksPerFrame [StateCount]int32

	CloudOffsetX int32
	CloudOffsetY int32
}

// AnimationTicks returns the sprite frame duration of a state (at least 1)
func (t *Tuning) AnimationTicks(s State) int32 {
	if !s.Valid() || t.TicksPerFrame[s] <= 0 {
		return 1
	}
	return t.TicksPerFrame[s]
}
