package system

import (
	"github.com/younwookim/duel/internal/application/state"
	"github.com/younwookim/duel/internal/domain/entity"
)

// Event is something the simulation tells its collaborators (renderer, audio,
// session). Events never feed back into the simulation.
type Event interface {
	isEvent()
}

// AnimationChanged is emitted when a player enters a state
type AnimationChanged struct {
	Player entity.PlayerID
	State  entity.State
	Clip   string
}

func (AnimationChanged) isEvent() {}

// FacingChanged is emitted when a player switches screen side
type FacingChanged struct {
	Player entity.PlayerID
	Side   entity.ScreenSide
}

func (FacingChanged) isEvent() {}

// CloudSpawned is emitted when a player uses the special ability.
// The renderer decides draw depth (local player behind, remote in front).
type CloudSpawned struct {
	Player entity.PlayerID
	X, Y   int32 // internal units
}

func (CloudSpawned) isEvent() {}

// Hit is emitted when an attack lands
type Hit struct {
	Attacker  entity.PlayerID
	Defender  entity.PlayerID
	Damage    int32
	Reaction  entity.State
	Remaining int32
}

func (Hit) isEvent() {}

// Died is emitted when a hit is lethal
type Died struct {
	Player entity.PlayerID
}

func (Died) isEvent() {}

// RoundStarted is emitted when the intro countdown ends
type RoundStarted struct {
	Round int32
}

func (RoundStarted) isEvent() {}

// RoundResetBegan is emitted once when a round ends.
// Frames is the length of the reset sequence, for the curtain animation.
type RoundResetBegan struct {
	Round  int32
	Reason state.ResetReason
	Winner int8 // state.NoWinner on a draw
	Frames int32
}

func (RoundResetBegan) isEvent() {}

// RoundResetCompleted is emitted when both players are back at their spawns
type RoundResetCompleted struct {
	Round int32
}

func (RoundResetCompleted) isEvent() {}

// Events collects the events of one frame in emission order
type Events []Event

// Emit appends an event
func (e *Events) Emit(ev Event) {
	*e = append(*e, ev)
}
