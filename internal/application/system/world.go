package system

import (
	"github.com/younwookim/duel/internal/application/state"
	"github.com/younwookim/duel/internal/domain/entity"
)

// World is the mutable part of a simulation snapshot that systems update.
// Index i of every array belongs to the player with PlayerID i.
type World struct {
	Players [entity.PlayerCount]entity.PlayerState
	Bodies  [entity.PlayerCount]entity.Body
	Health  [entity.PlayerCount]entity.Health
	Round   state.Round
}

// NewWorld creates the world of the first round: both players idle at their spawns
func NewWorld(t *entity.Tuning, arena *entity.Arena) World {
	var w World
	sides := SpawnSides(arena)
	for i := range w.Players {
		w.Players[i] = entity.NewPlayerState(entity.PlayerID(i), sides[i], t.Cooldowns)
		w.Bodies[i] = arena.Spawns[i]
		w.Health[i] = entity.NewHealth(t.MaxHealth)
	}
	w.Round = state.NewRound(t.RoundFrames, t.IntroFrames)
	return w
}
