package system

import (
	"github.com/younwookim/duel/internal/application/state"
	"github.com/younwookim/duel/internal/domain/entity"
)

// RoundSystem runs the round timer and the reset sequence
type RoundSystem struct {
	tuning *entity.Tuning
	arena  *entity.Arena
}

// NewRoundSystem creates a new round system
func NewRoundSystem(t *entity.Tuning, arena *entity.Arena) *RoundSystem {
	return &RoundSystem{tuning: t, arena: arena}
}

// Update advances the round lifecycle by one frame
func (s *RoundSystem) Update(w *World, events *Events) {
	r := &w.Round
	switch r.Phase {
	case state.RoundIntro:
		r.IntroFramesLeft--
		if r.IntroFramesLeft <= 0 {
			r.IntroFramesLeft = 0
			r.Phase = state.RoundFighting
			events.Emit(RoundStarted{Round: r.Number})
		}

	case state.RoundFighting:
		if winner, over := deathWinner(w); over {
			s.beginReset(w, state.ReasonDeath, winner, events)
			return
		}
		// a zero-length round has no timer
		if r.TotalFrames <= 0 {
			return
		}
		r.FramesLeft--
		if r.FramesLeft <= 0 {
			r.FramesLeft = 0
			s.beginReset(w, state.ReasonTimeout, healthWinner(w), events)
		}

	case state.RoundResetting:
		r.ResetFramesLeft--
		if r.ResetFramesLeft <= 0 {
			s.completeReset(w, events)
		}
	}
}

func (s *RoundSystem) beginReset(w *World, reason state.ResetReason, winner int8, events *Events) {
	r := &w.Round
	r.Phase = state.RoundResetting
	r.ResetFramesLeft = s.tuning.ResetFrames
	r.LastWinner = winner
	if winner != state.NoWinner {
		r.Wins[winner]++
	}
	events.Emit(RoundResetBegan{
		Round:  r.Number,
		Reason: reason,
		Winner: winner,
		Frames: s.tuning.ResetFrames,
	})
}

// completeReset hard resets both players and starts the next round
func (s *RoundSystem) completeReset(w *World, events *Events) {
	sides := SpawnSides(s.arena)
	for i := range w.Players {
		w.Players[i].HardReset(sides[i], s.tuning.Cooldowns)
		w.Bodies[i] = s.arena.Spawns[i]
		w.Health[i] = entity.NewHealth(s.tuning.MaxHealth)
	}

	r := &w.Round
	r.TotalFrames = s.tuning.RoundFrames
	r.Number++
	r.Begin(s.tuning.IntroFrames)

	events.Emit(RoundResetCompleted{Round: r.Number})
	for i := range w.Players {
		p := &w.Players[i]
		events.Emit(AnimationChanged{Player: p.PlayerID, State: p.State, Clip: p.State.Clip()})
	}
}

// deathWinner reports whether someone died and who survived
func deathWinner(w *World) (int8, bool) {
	alive0, alive1 := w.Health[0].IsAlive(), w.Health[1].IsAlive()
	switch {
	case alive0 && alive1:
		return state.NoWinner, false
	case alive0:
		return 0, true
	case alive1:
		return 1, true
	default:
		return state.NoWinner, true
	}
}

// healthWinner picks the player with more health left on timeout
func healthWinner(w *World) int8 {
	h0, h1 := w.Health[0].Current, w.Health[1].Current
	switch {
	case h0 > h1:
		return 0
	case h1 > h0:
		return 1
	default:
		return state.NoWinner
	}
}
