package system

import "github.com/younwookim/duel/internal/domain/entity"

// SideSystem keeps both players facing each other
type SideSystem struct{}

// NewSideSystem creates a new side system
func NewSideSystem() *SideSystem {
	return &SideSystem{}
}

// Update assigns SideLeft to the player with the lower X.
// Equal positions keep the previous sides.
func (s *SideSystem) Update(w *World, events *Events) {
	a, b := w.Bodies[0].X, w.Bodies[1].X
	if a == b {
		return
	}

	sides := [entity.PlayerCount]entity.ScreenSide{entity.SideLeft, entity.SideRight}
	if a > b {
		sides = [entity.PlayerCount]entity.ScreenSide{entity.SideRight, entity.SideLeft}
	}

	for i := range w.Players {
		p := &w.Players[i]
		if p.Side == sides[i] {
			continue
		}
		p.Side = sides[i]
		events.Emit(FacingChanged{Player: p.PlayerID, Side: p.Side})
	}
}

// SpawnSides returns the sides the players start a round on
func SpawnSides(arena *entity.Arena) [entity.PlayerCount]entity.ScreenSide {
	if arena.Spawns[0].X > arena.Spawns[1].X {
		return [entity.PlayerCount]entity.ScreenSide{entity.SideRight, entity.SideLeft}
	}
	return [entity.PlayerCount]entity.ScreenSide{entity.SideLeft, entity.SideRight}
}
