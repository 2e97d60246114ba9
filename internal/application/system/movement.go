package system

import "github.com/younwookim/duel/internal/domain/entity"

// MovementSystem integrates velocity into position and handles the floor
type MovementSystem struct {
	tuning *entity.Tuning
	arena  *entity.Arena
}

// NewMovementSystem creates a new movement system
func NewMovementSystem(t *entity.Tuning, arena *entity.Arena) *MovementSystem {
	return &MovementSystem{tuning: t, arena: arena}
}

// Update moves both players
func (s *MovementSystem) Update(w *World) {
	for i := range w.Players {
		s.UpdatePlayer(&w.Players[i], &w.Bodies[i])
	}
}

// UpdatePlayer applies one frame of movement. Jump and Fall leave through
// forced transitions that take effect on the next state step.
func (s *MovementSystem) UpdatePlayer(p *entity.PlayerState, body *entity.Body) {
	body.X = s.arena.ClampX(body.X + p.XVelocity)
	body.Y += p.YVelocity

	floor := s.arena.FloorY
	switch p.State {
	case entity.Jump:
		p.YVelocity -= s.tuning.Gravity
		if p.YVelocity < 0 {
			p.ForceTransition(entity.Fall)
		}

	case entity.Fall:
		p.YVelocity -= s.tuning.Gravity
		if body.Y < floor {
			body.Y = floor
			p.YVelocity = 0
			p.ForceTransition(entity.Idle)
		}

	default:
		if p.State == entity.Idle && !p.IsColliding {
			p.XVelocity = 0
		}
		// hit reactions and Death can start in the air
		s.settle(p, body)
	}
}

// settle pulls a grounded-state player back to the floor
func (s *MovementSystem) settle(p *entity.PlayerState, body *entity.Body) {
	if body.Y > s.arena.FloorY {
		p.YVelocity -= s.tuning.Gravity
		return
	}
	body.Y = s.arena.FloorY
	if p.YVelocity < 0 {
		p.YVelocity = 0
	}
}
