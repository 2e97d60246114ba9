package system

import "github.com/younwookim/duel/internal/domain/entity"

// CollisionSystem resolves hurtbox pushback and hitbox hits between the players
type CollisionSystem struct {
	tuning    *entity.Tuning
	colliders *entity.ColliderSet
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(t *entity.Tuning, colliders *entity.ColliderSet) *CollisionSystem {
	return &CollisionSystem{tuning: t, colliders: colliders}
}

// Update resets IsColliding and checks every ordered pair (A, B).
// Hits are only resolved while the round is being fought.
func (s *CollisionSystem) Update(w *World, events *Events) {
	for i := range w.Players {
		w.Players[i].IsColliding = false
	}

	hits := w.Round.Fighting()
	for a := range w.Players {
		for b := range w.Players {
			if a == b {
				continue
			}
			s.checkPair(w, a, b, hits, events)
		}
	}
}

// checkPair tests A's boxes against B's. Only A-side outcomes are applied:
// A's pushback and A's hits on B. The mirrored pair covers the rest.
func (s *CollisionSystem) checkPair(w *World, a, b int, hits bool, events *Events) {
	pa, pb := &w.Players[a], &w.Players[b]
	boxesA := s.colliders.Lookup(pa.State, pa.SpriteIndex)
	boxesB := s.colliders.Lookup(pb.State, pb.SpriteIndex)

	for _, boxA := range boxesA {
		worldA := boxA.World(w.Bodies[a], pa.Side)
		for _, boxB := range boxesB {
			if boxB.Kind != entity.HurtBox {
				continue
			}
			if !entity.Overlap(worldA, boxB.World(w.Bodies[b], pb.Side)) {
				continue
			}

			switch boxA.Kind {
			case entity.HurtBox:
				pa.IsColliding = true
				if pa.State == entity.Idle {
					pa.XVelocity = s.tuning.PushbackSpeed * pa.Side.BackDirection()
				}
			case entity.HitBox:
				pa.IsColliding = true
				pb.IsColliding = true
				if hits {
					s.resolveHit(w, a, b, events)
				}
			}
		}
	}
}

// resolveHit applies one landed hit of attacker a on defender b
func (s *CollisionSystem) resolveHit(w *World, a, b int, events *Events) {
	attacker, defender := &w.Players[a], &w.Players[b]

	amount, reaction, ok := attacker.LevelAndAmountDamage(s.tuning)
	if !ok || attacker.HasLandedHit || !defender.CanTakeAHit() {
		return
	}
	attacker.HasLandedHit = true

	lethal := w.Health[b].TakeDamage(amount) || !w.Health[b].IsAlive()
	if lethal {
		defender.ForceTransition(entity.Death)
	} else {
		defender.ForceTransition(reaction)
	}

	events.Emit(Hit{
		Attacker:  attacker.PlayerID,
		Defender:  defender.PlayerID,
		Damage:    amount,
		Reaction:  defender.Desired,
		Remaining: w.Health[b].Current,
	})
	if lethal {
		events.Emit(Died{Player: defender.PlayerID})
	}
}
