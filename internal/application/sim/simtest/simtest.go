// Package simtest provides fixtures for tests that run the simulation.
package simtest

import (
	"github.com/younwookim/duel/internal/application/sim"
	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

// Px is one pixel in internal units
const Px = entity.PositionScale

// Tables returns a small match: 10 hp fighters 400 px apart, four collider
// frames per state, attacks reaching 20..60 px forward on frames 1 and 2.
func Tables() *sim.Tables {
	hurt := entity.Box{
		Offset:     entity.Vec3{Y: 40 * Px},
		HalfExtent: entity.Vec2{X: 16 * Px, Y: 40 * Px},
		Kind:       entity.HurtBox,
	}
	hit := entity.Box{
		Offset:     entity.Vec3{X: 40 * Px, Y: 50 * Px},
		HalfExtent: entity.Vec2{X: 20 * Px, Y: 10 * Px},
		Kind:       entity.HitBox,
	}

	colliders := entity.NewColliderSet()
	for _, s := range entity.AllStates() {
		frames := []entity.ColliderFrame{{hurt}, {hurt}, {hurt}, {hurt}}
		if s.IsAttack() {
			frames[1] = entity.ColliderFrame{hurt, hit}
			frames[2] = entity.ColliderFrame{hurt, hit}
		}
		colliders.Set(s, frames)
	}

	return &sim.Tables{
		Tuning: entity.Tuning{
			PlayerSpeed:   2 * Px,
			DashSpeed:     6 * Px,
			JumpImpulse:   8 * Px,
			Gravity:       Px,
			PushbackSpeed: Px / 2,
			LightHitSpeed: Px,
			HeavyHitSpeed: 3 * Px,
			LightDamage:   2,
			HeavyDamage:   5,
			MaxHealth:     10,
			DashDuration:  8,
			Cooldowns:     entity.Cooldowns{Dash: 30, LightAttack: 12, HeavyAttack: 24},
			RoundFrames:   900,
			ResetFrames:   30,
			CloudOffsetX:  4 * Px,
			CloudOffsetY:  8 * Px,
		},
		Arena: entity.Arena{
			HasWalls: true,
			MaxX:     1000 * Px,
			Spawns:   [entity.PlayerCount]entity.Body{{X: 300 * Px}, {X: 700 * Px}},
		},
		Colliders: colliders,
	}
}

// Inputs produces a fixed pseudo-random input sequence for both players
func Inputs(frames int, seed uint64) [][entity.PlayerCount]input.Vector {
	out := make([][entity.PlayerCount]input.Vector, frames)
	for f := range out {
		for p := range out[f] {
			seed = seed*6364136223846793005 + 1442695040888963407
			r := seed >> 33
			out[f][p] = input.Encode(input.Snapshot{
				LeftRight: int8(r%3) - 1,
				Jump:      r&(1<<3) != 0 && r&(1<<4) != 0,
				Light:     r&(1<<5) != 0,
				Heavy:     r&(1<<6) != 0 && r&(1<<7) != 0,
				Special:   r&(1<<8) != 0,
				Dash:      r&(1<<9) != 0 && r&(1<<10) != 0 && r&(1<<11) != 0,
			})
		}
	}
	return out
}

// Frame converts a pair of vectors to the form sim.Step takes
func Frame(vecs [entity.PlayerCount]input.Vector) [entity.PlayerCount][]byte {
	return [entity.PlayerCount][]byte{vecs[0].Bytes(), vecs[1].Bytes()}
}

// Run steps a fresh match through inputs and returns the final state and
// the checksum after every frame
func Run(tables *sim.Tables, inputs [][entity.PlayerCount]input.Vector) (sim.State, []uint64) {
	s := sim.NewState(tables)
	stepper := sim.NewSimulator(tables)
	sums := make([]uint64, 0, len(inputs))
	for _, in := range inputs {
		stepper.Step(&s, Frame(in))
		sums = append(sums, sim.Checksum(&s))
	}
	return s, sums
}
