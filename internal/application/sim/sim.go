// Package sim is the deterministic per-frame simulation step and its snapshot.
package sim

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"

	"github.com/younwookim/duel/internal/application/system"
	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

// Tables is the read-only data a match runs on
type Tables struct {
	Tuning    entity.Tuning
	Arena     entity.Arena
	Colliders *entity.ColliderSet
}

// Validate checks that the tables can drive a match
func (t *Tables) Validate() error {
	if t.Colliders == nil {
		return errors.New("no collider set")
	}
	if err := t.Colliders.Validate(); err != nil {
		return err
	}
	if t.Tuning.MaxHealth <= 0 {
		return fmt.Errorf("max health must be positive, got %d", t.Tuning.MaxHealth)
	}
	if t.Arena.HasWalls && t.Arena.MinX >= t.Arena.MaxX {
		return fmt.Errorf("arena walls overlap: %d >= %d", t.Arena.MinX, t.Arena.MaxX)
	}
	return nil
}

// Hash fingerprints the tables. Replays and peers compare it before running
// the same inputs.
func (t *Tables) Hash() (uint64, error) {
	var colliders [entity.StateCount][]entity.ColliderFrame
	if t.Colliders != nil {
		for _, s := range entity.AllStates() {
			colliders[s] = t.Colliders.Frames(s)
		}
	}
	b, err := msgpack.Marshal(struct {
		Tuning    entity.Tuning
		Arena     entity.Arena
		Colliders [entity.StateCount][]entity.ColliderFrame
	}{t.Tuning, t.Arena, colliders})
	if err != nil {
		return 0, fmt.Errorf("failed to encode tables: %w", err)
	}
	return xxh3.Hash(b), nil
}

// State is a full simulation snapshot. It holds no pointers, so a plain copy
// is a snapshot that can be restored for rollback.
type State struct {
	Frame uint32
	system.World
}

// NewState creates the snapshot of frame 0
func NewState(t *Tables) State {
	return State{World: system.NewWorld(&t.Tuning, &t.Arena)}
}

// Simulator runs the systems in their fixed order
type Simulator struct {
	states    *system.StateSystem
	movement  *system.MovementSystem
	sides     *system.SideSystem
	collision *system.CollisionSystem
	round     *system.RoundSystem
}

// NewSimulator creates a simulator over the tables. The tables must not change
// while the simulator is in use.
func NewSimulator(t *Tables) *Simulator {
	tun := &t.Tuning
	return &Simulator{
		states:    system.NewStateSystem(tun, system.NewAnimationSystem(tun, t.Colliders)),
		movement:  system.NewMovementSystem(tun, &t.Arena),
		sides:     system.NewSideSystem(),
		collision: system.NewCollisionSystem(tun, t.Colliders),
		round:     system.NewRoundSystem(tun, &t.Arena),
	}
}

// Step advances s by one frame. inputs holds one encoded vector per player;
// a malformed vector panics with input.ErrMalformedInput.
func (sim *Simulator) Step(s *State, inputs [entity.PlayerCount][]byte) system.Events {
	frame := inputs[:]
	var decoded [entity.PlayerCount]input.Snapshot
	for i := range decoded {
		decoded[i] = input.MustDecode(frame, i)
	}

	var events system.Events
	sim.states.Update(&s.World, decoded, &events)
	sim.movement.Update(&s.World)
	sim.sides.Update(&s.World, &events)
	sim.collision.Update(&s.World, &events)
	sim.round.Update(&s.World, &events)

	s.Frame++
	return events
}

// Step advances s by one frame using the given tables
func Step(s *State, inputs [entity.PlayerCount][]byte, t *Tables) system.Events {
	return NewSimulator(t).Step(s, inputs)
}

// Encode serializes a snapshot
func Encode(s *State) ([]byte, error) {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return b, nil
}

// Decode restores a snapshot written by Encode
func Decode(b []byte) (State, error) {
	var s State
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return State{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return s, nil
}

// Checksum hashes the encoded snapshot. Peers compare it to detect desyncs.
func Checksum(s *State) uint64 {
	b, err := Encode(s)
	if err != nil {
		// State only holds fixed-size numeric fields
		panic(err)
	}
	return xxh3.Hash(b)
}
