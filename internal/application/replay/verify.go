package replay

import (
	"errors"
	"fmt"

	"github.com/younwookim/duel/internal/application/sim"
	"github.com/younwookim/duel/internal/application/state"
	"github.com/younwookim/duel/internal/application/system"
	"github.com/younwookim/duel/internal/domain/entity"
)

var (
	// ErrIncompatible is returned for replays written with another input layout
	ErrIncompatible = errors.New("incompatible replay")
	// ErrConfigMismatch is returned when the tables differ from the recording's
	ErrConfigMismatch = errors.New("replay recorded on different tables")
	// ErrNondeterministic is returned when two runs of a replay disagree
	ErrNondeterministic = errors.New("replay diverged between runs")
)

// Result summarizes a verified replay
type Result struct {
	Frames   int
	Checksum uint64
	Round    state.Round
}

// Play runs the replay from the start on fresh state, calling fn after every
// frame when fn is not nil. It returns the final state.
func Play(tables *sim.Tables, r *Replayer, fn func(s *sim.State, events system.Events)) sim.State {
	r.Reset()
	s := sim.NewState(tables)
	stepper := sim.NewSimulator(tables)
	for {
		vecs, ok := r.GetInput()
		if !ok {
			return s
		}
		events := stepper.Step(&s, [entity.PlayerCount][]byte{vecs[0].Bytes(), vecs[1].Bytes()})
		if fn != nil {
			fn(&s, events)
		}
	}
}

// Verify checks that data was recorded on tables and runs it twice,
// comparing the checksum of every frame.
func Verify(tables *sim.Tables, data ReplayData) (Result, error) {
	hash, err := tables.Hash()
	if err != nil {
		return Result{}, err
	}
	if data.ConfigHash != HashString(hash) {
		return Result{}, fmt.Errorf("%w: recorded %s, loaded %s", ErrConfigMismatch, data.ConfigHash, HashString(hash))
	}

	r, err := NewReplayer(data)
	if err != nil {
		return Result{}, err
	}

	sums := make([]uint64, 0, r.TotalFrames())
	Play(tables, r, func(s *sim.State, _ system.Events) {
		sums = append(sums, sim.Checksum(s))
	})

	var mismatch error
	i := 0
	final := Play(tables, r, func(s *sim.State, _ system.Events) {
		if mismatch == nil && sim.Checksum(s) != sums[i] {
			mismatch = fmt.Errorf("%w: frame %d", ErrNondeterministic, i)
		}
		i++
	})
	if mismatch != nil {
		return Result{}, mismatch
	}

	res := Result{Frames: len(sums), Round: final.Round}
	if len(sums) > 0 {
		res.Checksum = sums[len(sums)-1]
	}
	return res, nil
}
