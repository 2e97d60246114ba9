package sim_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/duel/internal/application/sim"
	"github.com/younwookim/duel/internal/application/sim/simtest"
	"github.com/younwookim/duel/internal/application/state"
	"github.com/younwookim/duel/internal/application/system"
	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

const px = simtest.Px

func TestStep_Deterministic(t *testing.T) {
	tables := simtest.Tables()
	inputs := simtest.Inputs(1200, 42)

	a, sumsA := simtest.Run(tables, inputs)
	b, sumsB := simtest.Run(tables, inputs)

	assert.Equal(t, a, b)
	assert.Equal(t, sumsA, sumsB)
	assert.Equal(t, uint32(1200), a.Frame)
}

func TestStep_DifferentInputsDiverge(t *testing.T) {
	tables := simtest.Tables()
	_, sumsA := simtest.Run(tables, simtest.Inputs(300, 1))
	_, sumsB := simtest.Run(tables, simtest.Inputs(300, 2))
	assert.NotEqual(t, sumsA[len(sumsA)-1], sumsB[len(sumsB)-1])
}

func TestStep_RollbackReplaysIdentically(t *testing.T) {
	tables := simtest.Tables()
	inputs := simtest.Inputs(200, 7)
	stepper := sim.NewSimulator(tables)

	s := sim.NewState(tables)
	var saved sim.State
	for i, in := range inputs {
		if i == 120 {
			saved = s
		}
		stepper.Step(&s, simtest.Frame(in))
	}
	want := sim.Checksum(&s)

	restored := saved
	for _, in := range inputs[120:] {
		stepper.Step(&restored, simtest.Frame(in))
	}

	assert.Equal(t, want, sim.Checksum(&restored))
	assert.Equal(t, s, restored)
}

func TestStep_PackageFuncMatchesSimulator(t *testing.T) {
	tables := simtest.Tables()
	inputs := simtest.Inputs(50, 3)

	s := sim.NewState(tables)
	for _, in := range inputs {
		sim.Step(&s, simtest.Frame(in), tables)
	}
	want, _ := simtest.Run(tables, inputs)

	assert.Equal(t, want, s)
}

func TestEncodeDecode_MidMatch(t *testing.T) {
	tables := simtest.Tables()
	s, _ := simtest.Run(tables, simtest.Inputs(333, 9))

	b, err := sim.Encode(&s)
	require.NoError(t, err)

	got, err := sim.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, sim.Checksum(&s), sim.Checksum(&got))
}

func TestDecode_Garbage(t *testing.T) {
	_, err := sim.Decode([]byte{0xc1})
	assert.Error(t, err)
}

func TestStep_MalformedInputPanics(t *testing.T) {
	tables := simtest.Tables()
	s := sim.NewState(tables)
	neutral := input.Encode(input.Snapshot{}).Bytes()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, input.ErrMalformedInput))
	}()
	sim.Step(&s, [entity.PlayerCount][]byte{neutral, {9, 9, 9}}, tables)
}

func TestStep_FightToKnockoutAndReset(t *testing.T) {
	tables := simtest.Tables()
	stepper := sim.NewSimulator(tables)
	s := sim.NewState(tables)

	var all system.Events
	var began, completed int
	for f := 0; f < 5000 && completed == 0; f++ {
		var p0 input.Snapshot
		if s.Bodies[1].X-s.Bodies[0].X > 50*px {
			p0.LeftRight = 1
		} else {
			p0.Light = true
		}
		events := stepper.Step(&s, [entity.PlayerCount][]byte{
			input.Encode(p0).Bytes(),
			input.Encode(input.Snapshot{}).Bytes(),
		})
		for _, ev := range events {
			switch e := ev.(type) {
			case system.RoundResetBegan:
				began++
				assert.Equal(t, state.ReasonDeath, e.Reason)
				assert.Equal(t, int8(0), e.Winner)
			case system.RoundResetCompleted:
				completed++
			}
		}
		all = append(all, events...)
	}

	require.Equal(t, 1, began)
	require.Equal(t, 1, completed)

	var hits, died int
	for _, ev := range all {
		switch ev.(type) {
		case system.Hit:
			hits++
		case system.Died:
			died++
		}
	}
	assert.Equal(t, 5, hits, "five light hits empty a 10 point pool")
	assert.Equal(t, 1, died)

	assert.Equal(t, int32(2), s.Round.Number)
	assert.Equal(t, [2]int32{1, 0}, s.Round.Wins)
	assert.Equal(t, tables.Arena.Spawns, s.Bodies)
	assert.Equal(t, tables.Tuning.MaxHealth, s.Health[1].Current)
}

func TestTables_Validate(t *testing.T) {
	tables := simtest.Tables()
	require.NoError(t, tables.Validate())

	tables.Colliders.Set(entity.Fall, nil)
	assert.ErrorIs(t, tables.Validate(), entity.ErrMissingCollider)

	assert.Error(t, (&sim.Tables{}).Validate())

	walls := simtest.Tables()
	walls.Arena.MinX = walls.Arena.MaxX
	assert.Error(t, walls.Validate())
}

func TestTables_Hash(t *testing.T) {
	a, err := simtest.Tables().Hash()
	require.NoError(t, err)
	b, err := simtest.Tables().Hash()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	tuned := simtest.Tables()
	tuned.Tuning.Gravity++
	c, err := tuned.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	boxes := simtest.Tables()
	boxes.Colliders.Set(entity.Idle, []entity.ColliderFrame{{}})
	d, err := boxes.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}
