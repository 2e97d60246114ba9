package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundPhase_String(t *testing.T) {
	tests := []struct {
		phase    RoundPhase
		expected string
	}{
		{RoundIntro, "Intro"},
		{RoundFighting, "Fighting"},
		{RoundResetting, "Resetting"},
		{RoundPhase(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestRoundPhaseConstants(t *testing.T) {
	// Verify the iota ordering, snapshots carry the raw value
	assert.Equal(t, RoundPhase(0), RoundIntro)
	assert.Equal(t, RoundPhase(1), RoundFighting)
	assert.Equal(t, RoundPhase(2), RoundResetting)
}

func TestResetReason_String(t *testing.T) {
	assert.Equal(t, "Death", ReasonDeath.String())
	assert.Equal(t, "Timeout", ReasonTimeout.String())
	assert.Equal(t, "Unknown", ResetReason(7).String())
}

func TestNewRound(t *testing.T) {
	t.Run("with intro", func(t *testing.T) {
		r := NewRound(600, 60)
		assert.Equal(t, RoundIntro, r.Phase)
		assert.Equal(t, int32(60), r.IntroFramesLeft)
		assert.Equal(t, int32(600), r.FramesLeft)
		assert.Equal(t, int32(1), r.Number)
		assert.Equal(t, NoWinner, r.LastWinner)
		assert.False(t, r.Fighting())
	})

	t.Run("without intro", func(t *testing.T) {
		r := NewRound(600, 0)
		assert.Equal(t, RoundFighting, r.Phase)
		assert.True(t, r.Fighting())
	})
}

func TestRound_Begin(t *testing.T) {
	r := NewRound(100, 0)
	r.FramesLeft = 3
	r.Phase = RoundResetting
	r.ResetFramesLeft = 9

	r.Begin(0)
	assert.Equal(t, int32(100), r.FramesLeft)
	assert.Equal(t, int32(0), r.ResetFramesLeft)
	assert.Equal(t, RoundFighting, r.Phase)
}
