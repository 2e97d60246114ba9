// Package session drives the simulation with rollback: remote input that
// arrives late replaces the prediction and the affected frames are resimulated.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/younwookim/duel/internal/application/sim"
	"github.com/younwookim/duel/internal/application/system"
	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

var (
	// ErrDesync is returned by a sync test when resimulation does not reproduce a frame
	ErrDesync = errors.New("desync detected")
	// ErrFrameTooOld is returned for input older than the rollback window
	ErrFrameTooOld = errors.New("frame outside rollback window")
	// ErrPredictionLimit is returned when the remote player is too far behind to keep predicting
	ErrPredictionLimit = errors.New("prediction limit reached")
)

// Stepper advances a snapshot by one frame. *sim.Simulator is the production stepper.
type Stepper interface {
	Step(s *sim.State, inputs [entity.PlayerCount][]byte) system.Events
}

// Config holds the session settings
type Config struct {
	LocalPlayer entity.PlayerID
	// InputDelay schedules local input this many frames ahead
	InputDelay uint32
	// MaxPrediction is how many frames of remote input may be predicted
	MaxPrediction uint32
	// SyncTest rolls back CheckDistance frames after every frame and
	// compares checksums. Both players' input is fed through the session.
	SyncTest      bool
	CheckDistance uint32
}

// DefaultConfig returns the settings used by the viewer
func DefaultConfig() Config {
	return Config{
		MaxPrediction: 8,
		CheckDistance: 2,
	}
}

type savedFrame struct {
	frame    uint32
	state    sim.State
	checksum uint64
	// stepper advanced the snapshot out of this frame
	stepper Stepper
	// events were delivered to the caller for this frame
	events system.Events
	set    bool
}

// FrameChecksum is the checksum of the snapshot at Frame
type FrameChecksum struct {
	Frame uint32 `json:"frame"`
	Sum   uint64 `json:"sum"`
}

const checksumHistory = 64

// Session owns the live snapshot. It is not safe for concurrent use.
type Session struct {
	cfg    Config
	logger *zap.Logger

	live    Stepper
	pending Stepper

	state sim.State
	saved []savedFrame

	inputs [entity.PlayerCount]inputRing
	// confirmedThrough is the newest frame up to which every input is confirmed
	confirmedThrough [entity.PlayerCount]int64
	rollbackTo       int64

	checksums [checksumHistory]FrameChecksum
	sumCount  int
}

// New creates a session starting from initial
func New(cfg Config, stepper Stepper, initial sim.State, logger *zap.Logger) *Session {
	window := cfg.MaxPrediction
	if cfg.SyncTest && cfg.CheckDistance > window {
		window = cfg.CheckDistance
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		cfg:        cfg,
		logger:     logger,
		live:       stepper,
		state:      initial,
		saved:      make([]savedFrame, window+2),
		rollbackTo: -1,
	}
	// frames inside the input delay run on neutral input for both players
	for p := range s.confirmedThrough {
		s.confirmedThrough[p] = int64(initial.Frame) - 1
		for f := initial.Frame; f < initial.Frame+cfg.InputDelay; f++ {
			s.confirm(entity.PlayerID(p), f, input.Vector{})
		}
	}
	return s
}

// Frame returns the number of the frame about to be simulated
func (s *Session) Frame() uint32 {
	return s.state.Frame
}

// State returns a copy of the live snapshot
func (s *Session) State() sim.State {
	return s.state
}

// AddLocalInput schedules the local player's input InputDelay frames ahead
// and returns the frame it applies to.
func (s *Session) AddLocalInput(vec input.Vector) uint32 {
	frame := s.state.Frame + s.cfg.InputDelay
	s.confirm(s.cfg.LocalPlayer, frame, vec)
	return frame
}

// AddRemoteInput records the remote player's confirmed input for a frame.
// If that frame was already simulated with a different prediction, the next
// AdvanceFrame rolls back to it.
func (s *Session) AddRemoteInput(frame uint32, vec input.Vector) error {
	return s.AddInput(s.cfg.LocalPlayer.Opponent(), frame, vec)
}

// AddInput records a confirmed input for any player
func (s *Session) AddInput(player entity.PlayerID, frame uint32, vec input.Vector) error {
	if frame >= s.state.Frame+inputRingSize/2 {
		return fmt.Errorf("frame %d is too far ahead of %d", frame, s.state.Frame)
	}
	if frame < s.state.Frame {
		if slot := s.slot(frame); !slot.set || slot.frame != frame {
			return fmt.Errorf("%w: frame %d, current %d", ErrFrameTooOld, frame, s.state.Frame)
		}
	}

	prev, had := s.inputs[player].get(frame)
	if had && prev.confirmed {
		return nil
	}
	s.confirm(player, frame, vec)

	if frame < s.state.Frame && had && prev.vec != vec {
		if s.rollbackTo < 0 || int64(frame) < s.rollbackTo {
			s.rollbackTo = int64(frame)
		}
	}
	return nil
}

func (s *Session) confirm(player entity.PlayerID, frame uint32, vec input.Vector) {
	s.inputs[player].store(frame, vec, true)
	for {
		next := s.confirmedThrough[player] + 1
		rec, ok := s.inputs[player].get(uint32(next))
		if !ok || !rec.confirmed {
			return
		}
		s.confirmedThrough[player] = next
	}
}

// Reload swaps in a new stepper once the current round has been reset, so
// tables never change mid-round.
func (s *Session) Reload(next Stepper) {
	s.pending = next
}

// AdvanceFrame resolves a pending rollback and simulates one frame.
// The returned events are those of resimulated frames whose events changed,
// followed by this frame's events.
func (s *Session) AdvanceFrame() (system.Events, error) {
	if !s.cfg.SyncTest {
		remote := s.cfg.LocalPlayer.Opponent()
		if int64(s.state.Frame)-s.confirmedThrough[remote] > int64(s.cfg.MaxPrediction) {
			return nil, fmt.Errorf("%w: frame %d, remote confirmed through %d", ErrPredictionLimit, s.state.Frame, s.confirmedThrough[remote])
		}
	}

	var events system.Events
	if s.rollbackTo >= 0 {
		to := uint32(s.rollbackTo)
		s.rollbackTo = -1
		changed, err := s.rollback(to)
		if err != nil {
			return nil, err
		}
		events = changed
	}

	frame := s.state.Frame
	s.save(frame, s.live)
	stepped := s.live.Step(&s.state, s.gatherInputs(frame))
	s.slot(frame).events = stepped
	events = append(events, stepped...)
	s.recordChecksum()

	if s.pending != nil && resetCompleted(stepped) {
		s.applyReload()
	}

	if s.cfg.SyncTest {
		if err := s.syncCheck(); err != nil {
			return events, err
		}
	}
	return events, nil
}

// Checksums returns the recent frame checksums, oldest first
func (s *Session) Checksums() []FrameChecksum {
	n := min(s.sumCount, checksumHistory)
	out := make([]FrameChecksum, 0, n)
	for i := s.sumCount - n; i < s.sumCount; i++ {
		out = append(out, s.checksums[i%checksumHistory])
	}
	return out
}

func (s *Session) slot(frame uint32) *savedFrame {
	return &s.saved[frame%uint32(len(s.saved))]
}

func (s *Session) save(frame uint32, stepper Stepper) {
	*s.slot(frame) = savedFrame{
		frame:    frame,
		state:    s.state,
		checksum: sim.Checksum(&s.state),
		stepper:  stepper,
		set:      true,
	}
}

func (s *Session) applyReload() {
	s.live = s.pending
	s.pending = nil
	s.logger.Info("tables reloaded", zap.Uint32("frame", s.state.Frame))
}

// rollback loads the snapshot of frame to and resimulates up to the present.
// Each frame is stepped by the stepper that originally stepped it, unless a
// round reset that first completes during resimulation applies a pending reload.
// Returns the events of every resimulated frame whose events changed.
func (s *Session) rollback(to uint32) (system.Events, error) {
	start := s.slot(to)
	if !start.set || start.frame != to {
		return nil, fmt.Errorf("%w: no snapshot for frame %d", ErrFrameTooOld, to)
	}

	target := s.state.Frame
	s.state = start.state
	var changed system.Events
	reloaded := false
	for s.state.Frame < target {
		f := s.state.Frame
		slot := s.slot(f)
		stepper, delivered := slot.stepper, slot.events
		if reloaded {
			stepper = s.live
		}
		s.save(f, stepper)
		events := stepper.Step(&s.state, s.gatherInputs(f))
		s.slot(f).events = events
		if !sameEvents(events, delivered) {
			changed = append(changed, events...)
		}
		if s.pending != nil && resetCompleted(events) && !resetCompleted(delivered) {
			s.applyReload()
			reloaded = true
		}
	}

	s.logger.Debug("rolled back",
		zap.Uint32("to", to),
		zap.Uint32("frames", target-to),
		zap.Int("changed_events", len(changed)),
	)
	return changed, nil
}

// syncCheck resimulates the last CheckDistance frames and compares the result
func (s *Session) syncCheck() error {
	if s.state.Frame <= s.cfg.CheckDistance {
		return nil
	}
	want := sim.Checksum(&s.state)
	if _, err := s.rollback(s.state.Frame - s.cfg.CheckDistance); err != nil {
		return err
	}
	got := sim.Checksum(&s.state)
	if got != want {
		s.logger.Error("sync test mismatch",
			zap.Uint32("frame", s.state.Frame),
			zap.Uint64("want", want),
			zap.Uint64("got", got),
		)
		return fmt.Errorf("%w: frame %d checksum %x, resimulated %x", ErrDesync, s.state.Frame, want, got)
	}
	return nil
}

// gatherInputs returns the confirmed or predicted input of every player
func (s *Session) gatherInputs(frame uint32) [entity.PlayerCount][]byte {
	var out [entity.PlayerCount][]byte
	for p := range out {
		vec := s.inputFor(entity.PlayerID(p), frame)
		out[p] = vec.Bytes()
	}
	return out
}

// inputFor predicts missing input by repeating the last confirmed one
func (s *Session) inputFor(player entity.PlayerID, frame uint32) input.Vector {
	if rec, ok := s.inputs[player].get(frame); ok && rec.confirmed {
		return rec.vec
	}
	vec := s.inputs[player].lastConfirmedBefore(frame)
	s.inputs[player].store(frame, vec, false)
	return vec
}

func (s *Session) recordChecksum() {
	s.checksums[s.sumCount%checksumHistory] = FrameChecksum{
		Frame: s.state.Frame,
		Sum:   sim.Checksum(&s.state),
	}
	s.sumCount++
}

func resetCompleted(events system.Events) bool {
	for _, ev := range events {
		if _, ok := ev.(system.RoundResetCompleted); ok {
			return true
		}
	}
	return false
}

func sameEvents(a, b system.Events) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
