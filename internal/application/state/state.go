package state

// RoundPhase represents the current phase of a round
type RoundPhase uint8

const (
	RoundIntro RoundPhase = iota
	RoundFighting
	RoundResetting
)

// String returns the string representation of the round phase
func (p RoundPhase) String() string {
	switch p {
	case RoundIntro:
		return "Intro"
	case RoundFighting:
		return "Fighting"
	case RoundResetting:
		return "Resetting"
	default:
		return "Unknown"
	}
}

// ResetReason tells why a round ended
type ResetReason uint8

const (
	ReasonDeath ResetReason = iota
	ReasonTimeout
)

// String returns the string representation of the reason
func (r ResetReason) String() string {
	switch r {
	case ReasonDeath:
		return "Death"
	case ReasonTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// NoWinner marks a drawn round
const NoWinner int8 = -1

// Round is the round lifecycle part of the simulation snapshot
type Round struct {
	Phase RoundPhase

	// IntroFramesLeft counts down the frozen intro
	IntroFramesLeft int32
	// FramesLeft is the round timer, only counted while fighting
	FramesLeft  int32
	TotalFrames int32
	// ResetFramesLeft counts down the reset sequence
	ResetFramesLeft int32

	Number     int32
	Wins       [2]int32
	LastWinner int8
}

// NewRound creates the first round. A zero intro length starts in RoundFighting.
func NewRound(totalFrames, introFrames int32) Round {
	r := Round{
		TotalFrames: totalFrames,
		Number:      1,
		LastWinner:  NoWinner,
	}
	r.Begin(introFrames)
	return r
}

// Begin restarts the timer for a new round
func (r *Round) Begin(introFrames int32) {
	r.FramesLeft = r.TotalFrames
	r.ResetFramesLeft = 0
	r.IntroFramesLeft = introFrames
	if introFrames > 0 {
		r.Phase = RoundIntro
	} else {
		r.Phase = RoundFighting
	}
}

// Fighting reports whether combat input is accepted
func (r *Round) Fighting() bool {
	return r.Phase == RoundFighting
}
