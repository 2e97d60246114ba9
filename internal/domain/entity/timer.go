package entity

// AbilityTimer is a frame-counting cooldown. While it runs the ability is unavailable.
// Tick must be called exactly once per simulation frame.
type AbilityTimer struct {
	Total   int32
	Current int32
	Active  bool
}

// NewAbilityTimer creates a stopped timer of the given length in frames
func NewAbilityTimer(total int32) AbilityTimer {
	if total < 0 {
		total = 0
	}
	return AbilityTimer{Total: total}
}

// Start rewinds the timer and arms it. A zero-length timer never runs.
func (t *AbilityTimer) Start() {
	t.Current = 0
	t.Active = t.Total > 0
}

// Tick advances a running timer by one frame and disarms it at Total
func (t *AbilityTimer) Tick() {
	if !t.Active {
		return
	}
	t.Current++
	if t.Current >= t.Total {
		t.Current = t.Total
		t.Active = false
	}
}

// Running reports whether the timer is armed
func (t *AbilityTimer) Running() bool {
	return t.Active
}

// Reset forces the timer to frame 0, not running
func (t *AbilityTimer) Reset() {
	t.Current = 0
	t.Active = false
}
