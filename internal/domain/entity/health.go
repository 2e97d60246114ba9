package entity

import "github.com/samber/lo"

// Health is the hit point pool paired with a PlayerState
type Health struct {
	Current int32
	Max     int32
}

// NewHealth creates a full Health
func NewHealth(max int32) Health {
	if max <= 0 {
		max = 1
	}
	return Health{Current: max, Max: max}
}

// TakeDamage removes amount, clamping at 0. Only damage beyond the remaining
// health is lethal; a pool drained to exactly 0 is reported by IsAlive.
func (h *Health) TakeDamage(amount int32) bool {
	if amount < 0 {
		amount = 0
	}
	before := h.Current
	h.Current = lo.Clamp(h.Current-amount, 0, h.Max)
	return amount > before
}

// IsAlive returns true if health > 0
func (h *Health) IsAlive() bool {
	return h.Current > 0
}

// Restore refills the pool
func (h *Health) Restore() {
	h.Current = h.Max
}
