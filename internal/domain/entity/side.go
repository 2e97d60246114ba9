package entity

// ScreenSide is the half of the screen a combatant stands on.
// The combatant on SideLeft faces right, towards its opponent.
type ScreenSide uint8

const (
	SideLeft ScreenSide = iota
	SideRight
)

// String returns the string representation of the side
func (s ScreenSide) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// BackDirection is the X sign pointing away from the opponent.
// SideLeft: -1, SideRight: +1. Knockback and pushback use it.
func (s ScreenSide) BackDirection() int32 {
	if s == SideRight {
		return 1
	}
	return -1
}

// Forward is the X sign pointing towards the opponent
func (s ScreenSide) Forward() int32 {
	return -s.BackDirection()
}

// Mirror is the factor applied to collider X offsets.
// Collider data is authored for a combatant on SideLeft.
func (s ScreenSide) Mirror() int32 {
	if s == SideRight {
		return -1
	}
	return 1
}

// Opposite returns the other side
func (s ScreenSide) Opposite() ScreenSide {
	if s == SideRight {
		return SideLeft
	}
	return SideRight
}
