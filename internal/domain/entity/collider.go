package entity

import (
	"errors"
	"fmt"
)

// ErrMissingCollider is raised (as a panic) when a reachable state and sprite
// frame has no collider entry. It indicates broken collider data, not a runtime condition.
var ErrMissingCollider = errors.New("missing collider entry")

// BoxKind tags a collider box
type BoxKind uint8

const (
	HurtBox BoxKind = iota
	HitBox
)

// String returns the data file name of the kind
func (k BoxKind) String() string {
	switch k {
	case HurtBox:
		return "HurtBox"
	case HitBox:
		return "HitBox"
	default:
		return "Unknown"
	}
}

// Vec2 is an integer 2D vector in internal units
type Vec2 struct {
	X, Y int32
}

// Vec3 is an integer 3D vector in internal units. Z is only a draw-depth hint.
type Vec3 struct {
	X, Y, Z int32
}

// Box is a collider relative to the combatant's position
type Box struct {
	Offset     Vec3
	HalfExtent Vec2
	Kind       BoxKind
}

// AABB is a box placed in the world
type AABB struct {
	X, Y         int32 // center
	HalfW, HalfH int32
}

// World places the box at the body position, mirroring X by side
func (b Box) World(body Body, side ScreenSide) AABB {
	return AABB{
		X:     body.X + b.Offset.X*side.Mirror(),
		Y:     body.Y + b.Offset.Y,
		HalfW: b.HalfExtent.X,
		HalfH: b.HalfExtent.Y,
	}
}

// Overlap tests two boxes for strict overlap (touching edges do not count).
// The test is commutative.
func Overlap(a, b AABB) bool {
	dx := abs64(int64(a.X) - int64(b.X))
	dy := abs64(int64(a.Y) - int64(b.Y))
	return dx < int64(a.HalfW)+int64(b.HalfW) && dy < int64(a.HalfH)+int64(b.HalfH)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// ColliderFrame is the set of boxes active on one sprite frame
type ColliderFrame []Box

// ColliderSet maps (state, sprite frame) to boxes. It is loaded once and read-only afterwards.
// The number of frames of a state is also the length of its animation clip.
type ColliderSet struct {
	frames [StateCount][]ColliderFrame
}

// NewColliderSet creates an empty set
func NewColliderSet() *ColliderSet {
	return &ColliderSet{}
}

// Set replaces the frames of a state
func (c *ColliderSet) Set(s State, frames []ColliderFrame) {
	c.frames[s] = frames
}

// Frames returns the frames of a state. The slice must not be modified.
func (c *ColliderSet) Frames(s State) []ColliderFrame {
	if !s.Valid() {
		return nil
	}
	return c.frames[s]
}

// FrameCount returns the number of sprite frames of a state
func (c *ColliderSet) FrameCount(s State) int32 {
	if !s.Valid() {
		return 0
	}
	return int32(len(c.frames[s]))
}

// Lookup returns the boxes for a state and sprite frame.
// A missing entry panics with ErrMissingCollider.
func (c *ColliderSet) Lookup(s State, index int32) ColliderFrame {
	if !s.Valid() || index < 0 || index >= int32(len(c.frames[s])) {
		panic(fmt.Errorf("%w: state %s frame %d", ErrMissingCollider, s, index))
	}
	return c.frames[s][index]
}

// Validate checks that every state has at least one frame
func (c *ColliderSet) Validate() error {
	for _, s := range AllStates() {
		if len(c.frames[s]) == 0 {
			return fmt.Errorf("%w: state %s has no frames", ErrMissingCollider, s)
		}
	}
	return nil
}
