package system

import "github.com/younwookim/duel/internal/domain/entity"

// AnimationSystem advances sprite frames. The sprite index lives in the
// snapshot because it selects the active colliders.
type AnimationSystem struct {
	tuning    *entity.Tuning
	colliders *entity.ColliderSet
}

// NewAnimationSystem creates a new animation system
func NewAnimationSystem(t *entity.Tuning, colliders *entity.ColliderSet) *AnimationSystem {
	return &AnimationSystem{tuning: t, colliders: colliders}
}

// Advance moves the player one frame through its clip.
// Returns true when the clip wrapped around.
func (s *AnimationSystem) Advance(p *entity.PlayerState) bool {
	p.AnimTick++
	if p.AnimTick < s.tuning.AnimationTicks(p.State) {
		return false
	}
	p.AnimTick = 0

	p.SpriteIndex++
	if p.SpriteIndex < s.colliders.FrameCount(p.State) {
		return false
	}
	p.SpriteIndex = 0

	if next := p.AnimationFinished(); next != p.State {
		p.ForceTransition(next)
	}
	return true
}
