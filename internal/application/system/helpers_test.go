package system

import (
	"github.com/younwookim/duel/internal/domain/entity"
)

const px = entity.PositionScale

func testTuning() *entity.Tuning {
	return &entity.Tuning{
		PlayerSpeed:   2 * px,
		DashSpeed:     6 * px,
		JumpImpulse:   8 * px,
		Gravity:       px,
		PushbackSpeed: px / 2,
		LightHitSpeed: px,
		HeavyHitSpeed: 3 * px,
		LightDamage:   2,
		HeavyDamage:   5,
		MaxHealth:     10,
		DashDuration:  8,
		Cooldowns:     entity.Cooldowns{Dash: 30, LightAttack: 12, HeavyAttack: 24},
		RoundFrames:   600,
		ResetFrames:   30,
		CloudOffsetX:  4 * px,
		CloudOffsetY:  8 * px,
	}
}

// testColliders gives every state four frames with one hurtbox.
// Attacks carry a hitbox reaching 20..60 px in front on frames 1 and 2.
func testColliders() *entity.ColliderSet {
	hurt := entity.Box{
		Offset:     entity.Vec3{Y: 40 * px},
		HalfExtent: entity.Vec2{X: 16 * px, Y: 40 * px},
		Kind:       entity.HurtBox,
	}
	hit := entity.Box{
		Offset:     entity.Vec3{X: 40 * px, Y: 50 * px},
		HalfExtent: entity.Vec2{X: 20 * px, Y: 10 * px},
		Kind:       entity.HitBox,
	}

	set := entity.NewColliderSet()
	for _, s := range entity.AllStates() {
		frames := []entity.ColliderFrame{{hurt}, {hurt}, {hurt}, {hurt}}
		if s.IsAttack() {
			frames[1] = entity.ColliderFrame{hurt, hit}
			frames[2] = entity.ColliderFrame{hurt, hit}
		}
		set.Set(s, frames)
	}
	return set
}

func testArena() *entity.Arena {
	return &entity.Arena{
		FloorY:   0,
		HasWalls: true,
		MinX:     0,
		MaxX:     1000 * px,
		Spawns: [entity.PlayerCount]entity.Body{
			{X: 300 * px},
			{X: 700 * px},
		},
	}
}

func newTestWorld() World {
	return NewWorld(testTuning(), testArena())
}

// eventsOf filters events by type
func eventsOf[T Event](events Events) []T {
	var out []T
	for _, ev := range events {
		if e, ok := ev.(T); ok {
			out = append(out, e)
		}
	}
	return out
}
