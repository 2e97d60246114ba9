package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/younwookim/duel/internal/domain/entity"
)

// ErrInvalidColliders is returned for a collider file the simulation cannot use
var ErrInvalidColliders = errors.New("invalid collider data")

// ColliderConfig is the root of colliders.yaml: state key -> sprite frames -> boxes
type ColliderConfig map[string][][]BoxConfig

// BoxConfig is one box in pixels, authored for a fighter on the left side
type BoxConfig struct {
	Kind  string  `yaml:"kind"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	HalfW float64 `yaml:"half_w"`
	HalfH float64 `yaml:"half_h"`
}

func parseKind(s string) (entity.BoxKind, bool) {
	for _, k := range []entity.BoxKind{entity.HurtBox, entity.HitBox} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Validate reports unknown or missing states and malformed boxes
func (c ColliderConfig) Validate() error {
	unknown := lo.Filter(lo.Keys(c), func(key string, _ int) bool {
		_, ok := entity.ParseState(key)
		return !ok
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown states %v", ErrInvalidColliders, unknown)
	}

	missing := lo.Filter(entity.AllStates(), func(s entity.State, _ int) bool {
		return len(c[s.ColliderKey()]) == 0
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: no frames for %v", ErrInvalidColliders, missing)
	}

	for _, s := range entity.AllStates() {
		for i, frame := range c[s.ColliderKey()] {
			for j, b := range frame {
				if _, ok := parseKind(b.Kind); !ok {
					return fmt.Errorf("%w: %s frame %d box %d: unknown kind %q", ErrInvalidColliders, s, i, j, b.Kind)
				}
				if b.HalfW <= 0 || b.HalfH <= 0 {
					return fmt.Errorf("%w: %s frame %d box %d: extents must be positive", ErrInvalidColliders, s, i, j)
				}
			}
		}
	}
	return nil
}

// ColliderSet converts the config to internal units
func (c ColliderConfig) ColliderSet() (*entity.ColliderSet, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	set := entity.NewColliderSet()
	for _, s := range entity.AllStates() {
		frames := lo.Map(c[s.ColliderKey()], func(boxes []BoxConfig, _ int) entity.ColliderFrame {
			return lo.Map(boxes, func(b BoxConfig, _ int) entity.Box {
				kind, _ := parseKind(b.Kind)
				return entity.Box{
					Offset:     entity.Vec3{X: entity.ToIU(b.X), Y: entity.ToIU(b.Y), Z: entity.ToIU(b.Z)},
					HalfExtent: entity.Vec2{X: entity.ToIU(b.HalfW), Y: entity.ToIU(b.HalfH)},
					Kind:       kind,
				}
			})
		})
		set.Set(s, frames)
	}
	return set, nil
}
