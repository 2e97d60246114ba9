package config

import (
	"fmt"

	"github.com/younwookim/duel/internal/domain/entity"
)

// FighterConfig is the root config for fighter.json.
// Distances and speeds are in pixels (per frame), durations in frames.
type FighterConfig struct {
	Display   DisplayConfig    `json:"display"`
	Movement  MovementConfig   `json:"movement"`
	Combat    CombatConfig     `json:"combat"`
	Timers    TimersConfig     `json:"timers"`
	Round     RoundConfig      `json:"round"`
	Animation map[string]int32 `json:"animation"` // state key -> frames per sprite frame
	Cloud     CloudConfig      `json:"cloud"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type MovementConfig struct {
	PlayerSpeed   float64 `json:"playerSpeed"`
	DashSpeed     float64 `json:"dashSpeed"`
	JumpImpulse   float64 `json:"jumpImpulse"`
	Gravity       float64 `json:"gravity"`
	PushbackSpeed float64 `json:"pushbackSpeed"`
}

type CombatConfig struct {
	LightDamage   int32   `json:"lightDamage"`
	HeavyDamage   int32   `json:"heavyDamage"`
	MaxHealth     int32   `json:"maxHealth"`
	LightHitSpeed float64 `json:"lightHitSpeed"`
	HeavyHitSpeed float64 `json:"heavyHitSpeed"`
}

type TimersConfig struct {
	DashDuration        int32 `json:"dashDuration"`
	DashCooldown        int32 `json:"dashCooldown"`
	LightAttackCooldown int32 `json:"lightAttackCooldown"`
	HeavyAttackCooldown int32 `json:"heavyAttackCooldown"`
}

type RoundConfig struct {
	RoundFrames int32 `json:"roundFrames"` // 0 disables the timer
	IntroFrames int32 `json:"introFrames"`
	ResetFrames int32 `json:"resetFrames"`
}

type CloudConfig struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// Validate checks values the simulation cannot run with
func (c *FighterConfig) Validate() error {
	if c.Combat.MaxHealth <= 0 {
		return fmt.Errorf("combat.maxHealth must be positive, got %d", c.Combat.MaxHealth)
	}
	if c.Combat.LightDamage < 0 || c.Combat.HeavyDamage < 0 {
		return fmt.Errorf("combat damage must not be negative")
	}
	if c.Display.Framerate <= 0 {
		return fmt.Errorf("display.framerate must be positive, got %d", c.Display.Framerate)
	}
	for key, ticks := range c.Animation {
		if _, ok := entity.ParseState(key); !ok {
			return fmt.Errorf("animation: unknown state %q", key)
		}
		if ticks <= 0 {
			return fmt.Errorf("animation.%s must be positive, got %d", key, ticks)
		}
	}
	return nil
}

// Tuning converts the config to internal units
func (c *FighterConfig) Tuning() entity.Tuning {
	t := entity.Tuning{
		PlayerSpeed:   entity.ToIU(c.Movement.PlayerSpeed),
		DashSpeed:     entity.ToIU(c.Movement.DashSpeed),
		JumpImpulse:   entity.ToIU(c.Movement.JumpImpulse),
		Gravity:       entity.ToIU(c.Movement.Gravity),
		PushbackSpeed: entity.ToIU(c.Movement.PushbackSpeed),
		LightHitSpeed: entity.ToIU(c.Combat.LightHitSpeed),
		HeavyHitSpeed: entity.ToIU(c.Combat.HeavyHitSpeed),

		LightDamage: c.Combat.LightDamage,
		HeavyDamage: c.Combat.HeavyDamage,
		MaxHealth:   c.Combat.MaxHealth,

		DashDuration: c.Timers.DashDuration,
		Cooldowns: entity.Cooldowns{
			Dash:        c.Timers.DashCooldown,
			LightAttack: c.Timers.LightAttackCooldown,
			HeavyAttack: c.Timers.HeavyAttackCooldown,
		},

		RoundFrames: c.Round.RoundFrames,
		IntroFrames: c.Round.IntroFrames,
		ResetFrames: c.Round.ResetFrames,

		CloudOffsetX: entity.ToIU(c.Cloud.OffsetX),
		CloudOffsetY: entity.ToIU(c.Cloud.OffsetY),
	}
	for key, ticks := range c.Animation {
		if s, ok := entity.ParseState(key); ok {
			t.TicksPerFrame[s] = ticks
		}
	}
	return t
}
