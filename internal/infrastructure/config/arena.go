package config

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"

	"github.com/younwookim/duel/internal/domain/entity"
)

// ArenaConfig is the arena read from arena.tmx, in pixels with Y growing up
// from the bottom of the map.
type ArenaConfig struct {
	Width, Height int
	FloorY        float64
	HasWalls      bool
	MinX, MaxX    float64
	Spawns        [entity.PlayerCount]PositionConfig
}

type PositionConfig struct {
	X float64
	Y float64
}

// Object names inside the "arena" object group
const (
	arenaGroup      = "arena"
	objectFloor     = "floor"
	objectWallLeft  = "wall_left"
	objectWallRight = "wall_right"
	objectSpawn     = "spawn"
)

// loadArena parses the TMX layout. Tiled's Y axis points down; it is flipped here.
func loadArena(fsys fs.FS, path string) (*ArenaConfig, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	cfg := &ArenaConfig{
		Width:  m.Width * m.TileWidth,
		Height: m.Height * m.TileHeight,
	}
	flip := func(y float64) float64 { return float64(cfg.Height) - y }

	var group *tiled.ObjectGroup
	for _, og := range m.ObjectGroups {
		if og.Name == arenaGroup {
			group = og
			break
		}
	}
	if group == nil {
		return nil, fmt.Errorf("%s: no %q object group", path, arenaGroup)
	}

	var floor, left, right bool
	var spawned [entity.PlayerCount]bool
	for _, o := range group.Objects {
		switch o.Name {
		case objectFloor:
			cfg.FloorY = flip(o.Y)
			floor = true
		case objectWallLeft:
			cfg.MinX = o.X
			left = true
		case objectWallRight:
			cfg.MaxX = o.X
			right = true
		case objectSpawn:
			p := o.Properties.GetInt("player")
			if p < 0 || p >= entity.PlayerCount {
				return nil, fmt.Errorf("%s: spawn for unknown player %d", path, p)
			}
			cfg.Spawns[p] = PositionConfig{X: o.X, Y: flip(o.Y)}
			spawned[p] = true
		}
	}

	if !floor {
		return nil, fmt.Errorf("%s: no %q object", path, objectFloor)
	}
	if left != right {
		return nil, fmt.Errorf("%s: walls must come in pairs", path)
	}
	cfg.HasWalls = left && right
	for p, ok := range spawned {
		if !ok {
			return nil, fmt.Errorf("%s: no spawn for player %d", path, p)
		}
	}
	return cfg, nil
}

// Arena converts the config to internal units
func (c *ArenaConfig) Arena() entity.Arena {
	a := entity.Arena{
		FloorY:   entity.ToIU(c.FloorY),
		HasWalls: c.HasWalls,
		MinX:     entity.ToIU(c.MinX),
		MaxX:     entity.ToIU(c.MaxX),
	}
	for i, s := range c.Spawns {
		a.Spawns[i] = entity.Body{X: entity.ToIU(s.X), Y: entity.ToIU(s.Y)}
	}
	return a
}
