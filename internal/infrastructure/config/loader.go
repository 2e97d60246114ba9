package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/duel/internal/application/sim"
)

// Config file names inside the config directory
const (
	FighterFile   = "fighter.json"
	CollidersFile = "colliders.yaml"
	ArenaFile     = "arena.tmx"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Fighter   *FighterConfig
	Colliders ColliderConfig
	Arena     *ArenaConfig
}

// Tables converts the configuration to the simulation's internal units
func (c *GameConfig) Tables() (*sim.Tables, error) {
	colliders, err := c.Colliders.ColliderSet()
	if err != nil {
		return nil, err
	}
	t := &sim.Tables{
		Tuning:    c.Fighter.Tuning(),
		Arena:     c.Arena.Arena(),
		Colliders: colliders,
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tables: %w", err)
	}
	return t, nil
}

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadFighter loads fighter.json
func (l *Loader) LoadFighter() (*FighterConfig, error) {
	data, err := fs.ReadFile(l.fsys, FighterFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FighterFile, err)
	}

	var cfg FighterConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FighterFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FighterFile, err)
	}

	return &cfg, nil
}

// LoadColliders loads colliders.yaml
func (l *Loader) LoadColliders() (ColliderConfig, error) {
	data, err := fs.ReadFile(l.fsys, CollidersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CollidersFile, err)
	}

	var cfg ColliderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidColliders, CollidersFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", CollidersFile, err)
	}

	return cfg, nil
}

// LoadArena loads arena.tmx
func (l *Loader) LoadArena() (*ArenaConfig, error) {
	return loadArena(l.fsys, ArenaFile)
}

// LoadAll loads every configuration file
func (l *Loader) LoadAll() (*GameConfig, error) {
	fighter, err := l.LoadFighter()
	if err != nil {
		return nil, err
	}

	colliders, err := l.LoadColliders()
	if err != nil {
		return nil, err
	}

	arena, err := l.LoadArena()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Fighter:   fighter,
		Colliders: colliders,
		Arena:     arena,
	}, nil
}
