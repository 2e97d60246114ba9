// Package persist keeps small items in the user's data directory.
package persist

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"

	"github.com/younwookim/duel/internal/application/replay"
)

const lastReplayKey = "last_replay"

// itemStore is the part of gdata.Manager the store uses
type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store saves and loads the last recorded replay
type Store struct {
	items itemStore
}

// Open opens the data directory of appName
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir: %w", err)
	}
	return &Store{items: m}, nil
}

// SaveReplay stores data as the last replay
func (s *Store) SaveReplay(data replay.ReplayData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	if err := s.items.SaveItem(lastReplayKey, b); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	return nil
}

// LastReplay returns the last stored replay, or nil if there is none
func (s *Store) LastReplay() (*replay.ReplayData, error) {
	b, err := s.items.LoadItem(lastReplayKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load replay: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	return replay.Parse(b)
}
