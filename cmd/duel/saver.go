package main

import (
	"errors"

	"github.com/younwookim/duel/internal/application/replay"
)

// replayStore is the part of persist.Store the saver needs
type replayStore interface {
	SaveReplay(data replay.ReplayData) error
}

// replaySaver writes a recording to the -record file and keeps a copy as
// the last replay
type replaySaver struct {
	path  string
	store replayStore
}

func (s replaySaver) SaveReplay(data replay.ReplayData) error {
	var errs []error
	if s.path != "" {
		errs = append(errs, replay.SaveFile(s.path, data))
	}
	if s.store != nil {
		errs = append(errs, s.store.SaveReplay(data))
	}
	return errors.Join(errs...)
}
