package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/younwookim/duel/internal/application/sim"
)

// forwardReloads loads fresh tables for every change event and hands them to
// the fight scene. Broken configs are logged and skipped so the match keeps
// running on the last good tables.
func forwardReloads(ctx context.Context, changes <-chan string, errs <-chan error,
	load func() (*sim.Tables, error), out chan<- *sim.Tables, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("config watcher error", zap.Error(err))
		case path, ok := <-changes:
			if !ok {
				return
			}
			tables, err := load()
			if err != nil {
				logger.Error("config reload failed", zap.String("file", path), zap.Error(err))
				continue
			}
			logger.Info("config changed", zap.String("file", path))
			select {
			case out <- tables:
			case <-ctx.Done():
				return
			}
		}
	}
}
