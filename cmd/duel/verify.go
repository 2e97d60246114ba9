package main

import (
	"go.uber.org/zap"

	"github.com/younwookim/duel/internal/application/replay"
	"github.com/younwookim/duel/internal/application/sim"
)

// verifyReplay runs a replay file headless and logs the outcome
func verifyReplay(tables *sim.Tables, path string, logger *zap.Logger) (replay.Result, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return replay.Result{}, err
	}
	res, err := replay.Verify(tables, *data)
	if err != nil {
		return res, err
	}
	logger.Info("replay verified",
		zap.String("file", path),
		zap.Int("frames", res.Frames),
		zap.String("checksum", replay.HashString(res.Checksum)),
		zap.Int32("round", res.Round.Number),
		zap.Int32s("wins", res.Round.Wins[:]),
	)
	return res, nil
}
