package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/younwookim/duel/internal/application/game"
	"github.com/younwookim/duel/internal/application/replay"
	"github.com/younwookim/duel/internal/application/scene/fight"
	"github.com/younwookim/duel/internal/application/session"
	"github.com/younwookim/duel/internal/application/sim"
	"github.com/younwookim/duel/internal/infrastructure/config"
	"github.com/younwookim/duel/internal/infrastructure/debugapi"
	"github.com/younwookim/duel/internal/infrastructure/logging"
	"github.com/younwookim/duel/internal/infrastructure/persist"
)

const appName = "duel"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseOptions(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(opts.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("exiting", zap.Error(err))
		_ = logger.Sync()
		cancel()
		os.Exit(1)
	}
}

func newLoader(configDir string) (*config.Loader, error) {
	if configDir != "" {
		return config.NewLoader(configDir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func loadTables(loader *config.Loader) (*config.GameConfig, *sim.Tables, error) {
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	tables, err := cfg.Tables()
	if err != nil {
		return nil, nil, err
	}
	return cfg, tables, nil
}

func run(ctx context.Context, opts options, logger *zap.Logger) error {
	loader, err := newLoader(opts.configDir)
	if err != nil {
		return err
	}
	cfg, tables, err := loadTables(loader)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	hash, err := tables.Hash()
	if err != nil {
		return err
	}
	logger.Info("config loaded",
		zap.String("dir", loader.BasePath()),
		zap.String("hash", replay.HashString(hash)),
	)

	if opts.verify != "" {
		_, err := verifyReplay(tables, opts.verify, logger)
		return err
	}

	store, err := persist.Open(appName)
	if err != nil {
		// the match runs without a saved last replay
		logger.Warn("data directory unavailable", zap.Error(err))
	}

	display := cfg.Fighter.Display
	sessCfg := session.DefaultConfig()
	sessCfg.InputDelay = uint32(opts.inputDelay)
	sessCfg.SyncTest = opts.syncTest

	fightOpts := fight.Options{
		Tables:    tables,
		ScreenW:   display.ScreenWidth,
		ScreenH:   display.ScreenHeight,
		Framerate: display.Framerate,
		Session:   sessCfg,
		RemoteLag: opts.remoteLag,
		Logger:    logger,
	}

	replayer, err := openReplay(opts, store, hash, logger)
	if err != nil {
		return err
	}
	if replayer != nil {
		fightOpts.Replay = replayer
		fightOpts.QuitOnReplayEnd = true
	} else {
		fightOpts.Recorder = replay.NewRecorder(hash)
		saver := replaySaver{path: opts.record}
		if store != nil {
			saver.store = store
		}
		fightOpts.Saver = saver
	}

	if opts.watch {
		w, err := config.NewWatcher(opts.configDir)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", opts.configDir, err)
		}
		defer func() { _ = w.Close() }()

		reloads := make(chan *sim.Tables, 1)
		load := func() (*sim.Tables, error) {
			_, t, err := loadTables(loader)
			return t, err
		}
		go forwardReloads(ctx, w.Events, w.Errors, load, reloads, logger)
		fightOpts.Reloads = reloads
		logger.Info("watching configs", zap.String("dir", opts.configDir))
	}

	if opts.debugAddr != "" {
		srv := debugapi.NewServer(logger)
		fightOpts.Debug = srv
		go func() {
			if err := srv.ListenAndServe(ctx, opts.debugAddr); err != nil {
				logger.Error("debug server stopped", zap.Error(err))
			}
		}()
	}

	g := game.New(fight.New(fightOpts), display.ScreenWidth, display.ScreenHeight, display.Framerate)
	defer g.Close()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Duel")
	ebiten.SetTPS(display.Framerate)

	return ebiten.RunGame(g)
}

// openReplay returns the replayer selected by the flags, or nil for a live match
func openReplay(opts options, store *persist.Store, hash uint64, logger *zap.Logger) (*replay.Replayer, error) {
	var data *replay.ReplayData
	switch {
	case opts.replayFile != "":
		d, err := replay.LoadReplay(opts.replayFile)
		if err != nil {
			return nil, err
		}
		data = d
	case opts.replayLast:
		if store == nil {
			return nil, errors.New("no data directory to read the last replay from")
		}
		d, err := store.LastReplay()
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, errors.New("no replay has been recorded yet")
		}
		data = d
	default:
		return nil, nil
	}

	if data.ConfigHash != replay.HashString(hash) {
		logger.Warn("replay was recorded with different configs; playback will diverge",
			zap.String("recorded", data.ConfigHash),
			zap.String("loaded", replay.HashString(hash)),
		)
	}
	return replay.NewReplayer(*data)
}
