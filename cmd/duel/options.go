package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
)

// options are the command line settings. Each flag defaults to a DUEL_*
// environment variable, which a .env file in the working directory may set.
type options struct {
	configDir  string
	logLevel   string
	debugAddr  string
	inputDelay uint
	remoteLag  int
	syncTest   bool
	watch      bool

	record     string
	replayFile string
	replayLast bool
	verify     string
}

func parseOptions(args []string, getenv func(string) string, output io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("duel", flag.ContinueOnError)
	fs.SetOutput(output)

	delay, err := envInt(getenv, "DUEL_INPUT_DELAY", 2)
	if err != nil {
		return o, err
	}
	lag, err := envInt(getenv, "DUEL_REMOTE_LAG", 0)
	if err != nil {
		return o, err
	}

	fs.StringVar(&o.configDir, "config-dir", getenv("DUEL_CONFIG_DIR"), "load configs from this directory instead of the built-in ones")
	fs.StringVar(&o.logLevel, "log-level", envString(getenv, "DUEL_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	fs.StringVar(&o.debugAddr, "debug-addr", getenv("DUEL_DEBUG_ADDR"), "serve the state inspection API on this address (e.g. localhost:6060)")
	fs.UintVar(&o.inputDelay, "input-delay", uint(max(delay, 0)), "frames of local input delay")
	fs.IntVar(&o.remoteLag, "remote-lag", lag, "ticks player 2's input is held back, to exercise rollback")
	fs.BoolVar(&o.syncTest, "sync-test", false, "resimulate every frame and stop on a checksum mismatch")
	fs.BoolVar(&o.watch, "watch", false, "reload configs from -config-dir when they change")
	fs.StringVar(&o.record, "record", "", "record input to file (e.g. -record replay.json)")
	fs.StringVar(&o.replayFile, "replay", "", "play back a replay file")
	fs.BoolVar(&o.replayLast, "replay-last", false, "play back the last recorded replay")
	fs.StringVar(&o.verify, "verify", "", "check that a replay file runs deterministically, without a window")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	switch {
	case o.watch && o.configDir == "":
		return o, errors.New("-watch needs -config-dir")
	case o.replayFile != "" && o.replayLast:
		return o, errors.New("-replay and -replay-last are exclusive")
	case o.record != "" && (o.replayFile != "" || o.replayLast):
		return o, errors.New("cannot record while playing a replay")
	case o.syncTest && o.remoteLag > 0:
		return o, errors.New("-sync-test feeds both players directly; drop -remote-lag")
	}
	return o, nil
}

func envString(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
