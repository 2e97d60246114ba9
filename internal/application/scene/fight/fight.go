// Package fight is the viewer scene: it feeds keyboard or replay input into a
// rollback session and draws the match.
package fight

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/duel/internal/application/replay"
	"github.com/younwookim/duel/internal/application/scene"
	"github.com/younwookim/duel/internal/application/session"
	"github.com/younwookim/duel/internal/application/sim"
	"github.com/younwookim/duel/internal/application/system"
	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

// Publisher receives the live snapshot every tick
type Publisher interface {
	Publish(st *sim.State, checksums []session.FrameChecksum)
}

// ReplaySaver stores a finished recording
type ReplaySaver interface {
	SaveReplay(data replay.ReplayData) error
}

// Options configures a Fight
type Options struct {
	Tables    *sim.Tables
	ScreenW   int
	ScreenH   int
	Framerate int
	Session   session.Config
	// RemoteLag holds player 2's keyboard input back this many ticks, the way
	// a network peer's input would arrive
	RemoteLag int
	Keys      KeySource
	// Replay plays recorded input for both players instead of the keyboard
	Replay *replay.Replayer
	// QuitOnReplayEnd ends the game once the replay runs out
	QuitOnReplayEnd bool
	Recorder        *replay.Recorder
	Saver           ReplaySaver
	Debug           Publisher
	// Reloads delivers new tables; they take effect at the next round reset
	Reloads <-chan *sim.Tables
	Logger  *zap.Logger
}

type delayedInput struct {
	frame     uint32
	vec       input.Vector
	deliverAt uint64
}

// Fight is the match scene
type Fight struct {
	opts   Options
	cfg    session.Config
	logger *zap.Logger
	sess   *session.Session
	tables *sim.Tables
	// nextTables replaces tables for drawing once the session switches
	nextTables *sim.Tables

	keyboards [entity.PlayerCount]*Keyboard
	remote    []delayedInput
	tick      uint64
	// scheduled is the number of frames that have local input
	scheduled uint32
	// recordNext is the next frame the recorder expects
	recordNext uint32

	paused    bool
	showBoxes bool
	finished  bool

	curtain  curtain
	clouds   []cloudPuff
	hitFlash [entity.PlayerCount]int
	banner   string
	bannerT  int
}

// New creates a Fight scene
func New(opts Options) *Fight {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Keys == nil {
		opts.Keys = EbitenKeys{}
	}
	cfg := opts.Session
	if opts.Replay != nil {
		// recorded input is already confirmed for both players
		cfg.SyncTest = false
		cfg.InputDelay = 0
		cfg.LocalPlayer = 0
		opts.RemoteLag = 0
	}
	if opts.RemoteLag < 0 {
		opts.RemoteLag = 0
	}
	if limit := int(cfg.MaxPrediction); opts.RemoteLag > limit {
		opts.Logger.Warn("remote lag exceeds the prediction window; the match will stall",
			zap.Int("lag", opts.RemoteLag), zap.Int("max_prediction", limit))
	}

	f := &Fight{
		opts:      opts,
		cfg:       cfg,
		logger:    opts.Logger,
		tables:    opts.Tables,
		sess:      session.New(cfg, sim.NewSimulator(opts.Tables), sim.NewState(opts.Tables), opts.Logger),
		keyboards: [entity.PlayerCount]*Keyboard{NewKeyboard(Player1Keys), NewKeyboard(Player2Keys)},
		showBoxes: true,
	}
	return f
}

// Session exposes the rollback session
func (f *Fight) Session() *session.Session {
	return f.sess
}

// Finished reports whether replay playback has run out of input
func (f *Fight) Finished() bool {
	return f.finished
}

// OnEnter logs the match setup
func (f *Fight) OnEnter() {
	mode := "local"
	if f.opts.Replay != nil {
		mode = "replay"
	}
	f.logger.Info("fight started",
		zap.String("mode", mode),
		zap.Uint32("input_delay", f.cfg.InputDelay),
		zap.Int("remote_lag", f.opts.RemoteLag),
		zap.Bool("recording", f.opts.Recorder != nil),
	)
}

// OnExit stores the recording, if any
func (f *Fight) OnExit() {
	f.saveRecording()
}

// Update advances the match by one tick
func (f *Fight) Update(_ float64) (scene.Scene, error) {
	keys := f.opts.Keys
	if keys.IsKeyJustPressed(ebiten.KeyEscape) {
		f.paused = !f.paused
	}
	if keys.IsKeyJustPressed(ebiten.KeyF1) {
		f.showBoxes = !f.showBoxes
	}
	if keys.IsKeyJustPressed(ebiten.KeyF5) {
		f.saveRecording()
	}
	if f.paused {
		return nil, nil
	}
	f.tick++
	f.pollReload()

	if f.finished {
		if f.opts.QuitOnReplayEnd {
			return nil, scene.ErrQuit
		}
		return nil, nil
	}

	if f.opts.Replay != nil {
		vecs, ok := f.opts.Replay.GetInput()
		if !ok {
			f.finished = true
			f.logger.Info("replay finished", zap.Uint32("frame", f.sess.Frame()))
			return nil, nil
		}
		frame := f.sess.Frame()
		for p, vec := range vecs {
			if err := f.sess.AddInput(entity.PlayerID(p), frame, vec); err != nil {
				return nil, err
			}
		}
	} else {
		f.feedKeyboard()
	}

	events, err := f.sess.AdvanceFrame()
	if errors.Is(err, session.ErrPredictionLimit) {
		// wait for the remote input to catch up
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f.handleEvents(events)
	f.animate()

	if f.opts.Debug != nil {
		st := f.sess.State()
		f.opts.Debug.Publish(&st, f.sess.Checksums())
	}
	return nil, nil
}

// feedKeyboard reads both players' keys. Player 1 is local; player 2 goes
// through the remote queue.
func (f *Fight) feedKeyboard() {
	local := f.cfg.LocalPlayer
	remote := local.Opponent()

	// while stalled the next frame already has its input
	if f.sess.Frame()+f.cfg.InputDelay >= f.scheduled {
		localVec := input.Encode(f.keyboards[local].Poll(f.opts.Keys))
		remoteVec := input.Encode(f.keyboards[remote].Poll(f.opts.Keys))

		frame := f.sess.AddLocalInput(localVec)
		f.scheduled = frame + 1
		f.remote = append(f.remote, delayedInput{
			frame:     frame,
			vec:       remoteVec,
			deliverAt: f.tick + uint64(f.opts.RemoteLag),
		})
		f.record(frame, local, localVec, remoteVec)
	}

	delivered := 0
	for _, d := range f.remote {
		if d.deliverAt > f.tick {
			break
		}
		if err := f.sess.AddRemoteInput(d.frame, d.vec); err != nil {
			f.logger.Warn("remote input dropped", zap.Uint32("frame", d.frame), zap.Error(err))
		}
		delivered++
	}
	f.remote = f.remote[delivered:]
}

// record appends the input pair of frame. Frames before the first delayed
// input ran on neutral input.
func (f *Fight) record(frame uint32, local entity.PlayerID, localVec, remoteVec input.Vector) {
	rec := f.opts.Recorder
	if rec == nil || !rec.IsRecording() || frame < f.recordNext {
		return
	}
	var pair [entity.PlayerCount]input.Vector
	for f.recordNext < frame {
		rec.RecordFrame(pair)
		f.recordNext++
	}
	pair[local] = localVec
	pair[local.Opponent()] = remoteVec
	rec.RecordFrame(pair)
	f.recordNext++
}

func (f *Fight) pollReload() {
	if f.opts.Reloads == nil {
		return
	}
	select {
	case t, ok := <-f.opts.Reloads:
		if !ok {
			f.opts.Reloads = nil
			return
		}
		f.sess.Reload(sim.NewSimulator(t))
		f.nextTables = t
		if f.opts.Recorder != nil && f.opts.Recorder.IsRecording() {
			f.opts.Recorder.Stop()
			f.logger.Info("recording stopped, tables changed", zap.Int("frames", f.opts.Recorder.FrameCount()))
		}
		f.logger.Info("tables reload scheduled for the next round reset", zap.Uint32("frame", f.sess.Frame()))
	default:
	}
}

func (f *Fight) handleEvents(events system.Events) {
	for _, ev := range events {
		switch e := ev.(type) {
		case system.CloudSpawned:
			f.clouds = append(f.clouds, cloudPuff{player: e.Player, x: e.X, y: e.Y, ttl: cloudTTL})
		case system.Hit:
			f.hitFlash[e.Defender] = hitFlashTicks
		case system.Died:
			f.logger.Info("player died", zap.Uint8("player", uint8(e.Player)))
		case system.RoundStarted:
			f.showBanner(fmt.Sprintf("ROUND %d", e.Round))
		case system.RoundResetBegan:
			f.curtain.start(e.Frames)
			if e.Winner < 0 {
				f.showBanner("DRAW")
			} else {
				f.showBanner(fmt.Sprintf("P%d WINS", e.Winner+1))
			}
			f.logger.Info("round over",
				zap.Int32("round", e.Round),
				zap.Stringer("reason", e.Reason),
				zap.Int8("winner", e.Winner),
			)
		case system.RoundResetCompleted:
			if f.nextTables != nil {
				f.tables = f.nextTables
				f.nextTables = nil
			}
		}
	}
}

func (f *Fight) showBanner(text string) {
	f.banner = text
	f.bannerT = bannerTicks
}

// animate ages the presentation-only effects
func (f *Fight) animate() {
	f.curtain.update()

	live := f.clouds[:0]
	for _, c := range f.clouds {
		c.ttl--
		if c.ttl > 0 {
			live = append(live, c)
		}
	}
	f.clouds = live

	for i := range f.hitFlash {
		if f.hitFlash[i] > 0 {
			f.hitFlash[i]--
		}
	}
	if f.bannerT > 0 {
		f.bannerT--
	}
}

func (f *Fight) saveRecording() {
	rec := f.opts.Recorder
	if rec == nil || f.opts.Saver == nil || rec.FrameCount() == 0 {
		return
	}
	if err := f.opts.Saver.SaveReplay(rec.Data()); err != nil {
		f.logger.Error("failed to save replay", zap.Error(err))
		return
	}
	f.logger.Info("replay saved", zap.Int("frames", rec.FrameCount()))
}
