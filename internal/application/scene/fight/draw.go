package fight

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/duel/internal/application/sim"
	"github.com/younwookim/duel/internal/application/state"
	"github.com/younwookim/duel/internal/domain/entity"
)

const (
	cloudTTL      = 45
	hitFlashTicks = 8
	bannerTicks   = 90
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorFloor    = color.RGBA{80, 80, 100, 255}
	colorHurt     = color.RGBA{100, 200, 100, 160}
	colorHit      = color.RGBA{220, 60, 60, 150}
	colorFlash    = color.RGBA{255, 255, 255, 255}
	colorCloud    = color.RGBA{200, 200, 215, 170}
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
	colorPlayers  = [entity.PlayerCount]color.RGBA{
		{90, 180, 240, 255},
		{240, 140, 80, 255},
	}
)

// curtain fades the screen out and back in over a round reset
type curtain struct {
	seq   *gween.Sequence
	alpha float32
}

func (c *curtain) start(frames int32) {
	if frames <= 0 {
		return
	}
	half := float32(frames) / 2
	c.seq = gween.NewSequence(
		gween.New(0, 1, half, ease.InQuad),
		gween.New(1, 0, half, ease.OutQuad),
	)
	c.alpha = 0
}

// update advances the fade by one frame
func (c *curtain) update() {
	if c.seq == nil {
		return
	}
	alpha, _, done := c.seq.Update(1)
	c.alpha = alpha
	if done {
		c.seq = nil
		c.alpha = 0
	}
}

type cloudPuff struct {
	player entity.PlayerID
	x, y   int32
	ttl    int
}

// Draw renders the match
func (f *Fight) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	st := f.sess.State()

	f.drawArena(screen)
	// the local player's cloud sits behind the fighters, the remote one in front
	f.drawClouds(screen, func(p entity.PlayerID) bool { return p == f.cfg.LocalPlayer })
	for p := range st.Players {
		f.drawPlayer(screen, &st, entity.PlayerID(p))
	}
	f.drawClouds(screen, func(p entity.PlayerID) bool { return p != f.cfg.LocalPlayer })
	f.drawUI(screen, &st)

	if f.curtain.alpha > 0 {
		a := uint8(f.curtain.alpha * 255)
		vector.FillRect(screen, 0, 0, float32(f.opts.ScreenW), float32(f.opts.ScreenH), color.RGBA{0, 0, 0, a}, false)
	}
	if f.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", f.opts.ScreenW/2-20, f.opts.ScreenH/2)
	}
}

// toScreen converts a world position in internal units to screen pixels
func (f *Fight) toScreen(x, y int32) (float32, float32) {
	return float32(entity.ToPixels(x)), float32(f.opts.ScreenH) - float32(entity.ToPixels(y))
}

func (f *Fight) drawArena(screen *ebiten.Image) {
	a := &f.tables.Arena
	_, floorY := f.toScreen(0, a.FloorY)
	vector.FillRect(screen, 0, floorY, float32(f.opts.ScreenW), float32(f.opts.ScreenH)-floorY, colorFloor, false)
	if a.HasWalls {
		minX, _ := f.toScreen(a.MinX, 0)
		maxX, _ := f.toScreen(a.MaxX, 0)
		vector.FillRect(screen, 0, 0, minX, floorY, colorFloor, false)
		vector.FillRect(screen, maxX, 0, float32(f.opts.ScreenW)-maxX, floorY, colorFloor, false)
	}
}

func (f *Fight) drawPlayer(screen *ebiten.Image, st *sim.State, id entity.PlayerID) {
	ps := &st.Players[id]
	body := st.Bodies[id]
	var frame entity.ColliderFrame
	if frames := f.tables.Colliders.Frames(ps.State); int(ps.SpriteIndex) < len(frames) {
		frame = frames[ps.SpriteIndex]
	}

	fill := colorPlayers[id]
	if f.hitFlash[id] > 0 {
		fill = colorFlash
	}
	for _, box := range frame {
		if box.Kind != entity.HurtBox {
			continue
		}
		x, y, w, h := f.boxRect(box, body, ps.Side)
		vector.FillRect(screen, x, y, w, h, fill, false)
	}

	if f.showBoxes {
		for _, box := range frame {
			x, y, w, h := f.boxRect(box, body, ps.Side)
			if box.Kind == entity.HitBox {
				vector.FillRect(screen, x, y, w, h, colorHit, false)
			} else {
				vector.StrokeRect(screen, x, y, w, h, 1, colorHurt, false)
			}
		}
	}

	// facing marker at head height
	px, py := f.toScreen(body.X, body.Y)
	fx := px + float32(ps.Side.Forward())*6
	vector.FillRect(screen, fx-2, py-4, 4, 4, colorPlayers[id], false)

	label := fmt.Sprintf("P%d %s", id+1, ps.State)
	ebitenutil.DebugPrintAt(screen, label, int(px)-24, int(py)+4)
}

func (f *Fight) boxRect(box entity.Box, body entity.Body, side entity.ScreenSide) (x, y, w, h float32) {
	aabb := box.World(body, side)
	left, top := f.toScreen(aabb.X-aabb.HalfW, aabb.Y+aabb.HalfH)
	w = float32(entity.ToPixels(2 * aabb.HalfW))
	h = float32(entity.ToPixels(2 * aabb.HalfH))
	return left, top, w, h
}

func (f *Fight) drawClouds(screen *ebiten.Image, include func(entity.PlayerID) bool) {
	for _, c := range f.clouds {
		if !include(c.player) {
			continue
		}
		x, y := f.toScreen(c.x, c.y)
		r := float32(10 + (cloudTTL-c.ttl)/3)
		clr := colorCloud
		clr.A = uint8(int(colorCloud.A) * c.ttl / cloudTTL)
		vector.FillRect(screen, x-r, y-r/2, 2*r, r, clr, false)
	}
}

func (f *Fight) drawUI(screen *ebiten.Image, st *sim.State) {
	const barW, barH = 200, 10
	for p := range st.Health {
		h := st.Health[p]
		x := float32(10)
		if p == 1 {
			x = float32(f.opts.ScreenW) - 10 - barW
		}
		vector.FillRect(screen, x, 10, barW, barH, colorHealthBG, false)
		ratio := float32(h.Current) / float32(h.Max)
		fg := float32(barW) * ratio
		if p == 1 {
			// the right bar drains towards the center
			vector.FillRect(screen, x+barW-fg, 10, fg, barH, colorHealthFG, false)
		} else {
			vector.FillRect(screen, x, 10, fg, barH, colorHealthFG, false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", st.Round.Wins[p]), int(x), 24)
	}

	r := &st.Round
	info := fmt.Sprintf("R%d %s", r.Number, r.Phase)
	if r.TotalFrames > 0 && r.Phase != state.RoundIntro {
		fps := int32(max(f.opts.Framerate, 1))
		info = fmt.Sprintf("R%d %02d", r.Number, (r.FramesLeft+fps-1)/fps)
	}
	ebitenutil.DebugPrintAt(screen, info, f.opts.ScreenW/2-16, 10)

	if f.bannerT > 0 {
		ebitenutil.DebugPrintAt(screen, f.banner, f.opts.ScreenW/2-len(f.banner)*3, f.opts.ScreenH/3)
	}

	debug := fmt.Sprintf("frame %d  TPS %.0f", st.Frame, ebiten.ActualTPS())
	if f.opts.Replay != nil {
		debug += fmt.Sprintf("  replay %d/%d", f.opts.Replay.CurrentFrame(), f.opts.Replay.TotalFrames())
	}
	ebitenutil.DebugPrintAt(screen, debug, 10, f.opts.ScreenH-16)
}
