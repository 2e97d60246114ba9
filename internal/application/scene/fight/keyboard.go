package fight

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/duel/internal/domain/input"
)

// KeySource reports key state for the current tick
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

// EbitenKeys reads the real keyboard
type EbitenKeys struct{}

func (EbitenKeys) IsKeyPressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (EbitenKeys) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// KeyMap binds keys to one player's buttons
type KeyMap struct {
	Left, Right, Up, Down ebiten.Key
	Jump                  ebiten.Key
	Light                 ebiten.Key
	Heavy                 ebiten.Key
	Special               ebiten.Key
	Dash                  ebiten.Key
}

var (
	Player1Keys = KeyMap{
		Left: ebiten.KeyA, Right: ebiten.KeyD, Up: ebiten.KeyW, Down: ebiten.KeyS,
		Jump:    ebiten.KeySpace,
		Light:   ebiten.KeyQ,
		Heavy:   ebiten.KeyE,
		Special: ebiten.KeyR,
		Dash:    ebiten.KeyShiftLeft,
	}
	Player2Keys = KeyMap{
		Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight, Up: ebiten.KeyArrowUp, Down: ebiten.KeyArrowDown,
		Jump:    ebiten.KeyEnter,
		Light:   ebiten.KeyK,
		Heavy:   ebiten.KeyL,
		Special: ebiten.KeyO,
		Dash:    ebiten.KeyShiftRight,
	}
)

// Keyboard turns key state into one player's input snapshot.
// Axes follow the most recently pressed direction while it is held.
type Keyboard struct {
	keys   KeyMap
	lr, ud int8
}

// NewKeyboard creates a keyboard reader for a key map
func NewKeyboard(keys KeyMap) *Keyboard {
	return &Keyboard{keys: keys}
}

// Poll reads the keys for this tick. Jump, attacks and dash fire on press;
// special is reported while held.
func (k *Keyboard) Poll(src KeySource) input.Snapshot {
	k.lr = latchAxis(src, k.lr, k.keys.Left, k.keys.Right)
	k.ud = latchAxis(src, k.ud, k.keys.Down, k.keys.Up)
	return input.Snapshot{
		LeftRight: k.lr,
		UpDown:    k.ud,
		Jump:      src.IsKeyJustPressed(k.keys.Jump),
		Light:     src.IsKeyJustPressed(k.keys.Light),
		Heavy:     src.IsKeyJustPressed(k.keys.Heavy),
		Special:   src.IsKeyPressed(k.keys.Special),
		Dash:      src.IsKeyJustPressed(k.keys.Dash),
	}
}

func latchAxis(src KeySource, cur int8, neg, pos ebiten.Key) int8 {
	switch {
	case src.IsKeyJustPressed(neg):
		return -1
	case src.IsKeyJustPressed(pos):
		return 1
	}

	negHeld, posHeld := src.IsKeyPressed(neg), src.IsKeyPressed(pos)
	switch {
	case cur < 0 && negHeld, cur > 0 && posHeld:
		return cur
	case negHeld:
		return -1
	case posHeld:
		return 1
	}
	return 0
}
