// Package input converts between a combatant's button state and the
// fixed-layout byte vector exchanged with the rollback session.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput is returned when an input vector does not match the layout
var ErrMalformedInput = errors.New("malformed input vector")

// Size is the length of an encoded input vector in bytes
const Size = 7

// LayoutVersion identifies the byte layout below. Peers and replays must agree on it.
const LayoutVersion = 1

// Byte offsets inside a vector
const (
	OffsetLeftRight = iota
	OffsetUpDown
	OffsetJump
	OffsetHeavy
	OffsetLight
	OffsetSpecial
	OffsetDash
)

// Vector is one player's encoded input for one frame
type Vector [Size]byte

// Bytes returns the vector as a slice
func (v Vector) Bytes() []byte {
	return v[:]
}

// Snapshot is one player's decoded input for one frame
type Snapshot struct {
	LeftRight int8 // -1 left, +1 right
	UpDown    int8 // -1 down, +1 up
	Jump      bool
	Heavy     bool
	Light     bool
	Special   bool
	Dash      bool
}

// Pressed reports whether anything is held
func (s Snapshot) Pressed() bool {
	return s != Snapshot{}
}

// String formats the snapshot for logs
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "lr=%d ud=%d", s.LeftRight, s.UpDown)
	for _, btn := range []struct {
		name string
		on   bool
	}{
		{"jump", s.Jump},
		{"heavy", s.Heavy},
		{"light", s.Light},
		{"special", s.Special},
		{"dash", s.Dash},
	} {
		if btn.on {
			b.WriteString(" ")
			b.WriteString(btn.name)
		}
	}
	return b.String()
}

// Encode packs a snapshot into a vector. Axis values are clamped to -1..1.
func Encode(s Snapshot) Vector {
	var v Vector
	v[OffsetLeftRight] = byte(clampAxis(s.LeftRight))
	v[OffsetUpDown] = byte(clampAxis(s.UpDown))
	v[OffsetJump] = boolByte(s.Jump)
	v[OffsetHeavy] = boolByte(s.Heavy)
	v[OffsetLight] = boolByte(s.Light)
	v[OffsetSpecial] = boolByte(s.Special)
	v[OffsetDash] = boolByte(s.Dash)
	return v
}

// Decode reads the vector of the given player from a frame's input vectors
func Decode(frame [][]byte, player int) (Snapshot, error) {
	if player < 0 || player >= len(frame) {
		return Snapshot{}, fmt.Errorf("%w: player %d not in frame of %d", ErrMalformedInput, player, len(frame))
	}
	return DecodeVector(frame[player])
}

// DecodeVector validates and unpacks a single vector
func DecodeVector(raw []byte) (Snapshot, error) {
	if len(raw) != Size {
		return Snapshot{}, fmt.Errorf("%w: length %d, want %d", ErrMalformedInput, len(raw), Size)
	}

	lr, err := axis(raw, OffsetLeftRight)
	if err != nil {
		return Snapshot{}, err
	}
	ud, err := axis(raw, OffsetUpDown)
	if err != nil {
		return Snapshot{}, err
	}

	var buttons [5]bool
	for i := range buttons {
		off := OffsetJump + i
		switch raw[off] {
		case 0:
		case 1:
			buttons[i] = true
		default:
			return Snapshot{}, fmt.Errorf("%w: byte %d is %d, want 0 or 1", ErrMalformedInput, off, raw[off])
		}
	}

	return Snapshot{
		LeftRight: lr,
		UpDown:    ud,
		Jump:      buttons[0],
		Heavy:     buttons[1],
		Light:     buttons[2],
		Special:   buttons[3],
		Dash:      buttons[4],
	}, nil
}

// MustDecode is Decode for the simulation step, where a malformed vector is fatal
func MustDecode(frame [][]byte, player int) Snapshot {
	s, err := Decode(frame, player)
	if err != nil {
		panic(err)
	}
	return s
}

func axis(raw []byte, off int) (int8, error) {
	v := int8(raw[off])
	if v < -1 || v > 1 {
		return 0, fmt.Errorf("%w: axis byte %d is %d", ErrMalformedInput, off, v)
	}
	return v, nil
}

func clampAxis(v int8) int8 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
