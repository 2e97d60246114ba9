package replay

import (
	"fmt"

	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

// Version is the replay file format version
const Version = "1.0"

// FrameInput records both players' input vectors for a single frame.
// Vectors are base64 in JSON.
type FrameInput struct {
	F int                        `json:"f"` // Frame number
	P [entity.PlayerCount][]byte `json:"p"`
}

// Vectors decodes the frame's input vectors
func (fi FrameInput) Vectors() ([entity.PlayerCount]input.Vector, error) {
	var out [entity.PlayerCount]input.Vector
	for i, raw := range fi.P {
		if _, err := input.DecodeVector(raw); err != nil {
			return out, fmt.Errorf("frame %d player %d: %w", fi.F, i, err)
		}
		copy(out[i][:], raw)
	}
	return out, nil
}

// ReplayData contains all data needed to replay a match
type ReplayData struct {
	Version       string       `json:"version"`
	LayoutVersion int          `json:"layoutVersion"`
	ConfigHash    string       `json:"configHash"`
	StartTime     string       `json:"startTime"`
	Frames        []FrameInput `json:"frames"`
}

// HashString formats a tables hash the way replays store it
func HashString(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
