package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data   ReplayData
	inputs [][entity.PlayerCount]input.Vector
	frame  int
}

// NewReplayer validates every recorded vector and creates a replayer
func NewReplayer(data ReplayData) (*Replayer, error) {
	if data.LayoutVersion != input.LayoutVersion {
		return nil, fmt.Errorf("%w: layout %d, want %d", ErrIncompatible, data.LayoutVersion, input.LayoutVersion)
	}
	inputs := make([][entity.PlayerCount]input.Vector, len(data.Frames))
	for i, fi := range data.Frames {
		vecs, err := fi.Vectors()
		if err != nil {
			return nil, err
		}
		inputs[i] = vecs
	}
	return &Replayer{data: data, inputs: inputs}, nil
}

// Parse decodes replay JSON
func Parse(b []byte) (*ReplayData, error) {
	var data ReplayData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return Parse(b)
}

// GetInput returns the input vectors for the current frame and advances
func (r *Replayer) GetInput() ([entity.PlayerCount]input.Vector, bool) {
	if r.frame >= len(r.inputs) {
		return [entity.PlayerCount]input.Vector{}, false
	}
	in := r.inputs[r.frame]
	r.frame++
	return in, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.inputs)
}

// ConfigHash returns the hash of the tables the replay was recorded on
func (r *Replayer) ConfigHash() string {
	return r.data.ConfigHash
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}
