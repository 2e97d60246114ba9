package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/duel/internal/domain/entity"
	"github.com/younwookim/duel/internal/domain/input"
)

// ErrEmptyReplay is returned when saving a recording without frames
var ErrEmptyReplay = errors.New("no frames to save")

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a recorder for a match running on tables with the given hash
func NewRecorder(configHash uint64) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:       Version,
			LayoutVersion: input.LayoutVersion,
			ConfigHash:    HashString(configHash),
			StartTime:     time.Now().Format(time.RFC3339),
			Frames:        make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records the input vectors a frame was confirmed with
func (r *Recorder) RecordFrame(vecs [entity.PlayerCount]input.Vector) {
	if !r.recording {
		return
	}

	var fi FrameInput
	fi.F = r.frame
	for i := range vecs {
		fi.P[i] = vecs[i].Bytes()
	}
	r.data.Frames = append(r.data.Frames, fi)
	r.frame++
}

// Encode returns the recording as indented JSON
func (r *Recorder) Encode() ([]byte, error) {
	return Encode(r.data)
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	return SaveFile(filename, r.data)
}

// Encode returns replay data as indented JSON
func Encode(data ReplayData) ([]byte, error) {
	if len(data.Frames) == 0 {
		return nil, ErrEmptyReplay
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode replay: %w", err)
	}
	return b, nil
}

// SaveFile writes replay data to a file
func SaveFile(filename string, data ReplayData) error {
	b, err := Encode(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		return fmt.Errorf("failed to write replay: %w", err)
	}
	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded replay
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
