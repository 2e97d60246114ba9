package persist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/duel/internal/application/replay"
	"github.com/younwookim/duel/internal/application/sim/simtest"
)

type mapStore map[string][]byte

func (m mapStore) LoadItem(key string) ([]byte, error) { return m[key], nil }

func (m mapStore) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

type brokenStore struct{}

var errDisk = errors.New("disk full")

func (brokenStore) LoadItem(string) ([]byte, error) { return nil, errDisk }
func (brokenStore) SaveItem(string, []byte) error   { return errDisk }

func TestStore_LastReplay(t *testing.T) {
	s := &Store{items: mapStore{}}

	got, err := s.LastReplay()
	require.NoError(t, err)
	assert.Nil(t, got, "nothing saved yet")

	rec := replay.NewRecorder(7)
	for _, in := range simtest.Inputs(20, 3) {
		rec.RecordFrame(in)
	}
	require.NoError(t, s.SaveReplay(rec.Data()))

	got, err = s.LastReplay()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Data().ConfigHash, got.ConfigHash)
	assert.Len(t, got.Frames, 20)
	assert.Equal(t, rec.Data().Frames[5], got.Frames[5])
}

func TestStore_Errors(t *testing.T) {
	s := &Store{items: brokenStore{}}

	assert.ErrorIs(t, s.SaveReplay(replay.ReplayData{}), errDisk)
	_, err := s.LastReplay()
	assert.ErrorIs(t, err, errDisk)

	corrupt := &Store{items: mapStore{lastReplayKey: []byte("{")}}
	_, err = corrupt.LastReplay()
	assert.Error(t, err)
}
