package session

import "github.com/younwookim/duel/internal/domain/input"

const inputRingSize = 128

// inputRecord stores a player's input for one frame
type inputRecord struct {
	frame     uint32
	vec       input.Vector
	confirmed bool
	set       bool
}

// inputRing is a ring buffer of recent inputs indexed by frame number
type inputRing struct {
	records [inputRingSize]inputRecord
}

// store saves the input of a frame, overwriting whatever used the slot before
func (r *inputRing) store(frame uint32, vec input.Vector, confirmed bool) {
	r.records[frame%inputRingSize] = inputRecord{
		frame:     frame,
		vec:       vec,
		confirmed: confirmed,
		set:       true,
	}
}

// get retrieves the record of a frame. Returns false if not found or if the
// slot has been overwritten.
func (r *inputRing) get(frame uint32) (inputRecord, bool) {
	rec := r.records[frame%inputRingSize]
	if !rec.set || rec.frame != frame {
		return inputRecord{}, false
	}
	return rec, true
}

// lastConfirmedBefore returns the newest confirmed input older than frame,
// or neutral input if none is left in the ring
func (r *inputRing) lastConfirmedBefore(frame uint32) input.Vector {
	for back := uint32(1); back < inputRingSize && back <= frame; back++ {
		if rec, ok := r.get(frame - back); ok && rec.confirmed {
			return rec.vec
		}
	}
	return input.Vector{}
}
