// This file is part of Moviecore.
//
// Moviecore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Moviecore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Moviecore.  If not, see <https://www.gnu.org/licenses/>.

// Package laglog records which frames of a movie were lag frames. A lag frame
// is a frame during which the emulated program did not sample the input.
//
// As well as the current lag state of each frame, the previous state is also
// kept. This allows a user interface to show frames whose lag state has changed
// since the last time the frame was emulated.
package laglog

import (
	"io"
	"slices"

	"github.com/goccy/go-json"

	"github.com/jetsetilly/moviecore/curated"
)

// LagLog records the lag state for every frame that has been emulated. The
// zero value is ready to use.
type LagLog struct {
	lagged []bool
	wasLag []bool
}

// the serialised form of the LagLog
type document struct {
	LagLog []bool
	WasLag []bool
}

// Clear all frames from the log.
func (l *LagLog) Clear() {
	l.lagged = l.lagged[:0]
	l.wasLag = l.wasLag[:0]
}

// Len returns the number of frames in the log.
func (l *LagLog) Len() int {
	return len(l.lagged)
}

// Set the lag state of the frame. The frame must already be in the log or be
// the next frame after the end of the log. Returns false if the frame could
// not be set.
func (l *LagLog) Set(frame int, lagged bool) bool {
	switch {
	case frame < 0:
		return false
	case frame < len(l.lagged):
		l.wasLag[frame] = l.lagged[frame]
		l.lagged[frame] = lagged
	case frame == len(l.lagged):
		l.lagged = append(l.lagged, lagged)
		l.wasLag = append(l.wasLag, lagged)
	default:
		return false
	}
	return true
}

// Lagged returns the lag state of the frame. The second return value is false
// if the frame is not in the log.
func (l *LagLog) Lagged(frame int) (bool, bool) {
	if frame < 0 || frame >= len(l.lagged) {
		return false, false
	}
	return l.lagged[frame], true
}

// History returns the previous lag state of the frame. The second return
// value is false if the frame is not in the log.
func (l *LagLog) History(frame int) (bool, bool) {
	if frame < 0 || frame >= len(l.wasLag) {
		return false, false
	}
	return l.wasLag[frame], true
}

// RemoveFrom removes the frame and every frame after it. Returns true if any
// frames were removed.
func (l *LagLog) RemoveFrom(frame int) bool {
	frame = max(frame, 0)
	if frame >= len(l.lagged) {
		return false
	}
	l.lagged = l.lagged[:frame]
	l.wasLag = l.wasLag[:frame]
	return true
}

// StartFromFrame discards the frames before offset so that offset becomes
// frame zero.
func (l *LagLog) StartFromFrame(offset int) {
	offset = min(max(offset, 0), len(l.lagged))
	l.lagged = slices.Clone(l.lagged[offset:])
	l.wasLag = slices.Clone(l.wasLag[offset:])
}

// FromLagLog replaces the contents of the log with a copy of another log.
func (l *LagLog) FromLagLog(other *LagLog) {
	l.lagged = slices.Clone(other.lagged)
	l.wasLag = slices.Clone(other.wasLag)
}

// Save the log as a JSON document.
func (l *LagLog) Save(w io.Writer) error {
	doc := document{
		LagLog: l.lagged,
		WasLag: l.wasLag,
	}
	if doc.LagLog == nil {
		doc.LagLog = []bool{}
	}
	if doc.WasLag == nil {
		doc.WasLag = []bool{}
	}

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return curated.Errorf("laglog: %v", err)
	}
	return nil
}

// Load the log from a JSON document created by Save(). The existing contents
// of the log are replaced. On error the log is left empty.
func (l *LagLog) Load(r io.Reader) error {
	l.Clear()

	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return curated.Errorf("laglog: %v", err)
	}

	if len(doc.WasLag) != len(doc.LagLog) {
		return curated.Errorf("laglog: history length (%d) does not match log length (%d)", len(doc.WasLag), len(doc.LagLog))
	}

	l.lagged = doc.LagLog
	l.wasLag = doc.WasLag

	return nil
}
