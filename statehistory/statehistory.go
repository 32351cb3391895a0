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

// Package statehistory keeps a history of emulation states, indexed by frame
// number. The history is used by project movies to quickly return to an
// earlier point in the movie without replaying from the start.
//
// The contents of a state are opaque to this package. States are captured by
// the caller and handed to the Manager with the Capture() function.
//
// Some frames are "reserved". States for reserved frames are never evicted from
// the history. Whether a frame is reserved is decided by the owner of the
// Manager through the IsReserved function.
package statehistory

import (
	"slices"

	"github.com/jetsetilly/moviecore/logger"
)

// IsReserved returns true if the state for the frame should never be evicted.
type IsReserved func(frame int) bool

// Manager contains the state history for a movie.
type Manager struct {
	settings   Settings
	isReserved IsReserved

	// frame numbers in ascending order. every frame in the list has an entry
	// in the states map
	frames []int
	states map[int][]byte

	disposed bool
}

// NewManager is the preferred method of initialisation for the Manager type.
// The isReserved argument can be nil, in which case only frame zero is
// reserved.
func NewManager(settings Settings, isReserved IsReserved) *Manager {
	if err := settings.Validate(); err != nil {
		logger.Log(logger.Allow, "statehistory", err)
		settings = DefaultSettings()
	}

	if isReserved == nil {
		isReserved = func(frame int) bool {
			return frame == 0
		}
	}

	return &Manager{
		settings:   settings,
		isReserved: isReserved,
		states:     make(map[int][]byte),
	}
}

// Settings returns the current settings.
func (m *Manager) Settings() Settings {
	return m.settings
}

// UpdateSettings changes the settings of the manager. Existing states are
// evicted as required by the new settings. Invalid settings are ignored.
func (m *Manager) UpdateSettings(settings Settings) {
	if err := settings.Validate(); err != nil {
		logger.Log(logger.Allow, "statehistory", err)
		return
	}
	m.settings = settings
	m.evict()
}

// Count returns the number of states in the history.
func (m *Manager) Count() int {
	return len(m.frames)
}

// Frames returns a copy of the frame numbers for which a state exists.
func (m *Manager) Frames() []int {
	return slices.Clone(m.frames)
}

// HasState returns true if a state exists for the frame.
func (m *Manager) HasState(frame int) bool {
	_, ok := m.states[frame]
	return ok
}

// Capture adds the state for the frame to the history. The state is only kept
// if the frame is reserved or if it falls on the snapshot frequency. Returns
// true if the state was kept.
//
// The state data is not copied. The caller should not alter the data after
// calling Capture().
func (m *Manager) Capture(frame int, state []byte) bool {
	if m.disposed || frame < 0 {
		return false
	}

	if !m.isReserved(frame) && frame%m.settings.SnapshotFreq != 0 {
		return false
	}

	if _, ok := m.states[frame]; !ok {
		i, _ := slices.BinarySearch(m.frames, frame)
		m.frames = slices.Insert(m.frames, i, frame)
	}
	m.states[frame] = state

	m.evict()

	return m.HasState(frame)
}

// State returns the state for the latest frame that is at or before the
// requested frame. The frame number of the returned state is also returned.
func (m *Manager) State(frame int) (int, []byte, bool) {
	i, found := slices.BinarySearch(m.frames, frame)
	if !found {
		if i == 0 {
			return 0, nil, false
		}
		i--
	}
	fn := m.frames[i]
	return fn, m.states[fn], true
}

// InvalidateAfter removes all states for frames after the specified frame.
// Returns true if any states were removed.
func (m *Manager) InvalidateAfter(frame int) bool {
	i, found := slices.BinarySearch(m.frames, frame)
	if found {
		i++
	}
	if i >= len(m.frames) {
		return false
	}
	for _, fn := range m.frames[i:] {
		delete(m.states, fn)
	}
	m.frames = m.frames[:i]
	return true
}

// Clear removes all states from the history.
func (m *Manager) Clear() {
	m.frames = m.frames[:0]
	clear(m.states)
}

// Dispose releases the states held by the manager. The manager should not be
// used after Dispose() has been called.
func (m *Manager) Dispose() {
	m.Clear()
	m.frames = nil
	m.states = nil
	m.disposed = true
}

// evict the earliest non-reserved states until the number of non-reserved
// states is within the maximum allowed by the settings.
func (m *Manager) evict() {
	var unreserved int
	for _, fn := range m.frames {
		if !m.isReserved(fn) {
			unreserved++
		}
	}

	excess := unreserved - m.settings.MaxEntries
	if excess <= 0 {
		return
	}

	m.frames = slices.DeleteFunc(m.frames, func(fn int) bool {
		if excess > 0 && !m.isReserved(fn) {
			delete(m.states, fn)
			excess--
			return true
		}
		return false
	})
}
