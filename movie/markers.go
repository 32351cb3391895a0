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

package movie

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/logger"
)

// Marker is a user annotation at a frame of the input log.
type Marker struct {
	Frame   int
	Message string
}

func (m Marker) String() string {
	return fmt.Sprintf("%d\t%s", m.Frame, m.Message)
}

// ParseMarker is the inverse of Marker.String(). The frame and the message are
// separated by a tab character.
func ParseMarker(line string) (Marker, error) {
	f, msg, ok := strings.Cut(line, "\t")
	if !ok {
		return Marker{}, curated.Errorf("marker: missing message (%s)", line)
	}
	frame, err := strconv.Atoi(strings.TrimSpace(f))
	if err != nil {
		return Marker{}, curated.Errorf("marker: %v", err)
	}
	if frame < 0 {
		return Marker{}, curated.Errorf("marker: negative frame (%d)", frame)
	}
	return Marker{Frame: frame, Message: msg}, nil
}

// Markers is a set of markers, unique by frame and kept in frame order. The
// zero value is ready to use.
type Markers struct {
	markers []Marker
}

func (m *Markers) search(frame int) (int, bool) {
	return slices.BinarySearchFunc(m.markers, frame, func(mk Marker, frame int) int {
		return mk.Frame - frame
	})
}

// Add a marker. Any existing marker at the same frame is replaced.
func (m *Markers) Add(frame int, message string) {
	i, ok := m.search(frame)
	if ok {
		m.markers[i].Message = message
		return
	}
	m.markers = slices.Insert(m.markers, i, Marker{Frame: frame, Message: message})
}

// Remove the marker at the frame. Returns false if there is no marker.
func (m *Markers) Remove(frame int) bool {
	i, ok := m.search(frame)
	if !ok {
		return false
	}
	m.markers = slices.Delete(m.markers, i, i+1)
	return true
}

// At returns the marker at the frame.
func (m *Markers) At(frame int) (Marker, bool) {
	i, ok := m.search(frame)
	if !ok {
		return Marker{}, false
	}
	return m.markers[i], true
}

// All returns a copy of the markers in frame order.
func (m *Markers) All() []Marker {
	return slices.Clone(m.markers)
}

// Len returns the number of markers.
func (m *Markers) Len() int {
	return len(m.markers)
}

// Clear removes all markers.
func (m *Markers) Clear() {
	m.markers = m.markers[:0]
}

// ShiftFrom returns a new set of markers containing only the markers that are
// after the frame, renumbered so that frame becomes frame zero.
func (m *Markers) ShiftFrom(frame int) *Markers {
	n := &Markers{}
	for _, mk := range m.markers {
		if mk.Frame > frame {
			n.markers = append(n.markers, Marker{Frame: mk.Frame - frame, Message: mk.Message})
		}
	}
	return n
}

// String returns the markers one per line.
func (m *Markers) String() string {
	var s strings.Builder
	for _, mk := range m.markers {
		s.WriteString(mk.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Load markers from io.Reader, replacing any existing markers. Blank lines are
// ignored. Lines that can not be parsed are logged and skipped.
func (m *Markers) Load(r io.Reader) error {
	m.Clear()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		mk, err := ParseMarker(line)
		if err != nil {
			logger.Log(logger.Allow, "movie", err)
			continue
		}
		m.Add(mk.Frame, mk.Message)
	}

	return scanner.Err()
}
