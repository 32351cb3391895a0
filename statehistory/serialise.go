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

package statehistory

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/logger"
)

// serialised state history format
// -------------------------------
//
// magic        [4]byte "MCSH"
// version      uint16
// count        uint32
//
// followed by count entries of
//
// frame        uint32
// length       uint32
// data         [length]byte
//
// all values are little endian. frames must be in ascending order.

var magic = [4]byte{'M', 'C', 'S', 'H'}

const formatVersion uint16 = 1

// the largest state that will be accepted when reading a state history. a
// larger value almost certainly means the data is corrupt
const maxStateSize = 64 * 1024 * 1024

// SaveStateHistory writes every state in the history to io.Writer.
func (m *Manager) SaveStateHistory(w io.Writer) error {
	bw := bufio.NewWriter(w)

	hdr := struct {
		Magic   [4]byte
		Version uint16
		Count   uint32
	}{
		Magic:   magic,
		Version: formatVersion,
		Count:   uint32(len(m.frames)),
	}

	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return curated.Errorf("statehistory: %v", err)
	}

	for _, fn := range m.frames {
		s := m.states[fn]
		if err := binary.Write(bw, binary.LittleEndian, [2]uint32{uint32(fn), uint32(len(s))}); err != nil {
			return curated.Errorf("statehistory: %v", err)
		}
		if _, err := bw.Write(s); err != nil {
			return curated.Errorf("statehistory: %v", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return curated.Errorf("statehistory: %v", err)
	}

	return nil
}

// Create a new Manager from a state history that was written with
// SaveStateHistory(). The settings are applied after the states have been
// read, so states may be evicted if the settings are stricter than they were
// when the history was saved.
//
// An error is returned if the data is not a valid state history. The Manager
// is nil in that case.
func Create(r io.Reader, settings Settings, isReserved IsReserved) (*Manager, error) {
	br := bufio.NewReader(r)

	var hdr struct {
		Magic   [4]byte
		Version uint16
		Count   uint32
	}

	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, curated.Errorf("statehistory: %v", err)
	}
	if hdr.Magic != magic {
		return nil, curated.Errorf("statehistory: unrecognised data")
	}
	if hdr.Version != formatVersion {
		return nil, curated.Errorf("statehistory: unsupported version (%d)", hdr.Version)
	}

	m := NewManager(settings, isReserved)

	var total uint64
	prev := -1

	for i := range int(hdr.Count) {
		var ent [2]uint32
		if err := binary.Read(br, binary.LittleEndian, &ent); err != nil {
			return nil, curated.Errorf("statehistory: entry %d: %v", i, err)
		}

		fn := int(ent[0])
		if fn <= prev {
			return nil, curated.Errorf("statehistory: entry %d: frames out of order", i)
		}
		prev = fn

		if ent[1] > maxStateSize {
			return nil, curated.Errorf("statehistory: entry %d: state too large (%s)", i, humanize.Bytes(uint64(ent[1])))
		}

		s := make([]byte, ent[1])
		if _, err := io.ReadFull(br, s); err != nil {
			return nil, curated.Errorf("statehistory: entry %d: %v", i, err)
		}

		m.frames = append(m.frames, fn)
		m.states[fn] = s
		total += uint64(len(s))
	}

	m.evict()

	logger.Logf(logger.Allow, "statehistory", "restored %d states (%s)", m.Count(), humanize.Bytes(total))

	return m, nil
}
