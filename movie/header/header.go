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

// Package header is the metadata model for movie files. A header is an
// ordered list of key/value pairs. Keys are unique. The order in which keys
// are added is the order in which they are serialised but lookups do not
// depend on the order.
//
// The header is an open schema. There is no error for an unknown key. The
// well-known keys are listed as constants in this package.
package header

import (
	"bufio"
	"io"
	"maps"
	"slices"
	"strings"
)

// List of well-known header keys.
const (
	EmulatorVersion         = "EmulatorVersion"
	OriginalEmulatorVersion = "OriginalEmulatorVersion"
	MovieVersion            = "MovieVersion"
	Platform                = "Platform"
	GameName                = "GameName"
	Author                  = "Author"
	Rerecords               = "rerecordCount"
	StartsFromSavestate     = "StartsFromSavestate"
	StartsFromSaveRam       = "StartsFromSaveRam"
	SHA1                    = "SHA1"
	FirmwareSHA1            = "FirmwareSHA1"
	Core                    = "Core"
	BoardName               = "BoardName"
	Pal                     = "PAL"
	CycleCount              = "CycleCount"
	ClockRate               = "ClockRate"
)

// Header is an insertion ordered map of strings. The zero value is not usable.
// Use New() to create a Header.
type Header struct {
	keys   []string
	values map[string]string
}

// New is the preferred method of initialisation for the Header type.
func New() *Header {
	return &Header{
		values: make(map[string]string),
	}
}

// Get returns the value for key and whether the key exists.
func (h *Header) Get(key string) (string, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Value returns the value for key or the empty string if the key does not
// exist.
func (h *Header) Value(key string) string {
	return h.values[key]
}

// Set the value for key. A new key is added to the end of the header. An
// existing key keeps its position.
func (h *Header) Set(key string, value string) {
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

// Add sets the value for key only if the key does not already exist. Returns
// true if the value was added.
func (h *Header) Add(key string, value string) bool {
	if _, ok := h.values[key]; ok {
		return false
	}
	h.Set(key, value)
	return true
}

// Remove the key from the header. Removing a key that does not exist is not
// an error.
func (h *Header) Remove(key string) {
	if _, ok := h.values[key]; !ok {
		return
	}
	delete(h.values, key)
	h.keys = slices.DeleteFunc(h.keys, func(k string) bool {
		return k == key
	})
}

// Contains returns true if the key exists.
func (h *Header) Contains(key string) bool {
	_, ok := h.values[key]
	return ok
}

// Len returns the number of keys.
func (h *Header) Len() int {
	return len(h.keys)
}

// Keys returns a copy of the keys in insertion order.
func (h *Header) Keys() []string {
	return slices.Clone(h.keys)
}

// Clear removes all keys.
func (h *Header) Clear() {
	h.keys = h.keys[:0]
	clear(h.values)
}

// Entries returns a copy of the header as an unordered map.
func (h *Header) Entries() map[string]string {
	return maps.Clone(h.values)
}

// Replace the entire contents of the header with the entries in the map.
// Because a map has no order, keys are added in sorted order.
func (h *Header) Replace(entries map[string]string) {
	h.Clear()
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		h.Set(k, entries[k])
	}
}

// String returns the header as a sequence of "<key> <value>" lines.
func (h *Header) String() string {
	var s strings.Builder
	for _, k := range h.keys {
		s.WriteString(k)
		s.WriteString(" ")
		s.WriteString(h.values[k])
		s.WriteString("\n")
	}
	return s.String()
}

// Parse header lines from io.Reader and add them to the header. Parsing is
// tolerant: blank lines and lines without a value are skipped and the first
// occurrence of a duplicated key is the one that is kept.
//
// Parse does not clear the header before adding new entries.
func (h *Header) Parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		k, v, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		h.Add(k, v)
	}
	return scanner.Err()
}
