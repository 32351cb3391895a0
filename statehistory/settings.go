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
	"github.com/go-playground/validator/v10"

	"github.com/jetsetilly/moviecore/curated"
)

var validate = validator.New()

// Settings for the state history. The settings are stored in the project file
// alongside the state history itself and in the user's preferences as the
// default for new projects.
type Settings struct {
	// the maximum number of states to keep, not counting reserved frames
	MaxEntries int `json:"MaxEntries" toml:"max_entries" validate:"gte=1"`

	// how often a state is kept. a value of 1 means every frame, a value of 5
	// means every fifth frame, etc. reserved frames are always kept
	SnapshotFreq int `json:"SnapshotFreq" toml:"snapshot_freq" validate:"gte=1"`
}

// the maximum number of entries to store before the earliest states are
// forgotten.
const maxEntries = 100

// how often a state is captured by default.
const snapshotFreq = 1

// DefaultSettings returns the settings used when no other settings are
// available.
func DefaultSettings() Settings {
	return Settings{
		MaxEntries:   maxEntries,
		SnapshotFreq: snapshotFreq,
	}
}

// Validate returns an error if any of the fields are out of range.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return curated.Errorf("statehistory: settings: %v", err)
	}
	return nil
}
