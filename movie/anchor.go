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
	"slices"
)

// Anchor is the starting point that a movie replays from. The three kinds of
// anchor are PowerOn, Savestate and SaveRAM. The header flags of a movie file
// are derived from the anchor when the movie is saved.
type Anchor interface {
	isAnchor()
}

// PowerOn is the anchor for a movie that starts with the emulation being
// switched on.
type PowerOn struct{}

func (PowerOn) isAnchor() {}

// Savestate is the anchor for a movie that starts from an embedded emulation
// state. The state is either binary or textual. If Text is not empty then it
// is used in preference to Binary.
type Savestate struct {
	Binary []byte
	Text   string

	// framebuffer at the moment the state was made. may be nil
	Framebuffer []int32
}

func (Savestate) isAnchor() {}

// IsText returns true if the state is textual.
func (s Savestate) IsText() bool {
	return s.Text != ""
}

// SaveRAM is the anchor for a movie that starts from power on but with the
// cartridge's save RAM preloaded.
type SaveRAM struct {
	Data []byte
}

func (SaveRAM) isAnchor() {}

// a deep copy of the anchor. a nil anchor is returned as PowerOn.
func cloneAnchor(a Anchor) Anchor {
	switch a := a.(type) {
	case Savestate:
		return Savestate{
			Binary:      slices.Clone(a.Binary),
			Text:        a.Text,
			Framebuffer: slices.Clone(a.Framebuffer),
		}
	case SaveRAM:
		return SaveRAM{Data: slices.Clone(a.Data)}
	}
	return PowerOn{}
}
