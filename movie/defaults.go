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
	"github.com/jetsetilly/moviecore/movie/header"
)

// SystemInfo describes the emulated system when a new movie is started.
type SystemInfo struct {
	// platform identifier. for example, "NES"
	Platform string

	// name of the emulation core
	Core string

	// board or mapper name. empty if the core does not have board information
	BoardName string

	PAL bool

	// the core's sync settings as a JSON document. empty if the core has no
	// sync settings
	SyncSettings string

	// platform flags. each flag is added to the header with a value of "1".
	// for example, "IsDSi" or "IsVS"
	Flags []string

	// the core counts CPU cycles. see the CycleTiming interface
	CycleTiming bool
}

// GameInfo describes the game being recorded. The zero value means that no
// game is loaded.
type GameInfo struct {
	Name         string
	SHA1         string
	FirmwareSHA1 string
}

// Firmware that has been served to the emulation core.
type Firmware struct {
	HeaderKey string
	SHA1      string
}

// the game name used when no game is loaded
const nullGame = "NULL"

// PopulateDefaultHeader fills the header of a newly created movie with the
// information required to play it back. Firmware is added in the order given.
// A firmware header key that has already been added is not changed.
func PopulateDefaultHeader(m Movie, sys SystemInfo, game GameInfo, firmware []Firmware, author string) {
	c := m.base()
	h := c.header

	h.Set(header.Author, author)
	h.Set(header.EmulatorVersion, c.session.emulatorVersion)
	h.Set(header.OriginalEmulatorVersion, c.session.emulatorVersion)
	h.Set(header.Platform, sys.Platform)

	if sys.SyncSettings != "" {
		c.syncSettings = sys.SyncSettings
	}

	if game.Name == "" {
		h.Set(header.GameName, nullGame)
	} else {
		h.Set(header.GameName, game.Name)
		h.Set(header.SHA1, game.SHA1)
		if game.FirmwareSHA1 != "" {
			h.Set(header.FirmwareSHA1, game.FirmwareSHA1)
		}
	}

	if sys.BoardName != "" {
		h.Set(header.BoardName, sys.BoardName)
	}

	if sys.PAL {
		h.Add(header.Pal, "1")
	}

	for _, f := range firmware {
		h.Add(f.HeaderKey, f.SHA1)
	}

	for _, f := range sys.Flags {
		h.Add(f, "1")
	}

	if sys.CycleTiming {
		h.Add(header.CycleCount, "0")
		h.Add(header.ClockRate, "0")
	}

	h.Set(header.Core, sys.Core)

	c.changes = true
}
