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

// Package lump reads and writes the container format used by movie files. A
// container is a zip archive made up of named regions, called lumps. A lump is
// either text or binary data.
//
// Every container includes a version lump. A zip archive without the version
// lump is not considered to be a container.
//
// Lumps are requested from a Reader with either the abort flag set or not set.
// If the abort flag is set and the lump is missing then the request fails
// with a MissingLump error. Otherwise, the request returns false to indicate
// that the lump was not found and the caller should use a default value.
package lump

import (
	"fmt"
	"path"
	"strings"
)

// Sentinel errors.
const (
	NotAContainer = "lump: not a container (%s)"
	MissingLump   = "lump: missing lump (%s)"
	DuplicateLump = "lump: duplicate lump (%s)"
	LumpTooLarge  = "lump: lump too large (%s: %s)"
)

// MaxBinaryLength is the largest binary lump that a Reader will accept. The
// length of a lump is taken from the container's directory and so can not be
// trusted in a damaged container.
const MaxBinaryLength = 256 * 1024 * 1024

// ID is the name of a lump in the container.
type ID string

// List of lumps used by movie files.
const (
	Version ID = "MovieContainer.txt"

	Movieheader   ID = "Header.txt"
	Comments      ID = "Comments.txt"
	Subtitles     ID = "Subtitles.txt"
	SyncSettings  ID = "SyncSettings.json"
	Input         ID = "Input Log.txt"
	Corestate     ID = "Core.bin"
	CorestateText ID = "CoreText.txt"
	Framebuffer   ID = "Framebuffer.bin"
	MovieSaveRam  ID = "SaveRam.bin"

	StateHistorySettings ID = "StateHistorySettings.json"
	LagLog               ID = "LagLog"
	Markers              ID = "Markers.txt"
	ClientSettings       ID = "ClientSettings.json"
	VerificationLog      ID = "VerificationLog.txt"
	Session              ID = "Session.txt"
	StateHistory         ID = "StateHistory.bin"

	BranchHeader      ID = "Branches/Header.json"
	BranchCoreData    ID = "Branches/CoreData.bin"
	BranchInputLog    ID = "Branches/Input Log.txt"
	BranchFramebuffer ID = "Branches/Framebuffer.bin"
	BranchMarkers     ID = "Branches/Markers.txt"
	BranchUserText    ID = "Branches/UserText.txt"
)

// the content of the Version lump
const versionString = "Moviecore Container 1.0"

// Indexed returns a numbered variant of the ID. The number is inserted before
// the extension, if there is one. Used for lumps that can occur more than once,
// such as branches.
//
//	BranchCoreData.Indexed(2) == "Branches/CoreData2.bin"
func (id ID) Indexed(n int) ID {
	s := string(id)
	ext := path.Ext(s)
	return ID(fmt.Sprintf("%s%d%s", strings.TrimSuffix(s, ext), n, ext))
}

func (id ID) String() string {
	return string(id)
}
