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

// Recording is the plain kind of movie. It contains the input log, the header
// and the anchor, along with any comments and subtitles.
type Recording struct {
	core
}

func (s *Session) newRecording(filename string) *Recording {
	return &Recording{
		core: newCore(s, filename, LegacyVersionString()),
	}
}

// PreferredExtension implements the Movie interface.
func (rec *Recording) PreferredExtension() string {
	return RecordingExtension
}

// Load implements the Movie interface. If preload is true then only the header
// and input log are loaded.
func (rec *Recording) Load(preload bool) error {
	return rec.load(preload, nil, nil)
}

// PreLoadHeaderAndLength implements the Movie interface.
func (rec *Recording) PreLoadHeaderAndLength() error {
	return rec.Load(true)
}

// Save implements the Movie interface.
func (rec *Recording) Save() error {
	return rec.write(rec.filename, false, nil)
}

// SaveBackup implements the Movie interface.
func (rec *Recording) SaveBackup() error {
	return rec.backup(nil)
}
