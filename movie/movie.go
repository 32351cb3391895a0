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

// Package movie implements the two kinds of movie file: the Recording, which
// is a plain input log suitable for sharing, and the Project, which adds the
// features needed while a movie is being edited (markers, branches, a lag log,
// the verification log and the state history).
//
// Movies are obtained from a Session using the filename of the movie. The
// kind of movie is decided by the file extension.
//
//	s := movie.NewSession(settings, "", emu, notify)
//	m := s.Get("game.bk2")
//	err := m.Load(false)
//
// Load() fails only if the file does not exist, if it is not a movie
// container, or if the header or input log are missing. Problems with any
// other part of the file are logged and the affected field is left in its
// default state.
//
// Movies can be converted from one kind to another, and a Project can be
// re-anchored to start from a savestate or from save RAM. See the To*()
// functions.
package movie

import (
	"github.com/jetsetilly/moviecore/movie/header"
)

// Sentinel error returned by Load() when the movie file does not exist.
const NotFound = "movie: file not found (%s)"

// File extensions for the two kinds of movie.
const (
	RecordingExtension = "bk2"
	ProjectExtension   = "tasproj"
)

// Movie is implemented by Recording and Project.
type Movie interface {
	// the movie's identity
	Filename() string

	// the file extension preferred by this kind of movie
	PreferredExtension() string

	Load(preload bool) error
	PreLoadHeaderAndLength() error
	Save() error
	SaveBackup() error

	// Changes returns true if the movie has been changed since it was last
	// loaded or saved
	Changes() bool

	Header() *header.Header

	LogEntries() []string
	CopyLog(entries []string) error
	AppendFrame(entry string) error
	Truncate(frame int)
	FrameCount() int
	LogKey() string
	SetLogKey(key string)

	Comments() []string
	SetComments(comments []string)
	Subtitles() Subtitles
	SetSubtitles(subtitles Subtitles)
	SyncSettings() string
	SetSyncSettings(json string)

	Anchor() Anchor
	SetAnchor(anchor Anchor)

	base() *core
}
