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
	"path/filepath"
	"strings"

	"github.com/jetsetilly/moviecore/logger"
	"github.com/jetsetilly/moviecore/notifications"
	"github.com/jetsetilly/moviecore/prefs"
	"github.com/jetsetilly/moviecore/version"
)

// Emulator is the running emulation that the movie is being played back on.
type Emulator interface {
	// the current frame number of the emulation
	Frame() int
}

// CycleTiming is implemented by emulators that count CPU cycles.
type CycleTiming interface {
	CycleCount() int64
	ClockRate() int64
}

// Session creates movie instances. Every movie created by the session shares
// the session's settings, emulator version, emulator and notification
// handler.
type Session struct {
	settings        prefs.Settings
	emulatorVersion string
	emulator        Emulator
	notify          notifications.Notify
}

// NewSession is the preferred method of initialisation for the Session type.
//
// The emulator version is stamped into every movie saved by the session. An
// empty emulator version is replaced by version.EmulatorVersion(). The
// emulator and notify arguments can both be nil.
func NewSession(settings prefs.Settings, emulatorVersion string, emulator Emulator, notify notifications.Notify) *Session {
	if err := settings.Validate(); err != nil {
		logger.Log(logger.Allow, "movie", err)
		settings = prefs.Default()
	}
	if emulatorVersion == "" {
		emulatorVersion = version.EmulatorVersion()
	}
	return &Session{
		settings:        settings,
		emulatorVersion: emulatorVersion,
		emulator:        emulator,
		notify:          notify,
	}
}

// Get returns a new movie instance for the filename. The movie is not loaded.
// A filename with the project extension results in a Project, any other
// filename results in a Recording.
func (s *Session) Get(filename string) Movie {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if strings.EqualFold(ext, ProjectExtension) {
		return s.newProject(filename)
	}
	return s.newRecording(filename)
}

// Settings returns the session settings.
func (s *Session) Settings() prefs.Settings {
	return s.settings
}

// BackupDirectory returns the directory that backup files are written to.
func (s *Session) BackupDirectory() string {
	return s.settings.BackupDirectory
}

// EmulatorVersion returns the version stamped into saved movies.
func (s *Session) EmulatorVersion() string {
	return s.emulatorVersion
}

// warn the user of a notice. the notice is logged regardless of whether there
// is a notification handler
func (s *Session) warn(notice notifications.Notice) {
	logger.Log(logger.Allow, "movie", notice.Message())
	if s.notify == nil {
		return
	}
	if err := s.notify.Notify(notice); err != nil {
		logger.Log(logger.Allow, "movie", err)
	}
}
