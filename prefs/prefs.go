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

// Package prefs holds the user's settings for movie sessions. Settings are
// stored on disk as TOML.
//
//	backup_dir = "/home/user/.config/moviecore/backups"
//	compression_level = 1
//
//	[state_history]
//	max_entries = 100
//	snapshot_freq = 1
//
// Settings can be overridden for the duration of a session with a prefs
// string. See the Override() function.
package prefs

import (
	"errors"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/logger"
	"github.com/jetsetilly/moviecore/paths"
	"github.com/jetsetilly/moviecore/statehistory"
)

// DefaultPrefsFile is the default filename of the preferences file.
const DefaultPrefsFile = "preferences.toml"

// the name of the backups directory in the resource path.
const backupsDir = "backups"

// the default compression level for new movie files. favours speed over size.
const compressionLevel = 1

var validate = validator.New()

// Settings for a movie session.
type Settings struct {
	// directory in which backup files are created
	BackupDirectory string `toml:"backup_dir" validate:"required"`

	// compression level used when writing movie files. zero means no
	// compression
	CompressionLevel int `toml:"compression_level" validate:"gte=0,lte=9"`

	// default settings for the state history of new projects
	StateHistory statehistory.Settings `toml:"state_history"`
}

// Default returns the default settings. The backup directory is placed in
// the resource path.
func Default() Settings {
	s := Settings{
		CompressionLevel: compressionLevel,
		StateHistory:     statehistory.DefaultSettings(),
	}

	pth, err := paths.ResourcePath(backupsDir, "")
	if err != nil {
		logger.Logf(logger.Allow, "prefs", "default backup directory: %v", err)
		pth = backupsDir
	}
	s.BackupDirectory = pth

	return s
}

// Validate returns an error if any setting is out of range.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	return nil
}

// Load settings from the named file. Settings that are missing from the file
// keep their default value. If the file does not exist then the default
// settings are returned without error.
func Load(path string) (Settings, error) {
	s := Default()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&s); err != nil {
		return Default(), curated.Errorf("prefs: %v", err)
	}

	if err := s.Validate(); err != nil {
		return Default(), err
	}

	return s, nil
}

// Save settings to the named file. Any existing file will be replaced.
func (s Settings) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := paths.EnsureDir(path); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	err = toml.NewEncoder(f).Encode(s)
	if err != nil {
		_ = f.Close()
		return curated.Errorf("prefs: %v", err)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}
