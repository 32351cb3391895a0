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

// Package catalogue lists the movies in a directory. Each movie is preloaded,
// meaning that only the header and input log are read, so that the listing
// can show the length of each movie and the game it was recorded for.
//
// Movies that can not be preloaded are still listed, with the Err field of
// the entry describing the problem.
package catalogue

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/movie"
	"github.com/jetsetilly/moviecore/movie/header"
)

// Entry is a single item in a directory listing.
type Entry struct {
	Name     string
	Filename string
	IsDir    bool

	// the following fields are not used for directories

	// file extension of the movie, without the leading period
	Kind       string
	FrameCount int
	GameName   string
	Platform   string
	Err        error
}

func (e Entry) String() string {
	return e.Name
}

// List the movies and subdirectories in dir. Files that do not have a movie
// extension are not listed.
func List(s *movie.Session, dir string) ([]Entry, error) {
	de, err := os.ReadDir(dir)
	if err != nil {
		return nil, curated.Errorf("catalogue: %v", err)
	}

	entries := make([]Entry, 0, len(de))

	for _, d := range de {
		fn := filepath.Join(dir, d.Name())

		if d.IsDir() {
			entries = append(entries, Entry{
				Name:     d.Name(),
				Filename: fn,
				IsDir:    true,
			})
			continue
		}

		if !IsMovie(fn) {
			continue
		}

		entries = append(entries, preload(s, fn))
	}

	Sort(entries)

	return entries, nil
}

func preload(s *movie.Session, filename string) Entry {
	m := s.Get(filename)

	e := Entry{
		Name:     filepath.Base(filename),
		Filename: filename,
		Kind:     m.PreferredExtension(),
	}

	if err := m.PreLoadHeaderAndLength(); err != nil {
		e.Err = err
		return e
	}

	e.FrameCount = m.FrameCount()
	e.GameName = m.Header().Value(header.GameName)
	e.Platform = m.Header().Value(header.Platform)

	return e
}
