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

package catalogue

import (
	"path/filepath"
	"strings"

	"github.com/jetsetilly/moviecore/movie"
)

// MovieExtensions is the list of file extensions recognised as movies.
var MovieExtensions = [...]string{movie.RecordingExtension, movie.ProjectExtension}

// IsMovie returns true if the filename has a movie extension. The comparison
// is case insensitive.
func IsMovie(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	for _, m := range MovieExtensions {
		if strings.EqualFold(ext, m) {
			return true
		}
	}
	return false
}

// TrimMovieExt removes a movie extension from the end of the string. The
// string is returned unchanged if it does not end with a movie extension.
func TrimMovieExt(s string) string {
	if IsMovie(s) {
		return strings.TrimSuffix(s, filepath.Ext(s))
	}
	return s
}
