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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jetsetilly/moviecore/version"
)

// CurrentProjectVersion is the version of the project format written by this
// package.
const CurrentProjectVersion = 1.1

// MinProjectVersion is the earliest version of the project format that can be
// loaded with all project features.
const MinProjectVersion = 1.1

// the word in the movie version string that separates the container version
// from the project version
const projectWord = "project"

// LegacyVersionString is the movie version stamped into a Recording.
func LegacyVersionString() string {
	return fmt.Sprintf("%s v2.0", version.ApplicationName)
}

// ProjectVersionString is the movie version stamped into a Project.
func ProjectVersionString(projectVersion float64) string {
	return fmt.Sprintf("%s Project v%s", LegacyVersionString(), strconv.FormatFloat(projectVersion, 'f', -1, 64))
}

// IsCurrentProjectVersion returns true if the movie version string names a
// project format that can be loaded with all project features. That is, a
// version no earlier than MinProjectVersion and with the same major version
// as CurrentProjectVersion.
func IsCurrentProjectVersion(movieVersion string) bool {
	_, v, ok := strings.Cut(strings.ToLower(movieVersion), projectWord)
	if !ok {
		return false
	}
	v = strings.ReplaceAll(strings.TrimSpace(v), "v", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	return f >= MinProjectVersion && math.Floor(f) == math.Floor(CurrentProjectVersion)
}
