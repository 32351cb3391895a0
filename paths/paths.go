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

package paths

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/moviecore/curated"
)

const baseResourcePath = ".moviecore"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with OS/build specific paths. The directory part of the
// path is created if it does not exist.
//
// The last resource entry is treated as a file. Pass an empty string as the
// last entry if the path should refer only to a directory.
func ResourcePath(resource ...string) (string, error) {
	base, err := getBasePath()
	if err != nil {
		return "", curated.Errorf("paths: %v", err)
	}

	p := make([]string, 0, len(resource)+1)
	p = append(p, base)
	p = append(p, resource...)
	pth := filepath.Join(p...)

	dir := pth
	if len(resource) > 0 && resource[len(resource)-1] != "" {
		dir = filepath.Dir(pth)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", curated.Errorf("paths: %v", err)
	}

	return pth, nil
}

func getBasePath() (string, error) {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, baseResourcePath[1:]), nil
}

// EnsureDir creates the directory that the filename would be placed in if it
// does not already exist.
func EnsureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return curated.Errorf("paths: %v", err)
	}
	return nil
}
