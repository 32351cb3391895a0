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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// the layout of the timestamp inserted into backup filenames. equivalent to
// yyyy-MM-dd HH.mm.ss
const backupTimestamp = "2006-01-02 15.04.05"

// BackupFilename returns the name of a timestamped copy of filename, placed in
// the backup directory. The timestamp is inserted before the extension:
//
//	movies/game.bk2 -> <dir>/game.2024-05-01 13.45.10.bk2
//
// Filenames without an extension have the timestamp appended.
func BackupFilename(dir string, filename string, t time.Time) string {
	base := filepath.Base(filename)
	stamp := fmt.Sprintf(".%s", t.Format(backupTimestamp))

	i := strings.LastIndex(base, ".")
	if i < 0 {
		base = base + stamp
	} else {
		base = base[:i] + stamp + base[i:]
	}

	return filepath.Join(dir, base)
}

// ConversionFilename returns filename with the extension replaced by ext. If
// a file with that name already exists then a numeric suffix is added to the
// stem until a name is found that does not exist:
//
//	game.tasproj, game 1.tasproj, game 2.tasproj, ...
//
// The ext argument may be given with or without the leading period.
func ConversionFilename(filename string, ext string) string {
	ext = strings.TrimPrefix(ext, ".")

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	fn := fmt.Sprintf("%s.%s", stem, ext)

	for suffix := 1; exists(fn); suffix++ {
		fn = fmt.Sprintf("%s %d.%s", stem, suffix, ext)
	}

	return fn
}

func exists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
