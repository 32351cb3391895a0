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

package prefs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/moviecore/curated"
)

// parse a prefs string into key/value pairs. entries are separated by a
// semi-colon and the key is separated from the value by a double-colon.
// badly formed entries are ignored.
//
//	compression_level::9; state_history.max_entries::50
func parse(prefs string) map[string]string {
	kvs := make(map[string]string)
	for _, p := range strings.Split(prefs, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			kvs[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	return kvs
}

// Override applies the values in the prefs string to a copy of the settings.
// The string has the form "key::value; key::value". Keys are named as they
// are in the preferences file, with the state history keys prefixed by
// "state_history.".
//
// Returns the new settings and a prefs string of the entries that were not
// recognised, sorted by key. The original settings are returned if any value
// can not be used.
func (s Settings) Override(prefs string) (Settings, string, error) {
	n := s
	unused := make(map[string]string)

	for key, value := range parse(prefs) {
		var err error
		switch key {
		case "backup_dir":
			n.BackupDirectory = value
		case "compression_level":
			n.CompressionLevel, err = strconv.Atoi(value)
		case "state_history.max_entries":
			n.StateHistory.MaxEntries, err = strconv.Atoi(value)
		case "state_history.snapshot_freq":
			n.StateHistory.SnapshotFreq, err = strconv.Atoi(value)
		default:
			unused[key] = value
		}
		if err != nil {
			return s, "", curated.Errorf("prefs: override: %s: %v", key, err)
		}
	}

	if err := n.Validate(); err != nil {
		return s, "", err
	}

	keys := make([]string, 0, len(unused))
	for key := range unused {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	b := strings.Builder{}
	for _, key := range keys {
		b.WriteString(fmt.Sprintf("%s::%s; ", key, unused[key]))
	}

	return n, strings.TrimSuffix(b.String(), "; "), nil
}
