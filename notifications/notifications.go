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

package notifications

// Notice describes events that the user should be made aware of.
type Notice string

// List of defined notifications.
const (
	// the project file was written by an incompatible version. the movie has
	// been loaded as a plain recording
	NotifyProjectIncompatible Notice = "NotifyProjectIncompatible"

	// the state history embedded in a project file could not be restored. a
	// fresh state history has been started in its place
	NotifyStateHistoryCorrupt Notice = "NotifyStateHistoryCorrupt"
)

// Message returns a user friendly description of the notice.
func (n Notice) Message() string {
	switch n {
	case NotifyProjectIncompatible:
		return "The project file is not compatible with this version. Project features failed to load."
	case NotifyStateHistoryCorrupt:
		return "State history was corrupted, clearing and working with a fresh history."
	}
	return string(n)
}

// Notify is used to pass notices from the movie package to the user interface.
type Notify interface {
	Notify(notice Notice) error
}

// Collector is an implementation of Notify that keeps a list of every notice
// it receives. Useful when there is no user interface to speak of.
type Collector struct {
	Notices []Notice
}

// Notify implements the Notify interface.
func (c *Collector) Notify(notice Notice) error {
	c.Notices = append(c.Notices, notice)
	return nil
}

// Contains returns true if the notice has been received at least once.
func (c *Collector) Contains(notice Notice) bool {
	for _, n := range c.Notices {
		if n == notice {
			return true
		}
	}
	return false
}
