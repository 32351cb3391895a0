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

// Package notifications allow the movie package to tell the user about events
// that did not stop an operation from completing but which the user should
// know about. For example, a project file that was written by an incompatible
// version will still open but without any of the project features.
//
// Notifications are normally passed onto the GUI. The package makes no
// assumptions about how the notification is presented.
package notifications
