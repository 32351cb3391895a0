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

// Package paths contains functions to prepare paths to moviecore resources
// and to derive the filenames of movie files.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate config directory. For example, the
// following will return the path to the default backup directory.
//
//	d, err := paths.ResourcePath("backups")
//
// The policy of ResourcePath() is simple: if the base resource path, currently
// defined to be ".moviecore", is present in the program's current directory
// then that is the base path that will used. If it is not present, then the
// user's config directory is used.
//
// BackupFilename() and ConversionFilename() derive new movie filenames from
// existing ones. Neither function creates any files.
package paths
