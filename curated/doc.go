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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package but the pattern string is retained
// and is used to identify the error later on. For example:
//
//	e := curated.Errorf("movie: file not found (%s)", filename)
//
//	if curated.Is(e, "movie: file not found (%s)") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs anywhere in
// the error chain. A chain is formed when a curated error is passed as a
// placeholder value to another call to Errorf().
//
//	e := curated.Errorf("lump: missing lump (%s)", "Header.txt")
//	f := curated.Errorf("movie: %v", e)
//
//	curated.Has(f, "lump: missing lump (%s)")  // true
//	curated.Is(f, "lump: missing lump (%s)")   // false
//
// Sentinel patterns should be stored as exported string constants in the
// package that creates them. Callers then test for the sentinel with Is() or
// Has() without needing to know anything about the placeholder values.
//
// The Error() function normalises the error chain by removing a duplicated
// leading part. For example, if a function in the movie package wraps an error
// returned from another function in the movie package then the message will be
// "movie: not a container" and not "movie: movie: not a container". Parts are
// separated by the sub-string ": " as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
package curated
