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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failure with t.Errorf() and return false,
// allowing the test to continue. The Demand*() functions use t.Fatalf() and
// stop the test immediately. Use a Demand*() function when the rest of the
// test makes no sense if the condition fails, for example, when a movie fails
// to load.
//
// ExpectSuccess() and ExpectFailure() work with bool and error values. It is
// worth describing how these functions handle the nil type because it is not
// obvious. The nil type is considered a success and consequently will cause
// ExpectFailure() to fail and ExpectSuccess() to succeed. This is because of
// how errors usually work (nil to indicate no error).
//
// The optional tags arguments are prepended to the failure message and are
// useful for identifying which iteration of a loop failed.
//
// The CompareWriter type implements the io.Writer interface and should be used
// to capture output. The Compare() function can then be used to test for
// equality.
package test
