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

package curated_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/test"
)

const testSentinel = "test: sentinel (%s)"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("movie: %v", "not a container")
	test.ExpectEquality(t, e.Error(), "movie: not a container")

	// wrapping an error with the same leading part drops the duplicate
	f := curated.Errorf("movie: %v", e)
	test.ExpectEquality(t, f.Error(), "movie: not a container")
}

func TestIsAndHas(t *testing.T) {
	e := curated.Errorf(testSentinel, "foo")
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testSentinel))
	test.ExpectSuccess(t, curated.Has(e, testSentinel))

	f := curated.Errorf("wrapped: %v", e)
	test.ExpectFailure(t, curated.Is(f, testSentinel))
	test.ExpectSuccess(t, curated.Has(f, testSentinel))

	// uncurated errors are never matched
	g := errors.New("plain")
	test.ExpectFailure(t, curated.IsAny(g))
	test.ExpectFailure(t, curated.Has(g, testSentinel))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf("movie: %v", fs.ErrNotExist)
	test.ExpectSuccess(t, errors.Is(e, fs.ErrNotExist))
}
