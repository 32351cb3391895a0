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

package lump_test

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/lump"
	"github.com/jetsetilly/moviecore/test"
)

func writeContainer(t *testing.T, fn string, level int) {
	t.Helper()

	w, err := lump.Create(fn, level)
	test.DemandSuccess(t, err)

	err = w.PutText(lump.Movieheader, func(tw io.Writer) error {
		_, err := io.WriteString(tw, "MovieVersion test\n")
		return err
	})
	test.DemandSuccess(t, err)

	err = w.PutBinary(lump.Corestate, func(bw io.Writer) error {
		_, err := bw.Write([]byte{0, 1, 2, 3, 4, 5, 6, 7})
		return err
	})
	test.DemandSuccess(t, err)

	// the same lump can not be added twice
	err = w.PutText(lump.Movieheader, func(tw io.Writer) error { return nil })
	test.ExpectSuccess(t, curated.Is(err, lump.DuplicateLump))

	test.DemandSuccess(t, w.Close())
}

func TestRoundTrip(t *testing.T) {
	for _, level := range []int{0, 1, 9} {
		fn := filepath.Join(t.TempDir(), "test.bk2")
		writeContainer(t, fn, level)

		r, err := lump.Open(fn)
		test.DemandSuccess(t, err, level)

		var header string
		ok, err := r.GetText(lump.Movieheader, true, func(tr io.Reader) error {
			b, err := io.ReadAll(tr)
			header = string(b)
			return err
		})
		test.ExpectSuccess(t, ok, level)
		test.ExpectSuccess(t, err, level)
		test.ExpectEquality(t, header, "MovieVersion test\n", level)

		var core []byte
		var length int64
		ok, err = r.GetBinary(lump.Corestate, false, func(br io.Reader, l int64) error {
			length = l
			core, err = io.ReadAll(br)
			return err
		})
		test.ExpectSuccess(t, ok, level)
		test.ExpectSuccess(t, err, level)
		test.ExpectEquality(t, length, int64(8), level)
		test.ExpectSliceEquality(t, core, []byte{0, 1, 2, 3, 4, 5, 6, 7}, level)

		test.ExpectSuccess(t, r.Close(), level)
	}
}

func TestMissingLumps(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.bk2")
	writeContainer(t, fn, 1)

	r, err := lump.Open(fn)
	test.DemandSuccess(t, err)
	defer r.Close()

	called := false

	// optional lump
	ok, err := r.GetText(lump.Comments, false, func(tr io.Reader) error {
		called = true
		return nil
	})
	test.ExpectFailure(t, ok)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, called)

	// critical lump
	ok, err = r.GetText(lump.Input, true, func(tr io.Reader) error {
		called = true
		return nil
	})
	test.ExpectFailure(t, ok)
	test.ExpectSuccess(t, curated.Is(err, lump.MissingLump))
	test.ExpectFailure(t, called)

	test.ExpectSuccess(t, r.Has(lump.Movieheader))
	test.ExpectFailure(t, r.Has(lump.Input))
}

func TestNotAContainer(t *testing.T) {
	dir := t.TempDir()

	// not a zip file
	fn := filepath.Join(dir, "text.bk2")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("hello world"), 0644))
	_, err := lump.Open(fn)
	test.ExpectSuccess(t, curated.Is(err, lump.NotAContainer))

	// a zip file without the version lump
	fn = filepath.Join(dir, "foreign.bk2")
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create("Header.txt")
	test.DemandSuccess(t, err)
	_, err = f.Write([]byte("MovieVersion foreign\n"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, zw.Close())
	test.DemandSuccess(t, os.WriteFile(fn, b.Bytes(), 0644))

	_, err = lump.Open(fn)
	test.ExpectSuccess(t, curated.Is(err, lump.NotAContainer))

	// missing file
	_, err = lump.Open(filepath.Join(dir, "missing.bk2"))
	test.ExpectSuccess(t, curated.Is(err, lump.NotAContainer))
}

func TestIndexed(t *testing.T) {
	test.ExpectEquality(t, lump.BranchCoreData.Indexed(2), lump.ID("Branches/CoreData2.bin"))
	test.ExpectEquality(t, lump.LagLog.Indexed(1), lump.ID("LagLog1"))
}

func TestCompressionLevel(t *testing.T) {
	_, err := lump.Create(filepath.Join(t.TempDir(), "test.bk2"), 10)
	test.ExpectFailure(t, err)
}

func TestOversizedLump(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "damaged.bk2")

	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create(string(lump.Version))
	test.DemandSuccess(t, err)
	_, err = f.Write([]byte("Moviecore Container 1.0"))
	test.DemandSuccess(t, err)

	// the directory entry claims far more data than is stored
	f, err = zw.CreateRaw(&zip.FileHeader{
		Name:               string(lump.Corestate),
		Method:             zip.Store,
		CompressedSize64:   4,
		UncompressedSize64: 1 << 62,
	})
	test.DemandSuccess(t, err)
	_, err = f.Write([]byte{1, 2, 3, 4})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, zw.Close())
	test.DemandSuccess(t, os.WriteFile(fn, b.Bytes(), 0644))

	r, err := lump.Open(fn)
	test.DemandSuccess(t, err)
	defer r.Close()

	called := false
	ok, err := r.GetBinary(lump.Corestate, false, func(br io.Reader, length int64) error {
		called = true
		return nil
	})
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, curated.Is(err, lump.LumpTooLarge))
	test.ExpectFailure(t, called)
}
