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

package lump

import (
	"bufio"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zip"

	"github.com/jetsetilly/moviecore/curated"
)

// Reader gives access to the lumps in an existing container.
type Reader struct {
	filename string
	zr       *zip.ReadCloser
	lumps    map[ID]*zip.File
}

// Open an existing container. Fails with a NotAContainer error if the file is
// not a zip archive or if the archive does not contain a version lump.
//
// The Close() function should be called when the Reader is no longer
// required.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, curated.Errorf(NotAContainer, err)
	}

	r := &Reader{
		filename: filename,
		zr:       zr,
		lumps:    make(map[ID]*zip.File),
	}

	for _, f := range zr.File {
		r.lumps[ID(f.Name)] = f
	}

	// check version lump
	var version string
	_, err = r.GetText(Version, true, func(tr io.Reader) error {
		b, err := io.ReadAll(tr)
		version = strings.TrimSpace(string(b))
		return err
	})
	if err != nil || !strings.HasPrefix(version, "Moviecore Container") {
		_ = zr.Close()
		return nil, curated.Errorf(NotAContainer, filename)
	}

	return r, nil
}

// Close the container.
func (r *Reader) Close() error {
	if err := r.zr.Close(); err != nil {
		return curated.Errorf("lump: %v", err)
	}
	return nil
}

// Has returns true if the lump is present in the container.
func (r *Reader) Has(id ID) bool {
	_, ok := r.lumps[id]
	return ok
}

func (r *Reader) open(id ID, abort bool) (*zip.File, io.ReadCloser, error) {
	zf, ok := r.lumps[id]
	if !ok {
		if abort {
			return nil, nil, curated.Errorf(MissingLump, id)
		}
		return nil, nil, nil
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, nil, curated.Errorf("lump: %s: %v", id, err)
	}

	return zf, rc, nil
}

// GetText passes the contents of a text lump to the supplied function. Returns
// false if the lump was not found.
//
// If abort is true then a missing lump is an error.
func (r *Reader) GetText(id ID, abort bool, f func(tr io.Reader) error) (bool, error) {
	_, rc, err := r.open(id, abort)
	if err != nil {
		return false, err
	}
	if rc == nil {
		return false, nil
	}
	defer rc.Close()

	if err := f(bufio.NewReader(rc)); err != nil {
		return true, curated.Errorf("lump: %s: %v", id, err)
	}

	return true, nil
}

// GetBinary passes the contents of a binary lump to the supplied function,
// along with the length of the data in bytes. Returns false if the lump was
// not found.
//
// If abort is true then a missing lump is an error. A lump longer than
// MaxBinaryLength is a LumpTooLarge error and the supplied function is not
// called.
func (r *Reader) GetBinary(id ID, abort bool, f func(br io.Reader, length int64) error) (bool, error) {
	zf, rc, err := r.open(id, abort)
	if err != nil {
		return false, err
	}
	if rc == nil {
		return false, nil
	}
	defer rc.Close()

	if zf.UncompressedSize64 > MaxBinaryLength {
		return true, curated.Errorf(LumpTooLarge, id, humanize.Bytes(zf.UncompressedSize64))
	}

	if err := f(rc, int64(zf.UncompressedSize64)); err != nil {
		return true, curated.Errorf("lump: %s: %v", id, err)
	}

	return true, nil
}
