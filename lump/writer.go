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
	"os"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/jetsetilly/moviecore/curated"
)

// Writer creates a new container.
type Writer struct {
	f  *os.File
	zw *zip.Writer

	// zip compression method for every lump. either zip.Store or zip.Deflate
	method uint16

	written map[ID]bool
}

// Create a new container. Any existing file with the same name will be
// truncated. The compression level should be between 0 and 9. A level of zero
// means the lumps are stored without compression.
//
// The Close() function must be called when all lumps have been added.
func Create(filename string, level int) (*Writer, error) {
	if level < flate.NoCompression || level > flate.BestCompression {
		return nil, curated.Errorf("lump: compression level out of range (%d)", level)
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf("lump: %v", err)
	}

	w := &Writer{
		f:       f,
		zw:      zip.NewWriter(f),
		method:  zip.Deflate,
		written: make(map[ID]bool),
	}

	if level == flate.NoCompression {
		w.method = zip.Store
	} else {
		w.zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}

	err = w.PutText(Version, func(tw io.Writer) error {
		_, err := io.WriteString(tw, versionString)
		return err
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	return w, nil
}

func (w *Writer) create(id ID) (io.Writer, error) {
	if w.written[id] {
		return nil, curated.Errorf(DuplicateLump, id)
	}
	w.written[id] = true

	zf, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     string(id),
		Method:   w.method,
		Modified: time.Now(),
	})
	if err != nil {
		return nil, curated.Errorf("lump: %v", err)
	}

	return zf, nil
}

// PutText adds a text lump to the container. The contents of the lump are
// written by the supplied function.
func (w *Writer) PutText(id ID, f func(tw io.Writer) error) error {
	zf, err := w.create(id)
	if err != nil {
		return err
	}

	tw := bufio.NewWriter(zf)
	if err := f(tw); err != nil {
		return curated.Errorf("lump: %s: %v", id, err)
	}
	if err := tw.Flush(); err != nil {
		return curated.Errorf("lump: %s: %v", id, err)
	}

	return nil
}

// PutBinary adds a binary lump to the container. The contents of the lump
// are written by the supplied function.
func (w *Writer) PutBinary(id ID, f func(bw io.Writer) error) error {
	zf, err := w.create(id)
	if err != nil {
		return err
	}

	if err := f(zf); err != nil {
		return curated.Errorf("lump: %s: %v", id, err)
	}

	return nil
}

// Close the container. The container is not valid until Close() has returned
// without error.
func (w *Writer) Close() error {
	zerr := w.zw.Close()
	ferr := w.f.Close()
	if zerr != nil {
		return curated.Errorf("lump: %v", zerr)
	}
	if ferr != nil {
		return curated.Errorf("lump: %v", ferr)
	}
	return nil
}
