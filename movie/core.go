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

package movie

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/logger"
	"github.com/jetsetilly/moviecore/lump"
	"github.com/jetsetilly/moviecore/movie/header"
	"github.com/jetsetilly/moviecore/movie/inputlog"
	"github.com/jetsetilly/moviecore/paths"
)

// value of a header flag that is set
const flagTrue = "True"

// core is the part of a movie common to both kinds of movie. it contains the
// codec for the lumps that are written to every movie file.
type core struct {
	session  *Session
	filename string

	header       *header.Header
	log          []string
	logKey       string
	comments     []string
	subtitles    Subtitles
	syncSettings string
	anchor       Anchor

	changes bool
}

func newCore(s *Session, filename string, movieVersion string) core {
	c := core{
		session:  s,
		filename: filename,
		header:   header.New(),
		anchor:   PowerOn{},
	}
	c.header.Set(header.MovieVersion, movieVersion)
	return c
}

func (c *core) base() *core {
	return c
}

// Filename implements the Movie interface.
func (c *core) Filename() string {
	return c.filename
}

// Changes implements the Movie interface.
func (c *core) Changes() bool {
	return c.changes
}

// Header implements the Movie interface. Changes to the returned header are
// not noted by Changes().
func (c *core) Header() *header.Header {
	return c.header
}

// LogEntries implements the Movie interface. The returned slice is a copy.
func (c *core) LogEntries() []string {
	return slices.Clone(c.log)
}

// CopyLog implements the Movie interface. The input log is replaced by a copy
// of the entries. The log is unchanged if any entry is not a valid input
// record.
func (c *core) CopyLog(entries []string) error {
	if err := inputlog.CheckRecords(entries); err != nil {
		return curated.Errorf("movie: %v", err)
	}
	c.log = slices.Clone(entries)
	c.changes = true
	return nil
}

// AppendFrame implements the Movie interface.
func (c *core) AppendFrame(entry string) error {
	if err := inputlog.CheckRecord(entry); err != nil {
		return curated.Errorf("movie: %v", err)
	}
	c.log = append(c.log, entry)
	c.changes = true
	return nil
}

// Truncate implements the Movie interface. The input log is cut so that it
// contains only the frames before frame.
func (c *core) Truncate(frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame >= len(c.log) {
		return
	}
	c.log = c.log[:frame]
	c.changes = true
}

// FrameCount implements the Movie interface.
func (c *core) FrameCount() int {
	return len(c.log)
}

// LogKey implements the Movie interface.
func (c *core) LogKey() string {
	return c.logKey
}

// SetLogKey implements the Movie interface.
func (c *core) SetLogKey(key string) {
	c.logKey = key
	c.changes = true
}

// Comments implements the Movie interface.
func (c *core) Comments() []string {
	return slices.Clone(c.comments)
}

// SetComments implements the Movie interface. Each comment is saved as a line
// of text so an empty comment, or a line break in a comment, does not survive
// a save.
func (c *core) SetComments(comments []string) {
	c.comments = slices.Clone(comments)
	c.changes = true
}

// Subtitles implements the Movie interface.
func (c *core) Subtitles() Subtitles {
	return slices.Clone(c.subtitles)
}

// SetSubtitles implements the Movie interface.
func (c *core) SetSubtitles(subtitles Subtitles) {
	c.subtitles = slices.Clone(subtitles)
	c.changes = true
}

// SyncSettings implements the Movie interface.
func (c *core) SyncSettings() string {
	return c.syncSettings
}

// SetSyncSettings implements the Movie interface.
func (c *core) SetSyncSettings(json string) {
	c.syncSettings = json
	c.changes = true
}

// Anchor implements the Movie interface.
func (c *core) Anchor() Anchor {
	return cloneAnchor(c.anchor)
}

// SetAnchor implements the Movie interface. A nil anchor is the same as
// PowerOn.
func (c *core) SetAnchor(anchor Anchor) {
	c.anchor = cloneAnchor(anchor)
	c.changes = true
}

// the emulation has played to the end of the input log
func (c *core) isAtEnd() bool {
	if c.session.emulator == nil {
		return false
	}
	return c.session.emulator.Frame() == len(c.log)
}

func (c *core) clear() {
	c.header.Clear()
	c.log = c.log[:0]
	c.logKey = ""
	c.comments = c.comments[:0]
	c.subtitles = c.subtitles[:0]
	c.syncSettings = ""
	c.anchor = PowerOn{}
}

// cycle values are only meaningful if the entire movie has been played
func (c *core) setCycleValues() {
	if c.isAtEnd() {
		if ct, ok := c.session.emulator.(CycleTiming); ok {
			c.header.Set(header.CycleCount, fmt.Sprintf("%d", ct.CycleCount()))
			c.header.Set(header.ClockRate, fmt.Sprintf("%d", ct.ClockRate()))
		}
		return
	}
	c.header.Remove(header.CycleCount)
	c.header.Remove(header.ClockRate)
}

// the original emulator version is never overwritten once set
func (c *core) stampVersions() {
	if !c.header.Contains(header.OriginalEmulatorVersion) {
		if v, ok := c.header.Get(header.EmulatorVersion); ok {
			c.header.Set(header.OriginalEmulatorVersion, v)
		} else {
			c.header.Set(header.OriginalEmulatorVersion, c.session.emulatorVersion)
		}
	}
	c.header.Set(header.EmulatorVersion, c.session.emulatorVersion)
}

// the header flags follow the anchor
func (c *core) setAnchorFlags() {
	c.header.Remove(header.StartsFromSavestate)
	c.header.Remove(header.StartsFromSaveRam)
	switch c.anchor.(type) {
	case Savestate:
		c.header.Set(header.StartsFromSavestate, flagTrue)
	case SaveRAM:
		c.header.Set(header.StartsFromSaveRam, flagTrue)
	}
}

func (c *core) flag(key string) bool {
	v, ok := c.header.Get(key)
	if !ok {
		return false
	}
	return strings.EqualFold(v, flagTrue) || v == "1"
}

// write the movie to the named file. the file is written to a temporary file
// and renamed over the target once it is complete. the lumps specific to the
// kind of movie are written by the extra function, which can be nil.
func (c *core) write(filename string, backup bool, extra func(w *lump.Writer, backup bool) error) error {
	c.setCycleValues()
	c.stampVersions()
	c.setAnchorFlags()

	if err := paths.EnsureDir(filename); err != nil {
		return curated.Errorf("movie: %v", err)
	}

	fl := flock.New(fmt.Sprintf("%s.lock", filename))
	ok, err := fl.TryLock()
	if err != nil {
		return curated.Errorf("movie: %v", err)
	}
	if !ok {
		return curated.Errorf("movie: %s is being written by another process", filename)
	}
	defer func() {
		_ = fl.Unlock()
		_ = os.Remove(fl.Path())
	}()

	tmp := fmt.Sprintf("%s.tmp", filename)

	w, err := lump.Create(tmp, c.session.settings.CompressionLevel)
	if err != nil {
		return curated.Errorf("movie: %v", err)
	}

	err = c.putLumps(w)
	if err == nil && extra != nil {
		err = extra(w, backup)
	}
	if err != nil {
		_ = w.Close()
		_ = os.Remove(tmp)
		return curated.Errorf("movie: %v", err)
	}

	if err := w.Close(); err != nil {
		_ = os.Remove(tmp)
		return curated.Errorf("movie: %v", err)
	}

	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return curated.Errorf("movie: %v", err)
	}

	if !backup {
		c.changes = false
	}

	return nil
}

func (c *core) putLumps(w *lump.Writer) error {
	err := w.PutText(lump.Movieheader, func(tw io.Writer) error {
		_, err := io.WriteString(tw, c.header.String())
		return err
	})
	if err != nil {
		return err
	}

	err = w.PutText(lump.Comments, func(tw io.Writer) error {
		for _, s := range c.comments {
			if _, err := fmt.Fprintln(tw, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = w.PutText(lump.Subtitles, func(tw io.Writer) error {
		_, err := io.WriteString(tw, c.subtitles.String())
		return err
	})
	if err != nil {
		return err
	}

	err = w.PutText(lump.SyncSettings, func(tw io.Writer) error {
		_, err := fmt.Fprintln(tw, c.syncSettings)
		return err
	})
	if err != nil {
		return err
	}

	err = w.PutText(lump.Input, func(tw io.Writer) error {
		return inputlog.Write(tw, c.logKey, c.log)
	})
	if err != nil {
		return err
	}

	switch a := c.anchor.(type) {
	case Savestate:
		if a.IsText() {
			err = w.PutText(lump.CorestateText, func(tw io.Writer) error {
				_, err := io.WriteString(tw, a.Text)
				return err
			})
		} else {
			err = w.PutBinary(lump.Corestate, func(bw io.Writer) error {
				_, err := bw.Write(a.Binary)
				return err
			})
		}
		if err != nil {
			return err
		}

		if a.Framebuffer != nil {
			err = w.PutBinary(lump.Framebuffer, func(bw io.Writer) error {
				return binary.Write(bw, binary.LittleEndian, a.Framebuffer)
			})
			if err != nil {
				return err
			}
		}

	case SaveRAM:
		err = w.PutBinary(lump.MovieSaveRam, func(bw io.Writer) error {
			_, err := bw.Write(a.Data)
			return err
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// load the movie from its file. the reset and extra functions, which can both
// be nil, clear and load the fields specific to the kind of movie. extra is
// not called when preloading.
func (c *core) load(preload bool, reset func(), extra func(r *lump.Reader) error) error {
	if _, err := os.Stat(c.filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return curated.Errorf(NotFound, c.filename)
		}
		return curated.Errorf("movie: %v", err)
	}

	r, err := lump.Open(c.filename)
	if err != nil {
		return curated.Errorf("movie: %v", err)
	}
	defer r.Close()

	c.clear()
	if reset != nil {
		reset()
	}

	if err := c.getLumps(r, preload); err != nil {
		return curated.Errorf("movie: %v", err)
	}

	if !preload && extra != nil {
		if err := extra(r); err != nil {
			return curated.Errorf("movie: %v", err)
		}
	}

	c.changes = false

	return nil
}

// every line of a text lump that is not blank
func nonBlankLines(r io.Reader, f func(line string)) error {
	return eachLine(r, func(line string) {
		if strings.TrimSpace(line) != "" {
			f(line)
		}
	})
}

// every line of a text lump that is not empty. whitespace is preserved
func nonEmptyLines(r io.Reader, f func(line string)) error {
	return eachLine(r, func(line string) {
		if line != "" {
			f(line)
		}
	})
}

func eachLine(r io.Reader, f func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)
	for scanner.Scan() {
		f(strings.TrimRight(scanner.Text(), "\r"))
	}
	return scanner.Err()
}

func (c *core) getLumps(r *lump.Reader, preload bool) error {
	_, err := r.GetText(lump.Movieheader, true, func(tr io.Reader) error {
		return c.header.Parse(tr)
	})
	if err != nil {
		return err
	}

	_, err = r.GetText(lump.Input, true, func(tr io.Reader) error {
		var err error
		c.logKey, c.log, err = inputlog.Read(tr)
		return err
	})
	if err != nil {
		return err
	}

	if preload {
		return nil
	}

	// a problem with any of the remaining lumps is logged but is not an error
	optional := func(id lump.ID, err error) {
		if err != nil {
			logger.Logf(logger.Allow, "movie", "%s: %v", id, err)
		}
	}

	_, err = r.GetText(lump.Comments, false, func(tr io.Reader) error {
		return nonEmptyLines(tr, func(line string) {
			c.comments = append(c.comments, line)
		})
	})
	optional(lump.Comments, err)

	_, err = r.GetText(lump.Subtitles, false, func(tr io.Reader) error {
		err := nonEmptyLines(tr, func(line string) {
			s, err := ParseSubtitle(line)
			if err != nil {
				logger.Log(logger.Allow, "movie", err)
				return
			}
			c.subtitles = append(c.subtitles, s)
		})
		c.subtitles.Sort()
		return err
	})
	optional(lump.Subtitles, err)

	_, err = r.GetText(lump.SyncSettings, false, func(tr io.Reader) error {
		return nonBlankLines(tr, func(line string) {
			c.syncSettings = line
		})
	})
	optional(lump.SyncSettings, err)

	switch {
	case c.flag(header.StartsFromSavestate):
		var s Savestate

		_, err = r.GetBinary(lump.Corestate, false, func(br io.Reader, length int64) error {
			s.Binary = make([]byte, length)
			_, err := io.ReadFull(br, s.Binary)
			return err
		})
		optional(lump.Corestate, err)

		_, err = r.GetText(lump.CorestateText, false, func(tr io.Reader) error {
			b, err := io.ReadAll(tr)
			s.Text = string(b)
			return err
		})
		optional(lump.CorestateText, err)

		_, err = r.GetBinary(lump.Framebuffer, false, func(br io.Reader, length int64) error {
			fb := make([]int32, length/4)
			if err := binary.Read(br, binary.LittleEndian, fb); err != nil {
				return err
			}
			s.Framebuffer = fb
			return nil
		})
		optional(lump.Framebuffer, err)

		c.anchor = s

	case c.flag(header.StartsFromSaveRam):
		var s SaveRAM

		_, err = r.GetBinary(lump.MovieSaveRam, false, func(br io.Reader, length int64) error {
			s.Data = make([]byte, length)
			_, err := io.ReadFull(br, s.Data)
			return err
		})
		optional(lump.MovieSaveRam, err)

		c.anchor = s
	}

	return nil
}

// write a timestamped copy of the movie to the backup directory
func (c *core) backup(extra func(w *lump.Writer, backup bool) error) error {
	if c.filename == "" {
		return nil
	}
	fn := paths.BackupFilename(c.session.BackupDirectory(), c.filename, time.Now())
	return c.write(fn, true, extra)
}
