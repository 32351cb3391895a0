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

package movie_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/moviecore/movie"
	"github.com/jetsetilly/moviecore/movie/header"
	"github.com/jetsetilly/moviecore/statehistory"
	"github.com/jetsetilly/moviecore/test"
)

func entries(n int) []string {
	e := make([]string, n)
	for i := range e {
		e[i] = fmt.Sprintf("|%03d|", i)
	}
	return e
}

// a project with a 100 frame input log and markers at frames 10, 50 and 90
func sourceProject(t *testing.T, s *movie.Session, dir string) *movie.Project {
	t.Helper()

	p := project(t, s, filepath.Join(dir, "source.tasproj"))
	p.SetLogKey("#P1 A|")
	p.CopyLog(entries(100))
	p.Markers().Add(10, "a")
	p.Markers().Add(50, "b")
	p.Markers().Add(90, "c")
	p.CopyVerificationLog([]string{"|old|"})
	p.SetComments([]string{"comment"})
	p.SetSubtitles(movie.Subtitles{{Frame: 1, Message: "subtitle"}})
	p.SetSyncSettings(`{"sync":true}`)
	p.Header().Set(header.GameName, "Source")
	for i := range 100 {
		p.LagLog().Set(i, i%3 == 0)
	}
	p.StateHistory().UpdateSettings(statehistory.Settings{MaxEntries: 7, SnapshotFreq: 3})
	p.StateHistory().Capture(0, []byte{0})
	p.StateHistory().Capture(3, []byte{3})
	test.DemandSuccess(t, p.Save())

	return p
}

func TestSavestateAnchored(t *testing.T) {
	s := session(t, nil)
	dir := t.TempDir()
	p := sourceProject(t, s, dir)

	n, err := movie.ToSavestateAnchored(p, 40, []byte{1, 2, 3})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n.Filename(), filepath.Join(dir, "source 1.tasproj"))
	test.ExpectFailure(t, n.Changes())

	check := func(n *movie.Project) {
		t.Helper()
		test.ExpectEquality(t, n.FrameCount(), 60)
		test.ExpectSliceEquality(t, n.LogEntries(), entries(100)[40:])
		test.ExpectEquality(t, n.LogKey(), "#P1 A|")
		test.ExpectSliceEquality(t, n.VerificationLog(), append([]string{"|old|"}, entries(40)...))
		test.ExpectSliceEquality(t, n.Markers().All(), []movie.Marker{
			{Frame: 10, Message: "b"},
			{Frame: 50, Message: "c"},
		})
		test.ExpectEquality(t, n.LagLog().Len(), 60)
		lagged, _ := n.LagLog().Lagged(2)
		test.ExpectSuccess(t, lagged)
		test.ExpectEquality(t, n.StateHistory().Count(), 0)
		test.ExpectEquality(t, n.StateHistory().Settings(), statehistory.Settings{MaxEntries: 7, SnapshotFreq: 3})
		test.ExpectSliceEquality(t, n.Comments(), []string{"comment"})
		test.ExpectEquality(t, n.SyncSettings(), `{"sync":true}`)
		test.ExpectEquality(t, n.Header().Value(header.GameName), "Source")

		a := test.DemandImplements[movie.Savestate](t, n.Anchor())
		test.ExpectSliceEquality(t, a.Binary, []byte{1, 2, 3})
	}
	check(n)

	// the converted project has been saved
	l := project(t, s, n.Filename())
	test.DemandSuccess(t, l.Load(false))
	check(l)
	test.ExpectEquality(t, l.Header().Value(header.StartsFromSavestate), "True")

	// the source is unchanged
	test.ExpectEquality(t, p.FrameCount(), 100)
	test.ExpectEquality(t, p.Markers().Len(), 3)
	test.ExpectSliceEquality(t, p.VerificationLog(), []string{"|old|"})
	test.ExpectEquality(t, p.LagLog().Len(), 100)
	test.ExpectEquality(t, p.StateHistory().Count(), 2)
	test.DemandImplements[movie.PowerOn](t, p.Anchor())

	// out of range
	_, err = movie.ToSavestateAnchored(p, 101, nil)
	test.ExpectFailure(t, err)
	_, err = movie.ToSavestateAnchored(p, -1, nil)
	test.ExpectFailure(t, err)
}

func TestSaveRAMAnchored(t *testing.T) {
	s := session(t, nil)
	dir := t.TempDir()
	p := sourceProject(t, s, dir)

	n, err := movie.ToSaveRAMAnchored(p, []byte{0xaa, 0xbb})
	test.DemandSuccess(t, err)

	l := project(t, s, n.Filename())
	test.DemandSuccess(t, l.Load(false))

	for _, m := range []*movie.Project{n, l} {
		test.ExpectSliceEquality(t, m.LogEntries(), entries(100))
		test.ExpectSliceEquality(t, m.VerificationLog(), append([]string{"|old|"}, entries(100)...))
		test.ExpectEquality(t, m.LagLog().Len(), 0)
		test.ExpectEquality(t, m.StateHistory().Count(), 0)
		test.ExpectEquality(t, m.StateHistory().Settings(), statehistory.Settings{MaxEntries: 7, SnapshotFreq: 3})
		a := test.DemandImplements[movie.SaveRAM](t, m.Anchor())
		test.ExpectSliceEquality(t, a.Data, []byte{0xaa, 0xbb})
	}
	test.ExpectEquality(t, l.Header().Value(header.StartsFromSaveRam), "True")
	test.ExpectFailure(t, l.Header().Contains(header.StartsFromSavestate))

	test.ExpectEquality(t, p.FrameCount(), 100)
	test.ExpectEquality(t, p.LagLog().Len(), 100)
}

func TestToProject(t *testing.T) {
	s := session(t, nil)
	dir := t.TempDir()

	rec := s.Get(filepath.Join(dir, "game.bk2"))
	rec.CopyLog(entries(10))
	rec.SetLogKey("#P1 A|")
	rec.SetAnchor(movie.SaveRAM{Data: []byte{5}})
	rec.Header().Set(header.Author, "author")
	test.DemandSuccess(t, rec.Save())

	p, err := movie.ToProject(rec, 1.1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Filename(), filepath.Join(dir, "game.tasproj"))
	test.ExpectEquality(t, p.Header().Value(header.MovieVersion), "Moviecore v2.0 Project v1.1")
	test.ExpectEquality(t, p.Header().Value(header.Author), "author")
	test.ExpectSliceEquality(t, p.LogEntries(), entries(10))
	test.ExpectEquality(t, p.LogKey(), "#P1 A|")
	a := test.DemandImplements[movie.SaveRAM](t, p.Anchor())
	test.ExpectSliceEquality(t, a.Data, []byte{5})

	// the source is not truncated
	test.ExpectEquality(t, rec.FrameCount(), 10)

	l := project(t, s, p.Filename())
	test.DemandSuccess(t, l.Load(false))
	test.ExpectSliceEquality(t, l.LogEntries(), entries(10))
	test.ExpectEquality(t, l.Markers().Len(), 0)
}

func TestToRecording(t *testing.T) {
	s := session(t, nil)
	dir := t.TempDir()
	p := sourceProject(t, s, dir)

	rec, err := movie.ToRecording(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rec.Filename(), filepath.Join(dir, "source.bk2"))

	l := s.Get(rec.Filename())
	test.DemandImplements[*movie.Recording](t, l)
	test.DemandSuccess(t, l.Load(false))
	test.ExpectSliceEquality(t, l.LogEntries(), entries(100))
	test.ExpectEquality(t, l.Header().Value(header.MovieVersion), "Moviecore v2.0")
	test.ExpectEquality(t, l.Header().Value(header.GameName), "Source")
	test.ExpectSliceEquality(t, l.Subtitles(), movie.Subtitles{{Frame: 1, Message: "subtitle"}})
}

func TestConversionFilenames(t *testing.T) {
	s := session(t, nil)
	dir := t.TempDir()

	rec := s.Get(filepath.Join(dir, "game.bk2"))
	rec.CopyLog(entries(3))
	test.DemandSuccess(t, rec.Save())

	a, err := movie.ToProject(rec, movie.CurrentProjectVersion)
	test.DemandSuccess(t, err)
	b, err := movie.ToProject(rec, movie.CurrentProjectVersion)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, a.Filename(), filepath.Join(dir, "game.tasproj"))
	test.ExpectEquality(t, b.Filename(), filepath.Join(dir, "game 1.tasproj"))

	for _, fn := range []string{a.Filename(), b.Filename()} {
		_, err := os.Stat(fn)
		test.ExpectSuccess(t, err, fn)
	}
}
