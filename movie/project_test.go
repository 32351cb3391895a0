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
	"io"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/moviecore/lump"
	"github.com/jetsetilly/moviecore/movie"
	"github.com/jetsetilly/moviecore/movie/header"
	"github.com/jetsetilly/moviecore/movie/inputlog"
	"github.com/jetsetilly/moviecore/notifications"
	"github.com/jetsetilly/moviecore/statehistory"
	"github.com/jetsetilly/moviecore/test"
)

func project(t *testing.T, s *movie.Session, fn string) *movie.Project {
	t.Helper()
	return test.DemandImplements[*movie.Project](t, s.Get(fn))
}

func TestProjectRoundTrip(t *testing.T) {
	s := session(t, nil)
	fn := filepath.Join(t.TempDir(), "game.tasproj")

	p := project(t, s, fn)
	p.CopyLog([]string{"|A|", "|B|", "|C|", "|D|"})
	p.Markers().Add(2, "boss")
	p.CopyVerificationLog([]string{"|V|", "|W|"})
	for i := range 4 {
		p.LagLog().Set(i, i == 1)
	}
	p.SetSessionState(movie.SessionState{CurrentFrame: 3, CurrentBranch: -1})
	p.StateHistory().UpdateSettings(statehistory.Settings{MaxEntries: 10, SnapshotFreq: 2})
	p.StateHistory().Capture(0, []byte{0})
	p.StateHistory().Capture(2, []byte{2})
	test.DemandSuccess(t, p.Save())

	q := project(t, s, fn)
	test.DemandSuccess(t, q.Load(false))
	test.ExpectSliceEquality(t, q.LogEntries(), p.LogEntries())
	test.ExpectSliceEquality(t, q.Markers().All(), []movie.Marker{{Frame: 2, Message: "boss"}})
	test.ExpectSliceEquality(t, q.VerificationLog(), []string{"|V|", "|W|"})
	test.ExpectEquality(t, q.LagLog().Len(), 4)
	lagged, _ := q.LagLog().Lagged(1)
	test.ExpectSuccess(t, lagged)
	test.ExpectEquality(t, q.SessionState(), movie.SessionState{CurrentFrame: 3, CurrentBranch: -1})
	test.ExpectEquality(t, q.StateHistory().Settings(), statehistory.Settings{MaxEntries: 10, SnapshotFreq: 2})
	test.ExpectSliceEquality(t, q.StateHistory().Frames(), []int{0, 2})
	test.ExpectFailure(t, q.Branches().Any())
}

func TestVerificationLogOmitted(t *testing.T) {
	s := session(t, nil)
	fn := filepath.Join(t.TempDir(), "game.tasproj")

	p := project(t, s, fn)
	p.CopyLog([]string{"|A|"})
	test.DemandSuccess(t, p.Save())

	r, err := lump.Open(fn)
	test.DemandSuccess(t, err)
	defer r.Close()
	test.ExpectFailure(t, r.Has(lump.VerificationLog))
	test.ExpectFailure(t, r.Has(lump.ClientSettings))
	test.ExpectFailure(t, r.Has(lump.BranchHeader.Indexed(1)))
	test.ExpectSuccess(t, r.Has(lump.Session))
	test.ExpectSuccess(t, r.Has(lump.StateHistorySettings))
}

func TestClientSettings(t *testing.T) {
	s := session(t, nil)
	fn := filepath.Join(t.TempDir(), "game.tasproj")

	p := project(t, s, fn)
	p.CopyLog([]string{"|A|"})
	p.ClientSettingsForSave = func() string {
		return `{"ScrollSpeed":6}`
	}
	test.DemandSuccess(t, p.Save())

	var loaded string
	q := project(t, s, fn)
	q.OnClientSettingsLoaded = func(settings string) {
		loaded = settings
	}
	test.DemandSuccess(t, q.Load(false))
	test.ExpectEquality(t, loaded, `{"ScrollSpeed":6}`)

	// the hook is not called if there are no client settings
	loaded = ""
	p.ClientSettingsForSave = nil
	test.DemandSuccess(t, p.Save())
	test.DemandSuccess(t, q.Load(false))
	test.ExpectEquality(t, loaded, "")
}

func TestBranches(t *testing.T) {
	s := session(t, nil)
	fn := filepath.Join(t.TempDir(), "game.tasproj")

	p := project(t, s, fn)
	p.SetLogKey("#P1 A|")
	p.CopyLog([]string{"|A|", "|B|", "|C|"})
	p.Markers().Add(1, "first")
	br := p.AddBranch(2, []byte{1, 2, 3}, nil, "my branch")

	// change the project after the branch was made
	p.AppendFrame("|D|")
	p.Markers().Add(3, "second")
	test.ExpectSuccess(t, p.IsReserved(0))
	test.ExpectSuccess(t, p.IsReserved(1))
	test.ExpectSuccess(t, p.IsReserved(2))
	test.ExpectSuccess(t, p.IsReserved(3))
	test.ExpectFailure(t, p.IsReserved(4))
	test.DemandSuccess(t, p.Save())

	q := project(t, s, fn)
	test.DemandSuccess(t, q.Load(false))
	test.DemandEquality(t, q.Branches().Len(), 1)

	got, _ := q.Branches().Get(0)
	test.ExpectEquality(t, got.ID, br.ID)
	test.ExpectEquality(t, got.Frame, 2)
	test.ExpectEquality(t, got.UserText, "my branch")
	test.ExpectSliceEquality(t, got.CoreData, []byte{1, 2, 3})
	test.ExpectSliceEquality(t, got.InputLog, []string{"|A|", "|B|", "|C|"})

	test.ExpectSuccess(t, q.LoadBranch(br.ID))
	test.ExpectSliceEquality(t, q.LogEntries(), []string{"|A|", "|B|", "|C|"})
	test.ExpectSliceEquality(t, q.Markers().All(), []movie.Marker{{Frame: 1, Message: "first"}})
	test.ExpectSuccess(t, q.Changes())

	q.Branches().Clear()
	test.ExpectFailure(t, q.LoadBranch(br.ID))
}

func TestProjectVersionMismatch(t *testing.T) {
	for _, anchor := range []movie.Anchor{movie.PowerOn{}, movie.Savestate{Binary: []byte{1}}} {
		var notices notifications.Collector
		s := session(t, &notices)
		fn := filepath.Join(t.TempDir(), "game.tasproj")

		p := project(t, s, fn)
		p.CopyLog([]string{"|A|", "|B|"})
		p.SetAnchor(anchor)
		p.Markers().Add(1, "marker")
		p.CopyVerificationLog([]string{"|V|"})
		p.LagLog().Set(0, true)
		p.AddBranch(1, []byte{1}, nil, "")
		p.StateHistory().Capture(0, []byte{0})
		p.Header().Set(header.MovieVersion, "Unknown Format v9")
		test.DemandSuccess(t, p.Save())

		q := project(t, s, fn)
		test.DemandSuccess(t, q.Load(false))
		test.ExpectSuccess(t, notices.Contains(notifications.NotifyProjectIncompatible))

		// recording fields are intact
		test.ExpectSliceEquality(t, q.LogEntries(), []string{"|A|", "|B|"})

		// project fields are not loaded, apart from the single marker
		test.ExpectEquality(t, len(q.VerificationLog()), 0)
		test.ExpectEquality(t, q.LagLog().Len(), 0)
		test.ExpectFailure(t, q.Branches().Any())
		test.ExpectEquality(t, q.StateHistory().Count(), 0)
		test.DemandEquality(t, q.Markers().Len(), 1)

		m, ok := q.Markers().At(0)
		test.ExpectSuccess(t, ok)
		if _, ok := anchor.(movie.Savestate); ok {
			test.ExpectEquality(t, m.Message, "Savestate")
		} else {
			test.ExpectEquality(t, m.Message, "Power on")
		}
	}
}

// a project file written without the movie package. the state history lump
// is omitted if stateHistory is nil
func writeProject(t *testing.T, fn string, settingsDoc string, stateHistory []byte) {
	t.Helper()

	w, err := lump.Create(fn, 1)
	test.DemandSuccess(t, err)

	put := func(id lump.ID, f func(tw io.Writer) error) {
		t.Helper()
		test.DemandSuccess(t, w.PutText(id, f))
	}
	put(lump.Movieheader, func(tw io.Writer) error {
		_, err := io.WriteString(tw, "MovieVersion "+movie.ProjectVersionString(movie.CurrentProjectVersion)+"\n")
		return err
	})
	put(lump.Input, func(tw io.Writer) error {
		return inputlog.Write(tw, "#P1 A|", []string{"|A|", "|.|", "|A|"})
	})
	put(lump.Markers, func(tw io.Writer) error {
		_, err := io.WriteString(tw, "1\tone\nnonsense\n2\ttwo\n")
		return err
	})
	put(lump.Session, func(tw io.Writer) error {
		_, err := io.WriteString(tw, "{not json")
		return err
	})
	put(lump.StateHistorySettings, func(tw io.Writer) error {
		_, err := io.WriteString(tw, settingsDoc)
		return err
	})
	if stateHistory != nil {
		err = w.PutBinary(lump.StateHistory, func(bw io.Writer) error {
			_, err := bw.Write(stateHistory)
			return err
		})
		test.DemandSuccess(t, err)
	}

	test.DemandSuccess(t, w.Close())
}

func TestCorruptStateHistory(t *testing.T) {
	var notices notifications.Collector
	s := session(t, &notices)
	fn := filepath.Join(t.TempDir(), "corrupt.tasproj")
	writeProject(t, fn, `{"MaxEntries":5,"SnapshotFreq":5}`, []byte("this is not a state history"))

	p := project(t, s, fn)
	test.DemandSuccess(t, p.Load(false))
	test.ExpectSuccess(t, notices.Contains(notifications.NotifyStateHistoryCorrupt))

	test.ExpectSliceEquality(t, p.LogEntries(), []string{"|A|", "|.|", "|A|"})
	test.ExpectEquality(t, p.LogKey(), "#P1 A|")
	test.ExpectSliceEquality(t, p.Markers().All(), []movie.Marker{{Frame: 1, Message: "one"}, {Frame: 2, Message: "two"}})

	// a fresh state history with the default settings
	test.ExpectEquality(t, p.StateHistory().Count(), 0)
	test.ExpectEquality(t, p.StateHistory().Settings(), s.Settings().StateHistory)

	// the session descriptor could not be decoded
	test.ExpectEquality(t, p.SessionState(), movie.SessionState{})
}

func TestBadStateHistorySettings(t *testing.T) {
	s := session(t, nil)
	dir := t.TempDir()

	fn := filepath.Join(dir, "settings.tasproj")

	// settings are used even when there is no state history
	writeProject(t, fn, `{"MaxEntries":5,"SnapshotFreq":5}`, nil)
	p := project(t, s, fn)
	test.DemandSuccess(t, p.Load(false))
	test.ExpectEquality(t, p.StateHistory().Settings(), statehistory.Settings{MaxEntries: 5, SnapshotFreq: 5})

	for i, doc := range []string{"garbage", `{"MaxEntries":0,"SnapshotFreq":1}`, ""} {
		writeProject(t, fn, doc, nil)

		p := project(t, s, fn)
		test.DemandSuccess(t, p.Load(false), i)
		test.ExpectEquality(t, p.StateHistory().Settings(), s.Settings().StateHistory, i)
	}
}

func TestIsCurrentProjectVersion(t *testing.T) {
	test.ExpectSuccess(t, movie.IsCurrentProjectVersion(movie.ProjectVersionString(movie.CurrentProjectVersion)))
	test.ExpectSuccess(t, movie.IsCurrentProjectVersion("Moviecore v2.0 Project v1.2"))
	test.ExpectSuccess(t, movie.IsCurrentProjectVersion("moviecore v2.0 project v1.15"))
	test.ExpectFailure(t, movie.IsCurrentProjectVersion("Moviecore v2.0 Project v2"))
	test.ExpectFailure(t, movie.IsCurrentProjectVersion("Moviecore v2.0 Project v9.1"))
	test.ExpectFailure(t, movie.IsCurrentProjectVersion("Moviecore v2.0 Project Inf"))
	test.ExpectFailure(t, movie.IsCurrentProjectVersion("Moviecore v2.0 Project NaN"))
	test.ExpectFailure(t, movie.IsCurrentProjectVersion("Moviecore v2.0 Project v1.0"))
	test.ExpectFailure(t, movie.IsCurrentProjectVersion("Moviecore v2.0"))
	test.ExpectFailure(t, movie.IsCurrentProjectVersion(""))
	test.ExpectFailure(t, movie.IsCurrentProjectVersion("Moviecore v2.0 Project vX"))
	test.ExpectEquality(t, movie.ProjectVersionString(1.1), "Moviecore v2.0 Project v1.1")
}
