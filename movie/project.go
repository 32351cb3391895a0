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
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jetsetilly/moviecore/branches"
	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/jsondoc"
	"github.com/jetsetilly/moviecore/laglog"
	"github.com/jetsetilly/moviecore/logger"
	"github.com/jetsetilly/moviecore/lump"
	"github.com/jetsetilly/moviecore/movie/header"
	"github.com/jetsetilly/moviecore/movie/inputlog"
	"github.com/jetsetilly/moviecore/notifications"
	"github.com/jetsetilly/moviecore/statehistory"
)

// SessionState is the position of the user in a project at the moment it was
// saved.
type SessionState struct {
	CurrentFrame  int
	CurrentBranch int
}

// Project is the kind of movie used while a movie is being edited. In addition
// to the fields of a Recording, a project has markers, branches, a lag log, a
// verification log and a state history.
type Project struct {
	core

	lagLog       laglog.LagLog
	markers      Markers
	verification []string
	branches     branches.Branches
	stateHistory *statehistory.Manager
	state        SessionState

	// ClientSettingsForSave is called when the project is saved. The returned
	// string is stored in the project file without interpretation. If the
	// field is nil then no client settings are saved
	ClientSettingsForSave func() string

	// OnClientSettingsLoaded is called with the client settings stored in the
	// project file, if there are any
	OnClientSettingsLoaded func(settings string)
}

func (s *Session) newProject(filename string) *Project {
	p := &Project{
		core: newCore(s, filename, ProjectVersionString(CurrentProjectVersion)),
	}
	p.stateHistory = statehistory.NewManager(s.settings.StateHistory, p.IsReserved)
	return p
}

// PreferredExtension implements the Movie interface.
func (p *Project) PreferredExtension() string {
	return ProjectExtension
}

// IsReserved returns true if the state for the frame should never be evicted
// from the state history. Frame zero, marker frames and branch frames are all
// reserved.
func (p *Project) IsReserved(frame int) bool {
	if frame == 0 {
		return true
	}
	if _, ok := p.markers.At(frame); ok {
		return true
	}
	return slices.Contains(p.branches.Frames(), frame)
}

// LagLog returns the lag log. The lag log can be changed by the caller.
func (p *Project) LagLog() *laglog.LagLog {
	return &p.lagLog
}

// Markers returns the markers. The markers can be changed by the caller.
func (p *Project) Markers() *Markers {
	return &p.markers
}

// Branches returns the branches. The branches can be changed by the caller.
func (p *Project) Branches() *branches.Branches {
	return &p.branches
}

// StateHistory returns the state history manager.
func (p *Project) StateHistory() *statehistory.Manager {
	return p.stateHistory
}

// VerificationLog returns a copy of the verification log.
func (p *Project) VerificationLog() []string {
	return slices.Clone(p.verification)
}

// CopyVerificationLog appends the entries to the verification log. Nothing is
// appended if any entry is not a valid input record.
func (p *Project) CopyVerificationLog(entries []string) error {
	if err := inputlog.CheckRecords(entries); err != nil {
		return curated.Errorf("movie: %v", err)
	}
	p.verification = append(p.verification, entries...)
	p.changes = true
	return nil
}

// SessionState returns the session state.
func (p *Project) SessionState() SessionState {
	return p.state
}

// SetSessionState changes the session state.
func (p *Project) SetSessionState(state SessionState) {
	p.state = state
	p.changes = true
}

// AddBranch creates a new branch from the current input log and markers.
func (p *Project) AddBranch(frame int, coreData []byte, framebuffer []byte, userText string) branches.Branch {
	p.changes = true
	return p.branches.Add(branches.Branch{
		Frame:       frame,
		CoreData:    slices.Clone(coreData),
		Framebuffer: slices.Clone(framebuffer),
		LogKey:      p.logKey,
		InputLog:    p.log,
		Markers:     p.markers.String(),
		UserText:    userText,
	})
}

// LoadBranch replaces the input log and markers with those of the branch. The
// state history is invalidated from the branch frame onwards. Returns false
// if there is no branch with the ID.
func (p *Project) LoadBranch(id uuid.UUID) bool {
	i, ok := p.branches.Find(id)
	if !ok {
		return false
	}
	br, _ := p.branches.Get(i)

	p.log = slices.Clone(br.InputLog)
	if br.LogKey != "" {
		p.logKey = br.LogKey
	}
	if err := p.markers.Load(strings.NewReader(br.Markers)); err != nil {
		logger.Log(logger.Allow, "movie", err)
	}
	p.lagLog.RemoveFrom(br.Frame)
	p.stateHistory.InvalidateAfter(br.Frame)
	p.state.CurrentBranch = i
	p.changes = true

	return true
}

// Truncate implements the Movie interface. The lag log and the state history
// are also truncated.
func (p *Project) Truncate(frame int) {
	p.core.Truncate(frame)
	p.lagLog.RemoveFrom(frame)
	p.stateHistory.InvalidateAfter(frame - 1)
}

// Load implements the Movie interface. If preload is true then only the header
// and input log are loaded.
//
// A project written by an incompatible version is loaded as though it was a
// recording. A single marker is added at frame zero and the user is notified.
func (p *Project) Load(preload bool) error {
	return p.load(preload, p.clearExtras, p.getExtras)
}

// PreLoadHeaderAndLength implements the Movie interface.
func (p *Project) PreLoadHeaderAndLength() error {
	return p.Load(true)
}

// Save implements the Movie interface.
func (p *Project) Save() error {
	return p.write(p.filename, false, p.putExtras)
}

// SaveBackup implements the Movie interface. The state history is not included
// in the backup.
func (p *Project) SaveBackup() error {
	return p.backup(p.putExtras)
}

func (p *Project) clearExtras() {
	p.lagLog.Clear()
	p.markers.Clear()
	p.verification = p.verification[:0]
	p.branches.Clear()
	p.stateHistory.Clear()
	p.state = SessionState{}
}

func (p *Project) putExtras(w *lump.Writer, backup bool) error {
	settings, err := jsondoc.Serialize(p.stateHistory.Settings())
	if err != nil {
		return err
	}
	err = w.PutText(lump.StateHistorySettings, func(tw io.Writer) error {
		_, err := io.WriteString(tw, settings+"\n")
		return err
	})
	if err != nil {
		return err
	}

	err = w.PutText(lump.LagLog, p.lagLog.Save)
	if err != nil {
		return err
	}

	err = w.PutText(lump.Markers, func(tw io.Writer) error {
		_, err := io.WriteString(tw, p.markers.String())
		return err
	})
	if err != nil {
		return err
	}

	if p.ClientSettingsForSave != nil {
		cs := p.ClientSettingsForSave()
		err = w.PutText(lump.ClientSettings, func(tw io.Writer) error {
			_, err := io.WriteString(tw, cs)
			return err
		})
		if err != nil {
			return err
		}
	}

	if len(p.verification) > 0 {
		err = w.PutText(lump.VerificationLog, func(tw io.Writer) error {
			return inputlog.WriteRecords(tw, p.verification)
		})
		if err != nil {
			return err
		}
	}

	if p.branches.Any() {
		if err := p.branches.Save(w); err != nil {
			return err
		}
	}

	state, err := jsondoc.Serialize(p.state)
	if err != nil {
		return err
	}
	err = w.PutText(lump.Session, func(tw io.Writer) error {
		_, err := io.WriteString(tw, state+"\n")
		return err
	})
	if err != nil {
		return err
	}

	if !backup {
		err = w.PutBinary(lump.StateHistory, p.stateHistory.SaveStateHistory)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Project) getExtras(r *lump.Reader) error {
	if !IsCurrentProjectVersion(p.header.Value(header.MovieVersion)) {
		p.session.warn(notifications.NotifyProjectIncompatible)
		if _, ok := p.anchor.(Savestate); ok {
			p.markers.Add(0, "Savestate")
		} else {
			p.markers.Add(0, "Power on")
		}
		return nil
	}

	optional := func(id lump.ID, err error) {
		if err != nil {
			logger.Logf(logger.Allow, "movie", "%s: %v", id, err)
		}
	}

	_, err := r.GetText(lump.LagLog, false, p.lagLog.Load)
	optional(lump.LagLog, err)

	_, err = r.GetText(lump.Markers, false, p.markers.Load)
	optional(lump.Markers, err)

	if p.OnClientSettingsLoaded != nil {
		var cs string
		_, err = r.GetText(lump.ClientSettings, false, func(tr io.Reader) error {
			return nonBlankLines(tr, func(line string) {
				cs = line
			})
		})
		optional(lump.ClientSettings, err)
		if cs != "" {
			p.OnClientSettingsLoaded(cs)
		}
	}

	_, err = r.GetText(lump.VerificationLog, false, func(tr io.Reader) error {
		var err error
		p.verification, err = inputlog.ReadRecords(tr)
		return err
	})
	optional(lump.VerificationLog, err)

	if err := p.branches.Load(r, p); err != nil {
		logger.Log(logger.Allow, "movie", err)
	}

	_, err = r.GetText(lump.Session, false, func(tr io.Reader) error {
		doc, err := io.ReadAll(tr)
		if err != nil {
			return err
		}
		p.state, err = jsondoc.TryDeserialize(string(doc), SessionState{})
		return err
	})
	optional(lump.Session, err)

	settings := p.session.settings.StateHistory
	_, err = r.GetText(lump.StateHistorySettings, false, func(tr io.Reader) error {
		doc, err := io.ReadAll(tr)
		if err != nil {
			return err
		}
		s, err := jsondoc.TryDeserialize(string(doc), settings)
		if err != nil {
			return err
		}
		if err := s.Validate(); err != nil {
			return err
		}
		settings = s
		return nil
	})
	optional(lump.StateHistorySettings, err)

	found, err := r.GetBinary(lump.StateHistory, false, func(br io.Reader, _ int64) error {
		m, err := statehistory.Create(br, settings, p.IsReserved)
		if err != nil {
			return err
		}
		p.stateHistory.Dispose()
		p.stateHistory = m
		return nil
	})
	if err != nil {
		logger.Log(logger.Allow, "movie", err)
		p.freshStateHistory()
		p.session.warn(notifications.NotifyStateHistoryCorrupt)
	} else if !found {
		p.stateHistory.UpdateSettings(settings)
	}

	return nil
}

// replace the state history with an empty history using the session's
// default settings
func (p *Project) freshStateHistory() {
	p.stateHistory.Dispose()
	p.stateHistory = statehistory.NewManager(p.session.settings.StateHistory, p.IsReserved)
}
