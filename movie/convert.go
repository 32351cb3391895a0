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
	"slices"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/movie/header"
	"github.com/jetsetilly/moviecore/paths"
)

// copy the fields common to both kinds of movie. the header is replaced
// wholesale
func (c *core) copyFrom(old *core) {
	c.log = slices.Clone(old.log)
	c.logKey = old.logKey
	c.header.Replace(old.header.Entries())
	c.syncSettings = old.syncSettings
	c.comments = slices.Clone(old.comments)
	c.subtitles = slices.Clone(old.subtitles)
	c.changes = true
}

// a new project for the converted movie. the filename is derived from the old
// filename and never names an existing file
func (s *Session) conversionProject(old Movie) *Project {
	return s.newProject(paths.ConversionFilename(old.Filename(), ProjectExtension))
}

// ToProject converts a movie to a Project. The anchor is carried over and the
// movie version is stamped with the project version. The new project is saved
// before it is returned.
//
// The old movie is not changed.
func ToProject(old Movie, projectVersion float64) (*Project, error) {
	o := old.base()
	p := o.session.conversionProject(old)

	p.copyFrom(o)
	p.header.Set(header.MovieVersion, ProjectVersionString(projectVersion))
	p.anchor = cloneAnchor(o.anchor)

	if err := p.Save(); err != nil {
		return nil, curated.Errorf("movie: to project: %v", err)
	}
	return p, nil
}

// ToRecording converts a movie to a Recording. Fields that only exist in a
// Project are lost. The new recording is saved before it is returned.
//
// The old movie is not changed.
func ToRecording(old Movie) (*Recording, error) {
	o := old.base()
	rec := o.session.newRecording(paths.ConversionFilename(old.Filename(), RecordingExtension))

	rec.copyFrom(o)
	rec.header.Set(header.MovieVersion, LegacyVersionString())
	rec.anchor = cloneAnchor(o.anchor)

	if err := rec.Save(); err != nil {
		return nil, curated.Errorf("movie: to recording: %v", err)
	}
	return rec, nil
}

// ToSavestateAnchored creates a new Project that starts at frame of the old
// project, using state as the emulation state at that frame. The frames before
// frame are moved to the verification log and markers are renumbered. Markers
// at or before frame are dropped.
//
// The state history can not be carried over because the states are tied to
// frame numbers. The new project has an empty state history with the same
// settings as the old project.
//
// The old project is not changed.
func ToSavestateAnchored(old *Project, frame int, state []byte) (*Project, error) {
	if frame < 0 || frame > len(old.log) {
		return nil, curated.Errorf("movie: savestate anchor: frame %d out of range", frame)
	}

	p := old.session.conversionProject(old)

	// both the new input log and the verification log come from the
	// unaltered input log of the old project
	entries := old.LogEntries()

	p.copyFrom(&old.core)
	p.log = slices.Clone(entries[frame:])
	p.verification = append(slices.Clone(old.verification), entries[:frame]...)
	p.anchor = Savestate{Binary: slices.Clone(state)}

	p.lagLog.Clear()
	p.lagLog.FromLagLog(&old.lagLog)
	p.lagLog.StartFromFrame(frame)

	p.markers = *old.markers.ShiftFrom(frame)

	p.stateHistory.UpdateSettings(old.stateHistory.Settings())

	if err := p.Save(); err != nil {
		return nil, curated.Errorf("movie: savestate anchor: %v", err)
	}
	return p, nil
}

// ToSaveRAMAnchored creates a new Project that starts from power on with
// saveRAM loaded. The entire input log of the old project is copied to the
// verification log. The lag log and state history are not carried over,
// although the new state history has the same settings as the old project.
//
// The old project is not changed.
func ToSaveRAMAnchored(old *Project, saveRAM []byte) (*Project, error) {
	p := old.session.conversionProject(old)

	entries := old.LogEntries()

	p.copyFrom(&old.core)
	p.verification = append(slices.Clone(old.verification), entries...)
	p.anchor = SaveRAM{Data: slices.Clone(saveRAM)}

	p.lagLog.Clear()
	p.stateHistory.Clear()
	p.stateHistory.UpdateSettings(old.stateHistory.Settings())

	if err := p.Save(); err != nil {
		return nil, curated.Errorf("movie: save RAM anchor: %v", err)
	}
	return p, nil
}
