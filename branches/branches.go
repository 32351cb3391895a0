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

// Package branches keeps alternative versions of a project movie. A branch is
// a copy of the input log, along with the emulation state at the frame the
// branch was made. The user can return to a branch at any time.
//
// Branches are stored in the project file as a set of numbered lumps, one set
// per branch.
package branches

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Branch is a single save point in a project movie.
type Branch struct {
	ID        uuid.UUID
	Frame     int
	Timestamp time.Time
	UserText  string

	// the emulation state at Frame. opaque to this package
	CoreData []byte

	// framebuffer at Frame. may be empty
	Framebuffer []byte

	// the input log at the time the branch was made
	LogKey   string
	InputLog []string

	// serialised markers. the format is the concern of the movie package
	Markers string
}

// Owner is the movie that the branches belong to.
type Owner interface {
	// LogKey returns the log key of the owning movie. used when a branch
	// does not have a log key of its own
	LogKey() string
}

// Branches is the list of branches in a project movie. The zero value is
// ready to use.
type Branches struct {
	branches []Branch
}

// Any returns true if there is at least one branch.
func (b *Branches) Any() bool {
	return len(b.branches) > 0
}

// Len returns the number of branches.
func (b *Branches) Len() int {
	return len(b.branches)
}

// Add a new branch to the list. A branch without an ID is given a new random
// ID and a branch without a timestamp is given the current time. The branch, as
// added to the list, is returned.
func (b *Branches) Add(br Branch) Branch {
	if br.ID == uuid.Nil {
		br.ID = uuid.New()
	}
	if br.Timestamp.IsZero() {
		br.Timestamp = time.Now()
	}
	br.InputLog = slices.Clone(br.InputLog)
	b.branches = append(b.branches, br)
	return br
}

// Remove the branch with the ID. Returns false if there is no such branch.
func (b *Branches) Remove(id uuid.UUID) bool {
	i, ok := b.Find(id)
	if !ok {
		return false
	}
	b.branches = slices.Delete(b.branches, i, i+1)
	return true
}

// Find returns the index of the branch with the ID.
func (b *Branches) Find(id uuid.UUID) (int, bool) {
	i := slices.IndexFunc(b.branches, func(br Branch) bool {
		return br.ID == id
	})
	return i, i >= 0
}

// Get the branch at index i.
func (b *Branches) Get(i int) (Branch, bool) {
	if i < 0 || i >= len(b.branches) {
		return Branch{}, false
	}
	return b.branches[i], true
}

// All returns a copy of the list of branches.
func (b *Branches) All() []Branch {
	return slices.Clone(b.branches)
}

// Frames returns the frame number of every branch.
func (b *Branches) Frames() []int {
	f := make([]int, 0, len(b.branches))
	for _, br := range b.branches {
		f = append(f, br.Frame)
	}
	return f
}

// Clear removes all branches.
func (b *Branches) Clear() {
	b.branches = b.branches[:0]
}
