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

package branches

import (
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/jetsetilly/moviecore/curated"
	"github.com/jetsetilly/moviecore/lump"
	"github.com/jetsetilly/moviecore/movie/inputlog"
)

// the branch header lump
type header struct {
	Frame            int
	UniqueIdentifier uuid.UUID
	Timestamp        time.Time
}

// Save every branch to the container. Branches are numbered from one.
func (b *Branches) Save(w *lump.Writer) error {
	for i, br := range b.branches {
		n := i + 1

		err := w.PutText(lump.BranchHeader.Indexed(n), func(tw io.Writer) error {
			return json.NewEncoder(tw).Encode(header{
				Frame:            br.Frame,
				UniqueIdentifier: br.ID,
				Timestamp:        br.Timestamp,
			})
		})
		if err != nil {
			return curated.Errorf("branches: %v", err)
		}

		err = w.PutBinary(lump.BranchCoreData.Indexed(n), func(bw io.Writer) error {
			_, err := bw.Write(br.CoreData)
			return err
		})
		if err != nil {
			return curated.Errorf("branches: %v", err)
		}

		err = w.PutText(lump.BranchInputLog.Indexed(n), func(tw io.Writer) error {
			return inputlog.Write(tw, br.LogKey, br.InputLog)
		})
		if err != nil {
			return curated.Errorf("branches: %v", err)
		}

		if len(br.Framebuffer) > 0 {
			err = w.PutBinary(lump.BranchFramebuffer.Indexed(n), func(bw io.Writer) error {
				_, err := bw.Write(br.Framebuffer)
				return err
			})
			if err != nil {
				return curated.Errorf("branches: %v", err)
			}
		}

		err = w.PutText(lump.BranchMarkers.Indexed(n), func(tw io.Writer) error {
			_, err := io.WriteString(tw, br.Markers)
			return err
		})
		if err != nil {
			return curated.Errorf("branches: %v", err)
		}

		err = w.PutText(lump.BranchUserText.Indexed(n), func(tw io.Writer) error {
			_, err := io.WriteString(tw, br.UserText)
			return err
		})
		if err != nil {
			return curated.Errorf("branches: %v", err)
		}
	}

	return nil
}

// Load branches from the container, replacing any existing branches. Loading
// stops at the first branch number for which there is no header lump.
//
// If an error occurs then the branches that were loaded successfully before
// the error are kept.
func (b *Branches) Load(r *lump.Reader, owner Owner) error {
	b.Clear()

	for n := 1; ; n++ {
		var br Branch

		found, err := r.GetText(lump.BranchHeader.Indexed(n), false, func(tr io.Reader) error {
			var h header
			if err := json.NewDecoder(tr).Decode(&h); err != nil {
				return err
			}
			br.Frame = h.Frame
			br.ID = h.UniqueIdentifier
			br.Timestamp = h.Timestamp
			return nil
		})
		if err != nil {
			return curated.Errorf("branches: branch %d: %v", n, err)
		}
		if !found {
			break
		}

		_, err = r.GetBinary(lump.BranchCoreData.Indexed(n), true, func(cr io.Reader, length int64) error {
			br.CoreData = make([]byte, length)
			_, err := io.ReadFull(cr, br.CoreData)
			return err
		})
		if err != nil {
			return curated.Errorf("branches: branch %d: %v", n, err)
		}

		_, err = r.GetText(lump.BranchInputLog.Indexed(n), true, func(tr io.Reader) error {
			var err error
			br.LogKey, br.InputLog, err = inputlog.Read(tr)
			return err
		})
		if err != nil {
			return curated.Errorf("branches: branch %d: %v", n, err)
		}
		if br.LogKey == "" && owner != nil {
			br.LogKey = owner.LogKey()
		}

		_, err = r.GetBinary(lump.BranchFramebuffer.Indexed(n), false, func(fr io.Reader, length int64) error {
			br.Framebuffer = make([]byte, length)
			_, err := io.ReadFull(fr, br.Framebuffer)
			return err
		})
		if err != nil {
			return curated.Errorf("branches: branch %d: %v", n, err)
		}

		_, err = r.GetText(lump.BranchMarkers.Indexed(n), false, func(tr io.Reader) error {
			m, err := io.ReadAll(tr)
			br.Markers = string(m)
			return err
		})
		if err != nil {
			return curated.Errorf("branches: branch %d: %v", n, err)
		}

		_, err = r.GetText(lump.BranchUserText.Indexed(n), false, func(tr io.Reader) error {
			u, err := io.ReadAll(tr)
			br.UserText = string(u)
			return err
		})
		if err != nil {
			return curated.Errorf("branches: branch %d: %v", n, err)
		}

		b.branches = append(b.branches, br)
	}

	return nil
}
