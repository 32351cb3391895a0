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

package catalogue

import (
	"github.com/jetsetilly/moviecore/movie"
)

// AsyncResults are copies of the listing that are safe to access
// asynchronously.
type AsyncResults struct {
	Dir     string
	Entries []Entry
}

// AsyncList lists a directory in the background. Preloading a large number of
// movies can take some time.
type AsyncList struct {
	session *movie.Session

	results chan AsyncResults
	err     chan error

	// Results of the most recent Set()
	Results AsyncResults
}

// NewAsyncList is the preferred method of initialisation for the AsyncList
// type.
func NewAsyncList(s *movie.Session) *AsyncList {
	return &AsyncList{
		session: s,
		results: make(chan AsyncResults, 1),
		err:     make(chan error, 1),
	}
}

// Set the directory to list. Process() must be called in order to retrieve the
// results.
func (l *AsyncList) Set(dir string) {
	go func() {
		entries, err := List(l.session, dir)
		if err != nil {
			l.err <- err
			return
		}
		l.results <- AsyncResults{
			Dir:     dir,
			Entries: entries,
		}
	}()
}

// Process asynchronous requests. Must be called in order to receive the
// results of a Set(). Returns true if the Results field has been updated.
// Suitable to be called as part of a render loop.
func (l *AsyncList) Process() (bool, error) {
	select {
	case err := <-l.err:
		return false, err
	case results := <-l.results:
		l.Results = results
		return true, nil
	default:
	}
	return false, nil
}
