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
	"strings"
	"testing"

	"github.com/jetsetilly/moviecore/movie"
	"github.com/jetsetilly/moviecore/test"
)

func TestMarkers(t *testing.T) {
	var m movie.Markers
	m.Add(50, "b")
	m.Add(10, "a")
	m.Add(90, "c")
	m.Add(50, "replaced")
	test.ExpectEquality(t, m.Len(), 3)
	test.ExpectEquality(t, m.String(), "10\ta\n50\treplaced\n90\tc\n")

	mk, ok := m.At(50)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, mk.Message, "replaced")
	_, ok = m.At(51)
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, m.Remove(10))
	test.ExpectFailure(t, m.Remove(10))
	test.ExpectEquality(t, m.Len(), 2)

	var n movie.Markers
	test.DemandSuccess(t, n.Load(strings.NewReader(m.String())))
	test.ExpectSliceEquality(t, n.All(), m.All())

	n.Clear()
	test.ExpectEquality(t, n.Len(), 0)
}

func TestMarkersShift(t *testing.T) {
	var m movie.Markers
	m.Add(10, "a")
	m.Add(40, "b")
	m.Add(50, "c")
	m.Add(90, "d")

	s := m.ShiftFrom(40)
	test.ExpectSliceEquality(t, s.All(), []movie.Marker{{Frame: 10, Message: "c"}, {Frame: 50, Message: "d"}})
	test.ExpectEquality(t, m.Len(), 4)
}

func TestParseMarker(t *testing.T) {
	mk, err := movie.ParseMarker("12\tmessage with\ttab")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mk, movie.Marker{Frame: 12, Message: "message with\ttab"})

	_, err = movie.ParseMarker("12 no tab")
	test.ExpectFailure(t, err)
	_, err = movie.ParseMarker("x\tmessage")
	test.ExpectFailure(t, err)
	_, err = movie.ParseMarker("-1\tmessage")
	test.ExpectFailure(t, err)

	// badly formed lines are skipped
	var m movie.Markers
	test.DemandSuccess(t, m.Load(strings.NewReader("1\tone\r\n\nbad\n2\ttwo\n")))
	test.ExpectSliceEquality(t, m.All(), []movie.Marker{{Frame: 1, Message: "one"}, {Frame: 2, Message: "two"}})
}

func TestSubtitles(t *testing.T) {
	s := movie.Subtitle{Frame: 100, X: 10, Y: 20, Duration: 120, Color: 0xff00ff00, Message: "hello world"}
	test.ExpectEquality(t, s.String(), "subtitle 100 10 20 120 FF00FF00 hello world")

	p, err := movie.ParseSubtitle(s.String())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, s)

	for _, bad := range []string{"", "subtitle 1 2 3", "caption 1 2 3 4 FF hello", "subtitle a 2 3 4 FF hello", "subtitle 1 2 3 4 XYZ hello"} {
		_, err = movie.ParseSubtitle(bad)
		test.ExpectFailure(t, err, bad)
	}

	subs := movie.Subtitles{
		{Frame: 5, Message: "b"},
		{Frame: 1, Message: "a"},
		{Frame: 5, Message: "c"},
	}
	subs.Sort()
	test.ExpectSliceEquality(t, subs, movie.Subtitles{
		{Frame: 1, Message: "a"},
		{Frame: 5, Message: "b"},
		{Frame: 5, Message: "c"},
	})
}
