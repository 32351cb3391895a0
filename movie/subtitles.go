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
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jetsetilly/moviecore/curated"
)

const subtitlePrefix = "subtitle"

// Subtitle is text displayed on screen during playback of a movie.
type Subtitle struct {
	Frame    int
	X        int
	Y        int
	Duration int

	// colour as 0xAARRGGBB
	Color uint32

	Message string
}

// String returns the subtitle in the form used by the subtitles lump:
//
//	subtitle <frame> <x> <y> <duration> <colour> <message>
func (s Subtitle) String() string {
	return fmt.Sprintf("%s %d %d %d %d %08X %s", subtitlePrefix, s.Frame, s.X, s.Y, s.Duration, s.Color, s.Message)
}

// ParseSubtitle is the inverse of Subtitle.String().
func ParseSubtitle(line string) (Subtitle, error) {
	f := strings.SplitN(strings.TrimLeft(line, " \t"), " ", 7)
	if len(f) < 6 || f[0] != subtitlePrefix {
		return Subtitle{}, curated.Errorf("subtitle: badly formed (%s)", line)
	}

	var s Subtitle
	var err error

	ints := []*int{&s.Frame, &s.X, &s.Y, &s.Duration}
	for i, v := range ints {
		*v, err = strconv.Atoi(f[i+1])
		if err != nil {
			return Subtitle{}, curated.Errorf("subtitle: %v", err)
		}
	}

	c, err := strconv.ParseUint(f[5], 16, 32)
	if err != nil {
		return Subtitle{}, curated.Errorf("subtitle: %v", err)
	}
	s.Color = uint32(c)

	if len(f) == 7 {
		s.Message = f[6]
	}

	return s, nil
}

// Subtitles is a list of subtitles.
type Subtitles []Subtitle

// Sort the subtitles by frame. Subtitles for the same frame keep their
// relative order.
func (s Subtitles) Sort() {
	slices.SortStableFunc(s, func(a, b Subtitle) int {
		return a.Frame - b.Frame
	})
}

// String returns the subtitles one per line.
func (s Subtitles) String() string {
	var b strings.Builder
	for _, sub := range s {
		b.WriteString(sub.String())
		b.WriteString("\n")
	}
	return b.String()
}
