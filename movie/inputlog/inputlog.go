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

// Package inputlog reads and writes the textual encoding of an input log.
//
// An input log is a list of input records, one per frame. Each record starts
// with the '|' character. The encoding of the record is understood by the
// emulation and is otherwise opaque. The log key, if present, describes the
// columns of each record.
//
//	[Input]
//	LogKey:#Reset|Power|#P1 Up|P1 Down|...
//	|..|U.......|
//	|..|........|
//	[/Input]
package inputlog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/moviecore/curated"
)

const (
	sectionStart = "[Input]"
	sectionEnd   = "[/Input]"
	logKeyPrefix = "LogKey:"
)

// RecordPrefix is the character that starts every input record.
const RecordPrefix = "|"

// InvalidRecord is returned for an entry that can not be read back as an input
// record.
const InvalidRecord = "inputlog: invalid record (%q)"

// CheckRecord returns an InvalidRecord error if the entry does not start with
// RecordPrefix or if it spans more than one line.
func CheckRecord(entry string) error {
	if !strings.HasPrefix(entry, RecordPrefix) || strings.ContainsAny(entry, "\r\n") {
		return curated.Errorf(InvalidRecord, entry)
	}
	return nil
}

// CheckRecords is like CheckRecord but for every entry in the list. The first
// invalid entry is reported.
func CheckRecords(entries []string) error {
	for _, e := range entries {
		if err := CheckRecord(e); err != nil {
			return err
		}
	}
	return nil
}

// Write the log key and entries to io.Writer. The log key is omitted if it is
// empty. Nothing is written if any of the entries is not a valid record.
func Write(w io.Writer, logKey string, entries []string) error {
	if err := CheckRecords(entries); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, sectionStart)
	if logKey != "" {
		fmt.Fprintf(bw, "%s%s\n", logKeyPrefix, logKey)
	}
	for _, e := range entries {
		fmt.Fprintln(bw, e)
	}
	fmt.Fprintln(bw, sectionEnd)

	return bw.Flush()
}

// Read an input log from io.Reader. Lines that are not input records and are
// not the log key are ignored.
func Read(r io.Reader) (string, []string, error) {
	var logKey string
	entries := make([]string, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, logKeyPrefix):
			logKey = strings.TrimPrefix(line, logKeyPrefix)
		case strings.HasPrefix(line, RecordPrefix):
			entries = append(entries, line)
		}
	}

	return logKey, entries, scanner.Err()
}

// ReadRecords reads input records from io.Reader until the first empty line.
// Lines that are not input records are skipped. This is the format used by
// the verification log.
func ReadRecords(r io.Reader) ([]string, error) {
	entries := make([]string, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, RecordPrefix) {
			entries = append(entries, line)
		}
	}

	return entries, scanner.Err()
}

// WriteRecords writes the entries to io.Writer, one per line, without the
// section markers or the log key. The entries can be read with ReadRecords().
func WriteRecords(w io.Writer, entries []string) error {
	if err := CheckRecords(entries); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, e := range entries {
		fmt.Fprintln(bw, e)
	}
	return bw.Flush()
}
