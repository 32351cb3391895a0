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

// Package jsondoc serialises the small JSON documents that are stored in a
// movie file alongside the input log.
//
// TryDeserialize never fails in the sense that it always returns a usable
// value. If the document can not be decoded then the supplied default is
// returned along with an error describing the problem. It is up to the caller
// to decide whether the error should be logged or propagated.
package jsondoc

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/jetsetilly/moviecore/curated"
)

// Sentinel error returned by TryDeserialize when the document is not valid.
const ParseError = "jsondoc: %v"

// TryDeserialize decodes the JSON document into a value of type T. On failure
// the default value def is returned with a ParseError. An empty document is
// also a ParseError.
func TryDeserialize[T any](doc string, def T) (T, error) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return def, curated.Errorf(ParseError, "empty document")
	}

	var v T
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return def, curated.Errorf(ParseError, err)
	}

	return v, nil
}

// Serialize encodes v as a single line JSON document.
func Serialize(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", curated.Errorf("jsondoc: %v", err)
	}
	return string(b), nil
}
