// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"strings"
)

// Marker is the trailing comment token that makes a line editable.
// It is matched literally and case-sensitively.
const Marker = "##editable"

// A Field is an editable field found on a given line of a document.
type Field struct {
	Key   string
	Line  int
	Name  string
	Value string
}

// Fields maps field keys (see Key) to field values.
type Fields map[string]string

// Clone returns a copy of f that can be edited without affecting f.
func (f Fields) Clone() Fields {
	res := make(Fields, len(f))
	for k, v := range f {
		res[k] = v
	}
	return res
}

// ExtractFields returns the editable fields of doc, in line order.
func ExtractFields(doc Document) []Field {
	var res []Field
	for i, l := range doc {
		if name, value, ok := parseLine(l); ok {
			res = append(res, Field{Key: Key(i, name), Line: i, Name: name, Value: value})
		}
	}
	return res
}

// Extract returns the editable fields of doc as a field map.
// A document without markers yields an empty, non-nil map.
func Extract(doc Document) Fields {
	res := Fields{}
	for _, f := range ExtractFields(doc) {
		res[f.Key] = f.Value
	}
	return res
}

// parseLine splits a marked line in field name and value.
// Only the last colon before the marker separates name and value.
func parseLine(l string) (name, value string, ok bool) {
	m := strings.Index(l, Marker)
	if m < 0 {
		return "", "", false
	}
	clean := strings.TrimSpace(l[:m])
	c := strings.LastIndex(clean, ":")
	if c < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(clean[:c])
	value = strings.TrimSpace(clean[c+1:])
	value = strings.NewReplacer(`"`, "", `'`, "").Replace(value)
	return name, value, true
}
