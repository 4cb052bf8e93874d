// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"strings"
	"unicode"
)

// Reconstruct returns a copy of doc where the value of every marked line whose key
// is present in fields is replaced by the value found in fields.
//
// Replaced values are always double quoted. Indentation, field name and the marker
// comment (with the whitespace that precedes it) are preserved. Other lines are
// copied verbatim.
func Reconstruct(doc Document, fields Fields) Document {
	res := make(Document, len(doc))
	for i, l := range doc {
		res[i] = l
		name, _, ok := parseLine(l)
		if !ok {
			continue
		}
		v, ok := fields[Key(i, name)]
		if !ok {
			continue
		}
		res[i] = rewriteLine(l, name, v)
	}
	return res
}

func rewriteLine(l, name, value string) string {
	indent := l[:len(l)-len(strings.TrimLeftFunc(l, unicode.IsSpace))]

	m := strings.Index(l, Marker)
	gap := l[len(strings.TrimRightFunc(l[:m], unicode.IsSpace)):m]
	if gap == "" {
		gap = " "
	}

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(name)
	b.WriteString(`: "`)
	b.WriteString(value)
	b.WriteString(`"`)
	b.WriteString(gap)
	b.WriteString(l[m:])
	return b.String()
}
