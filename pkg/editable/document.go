// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"strings"
)

// A Document is a YAML source split in lines, indexed from 0.
// Operations in this package never modify a Document; they return new ones.
type Document []string

// NewDocument splits src in lines.
// A trailing newline yields a final empty line so that String returns src unchanged.
func NewDocument(src string) Document {
	return Document(strings.Split(src, "\n"))
}

// String joins the lines back into a YAML source.
func (d Document) String() string {
	return strings.Join(d, "\n")
}

// Line returns the ith line, or false if i is out of range.
func (d Document) Line(i int) (string, bool) {
	if i < 0 || i >= len(d) {
		return "", false
	}
	return d[i], true
}
