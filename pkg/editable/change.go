// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"sort"
	"strings"
)

// Changed reports whether any field in fields differs from the value found at its
// line in the original document.
func Changed(orig Document, fields Fields) bool {
	for k, v := range fields {
		if old, ok := originalValue(orig, k); ok && old != v {
			return true
		}
	}
	return false
}

// ChangedKeys returns the sorted keys of the fields whose value differs from the
// original document.
func ChangedKeys(orig Document, fields Fields) []string {
	var res []string
	for k, v := range fields {
		if old, ok := originalValue(orig, k); ok && old != v {
			res = append(res, k)
		}
	}
	sort.Strings(res)
	return res
}

// originalValue returns the text following the first colon of the line a key
// points to, up to the first double quote, hash or newline.
//
// This is not the parser used by Extract: a quoted value reads back as empty here,
// so a quoted field always counts as changed.
func originalValue(orig Document, key string) (string, bool) {
	i, err := ParseKey(key)
	if err != nil {
		return "", false
	}
	l, ok := orig.Line(i)
	if !ok {
		return "", false
	}
	_, rest, ok := strings.Cut(l, ":")
	if !ok {
		return "", true
	}
	if e := strings.IndexAny(rest, "\"#\n"); e >= 0 {
		rest = rest[:e]
	}
	return strings.TrimSpace(rest), true
}
