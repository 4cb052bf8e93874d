// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"fmt"
	"strings"
)

// A LintError reports a problem found on a given line (1-based, 0 when it applies
// to the whole document).
type LintError struct {
	Line int
	Msg  string
}

func (e LintError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Lint reports the marked lines Extract would silently skip or mis-split, and
// whether rewriting every field with its current value still yields valid YAML.
func Lint(doc Document) []error {
	var errs []error
	for i, l := range doc {
		m := strings.Index(l, Marker)
		if m < 0 {
			continue
		}
		name, _, ok := parseLine(l)
		switch {
		case !ok:
			errs = append(errs, LintError{i + 1, fmt.Sprintf("%s marker on a line without a field", Marker)})
		case strings.Contains(name, ":"):
			errs = append(errs, LintError{i + 1, fmt.Sprintf("field name %q contains a colon; quote values containing colons", name)})
		}
	}

	out := Reconstruct(doc, Extract(doc)).String()
	if _, err := decodeAll([]byte(out)); err != nil {
		errs = append(errs, LintError{0, fmt.Sprintf("document is not valid YAML after rewriting its fields: %v", err)})
	}
	return errs
}
