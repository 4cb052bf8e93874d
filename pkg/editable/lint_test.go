// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"fmt"
	"testing"
)

func TestLint(t *testing.T) {
	testCases := []struct {
		src          string
		want         []string
		roundTripErr bool
	}{
		{"a: 1 ##editable\nb: 2", nil, false},
		{"a: 1", nil, false},
		{"##editable\na: 1", []string{"line 1: ##editable marker on a line without a field"}, false},
		{"url: http://x ##editable", []string{`line 1: field name "url: http" contains a colon; quote values containing colons`}, true},
		{"a: 1 ##editable\nb: [", nil, true},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			errs := Lint(NewDocument(tc.src))
			n := len(tc.want)
			if tc.roundTripErr {
				n++
			}
			if got, want := len(errs), n; got != want {
				t.Fatalf("got: %d errors (%v), want: %d", got, errs, want)
			}
			for i := range tc.want {
				if got, want := errs[i].Error(), tc.want[i]; got != want {
					t.Errorf("got: %q, want: %q", got, want)
				}
			}
			if tc.roundTripErr {
				if got, want := errs[n-1].(LintError).Line, 0; got != want {
					t.Errorf("got: %d, want: %d", got, want)
				}
			}
		})
	}
}
