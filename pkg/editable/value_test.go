// SPDX-License-Identifier: BSD-2-Clause

package editable_test

import (
	"errors"
	"fmt"
	"testing"

	"kubesage.io/pkg/editable"
)

func TestCheckValue(t *testing.T) {
	testCases := []struct {
		v  string
		ok bool
	}{
		{"", true},
		{"enforce", true},
		{"a b\tc", true},
		{"5\n", false},
		{"5\r\n", false},
		{"a\rb", false},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			err := editable.CheckValue(tc.v)
			if got, want := err == nil, tc.ok; got != want {
				t.Fatalf("%q: got: %v, want ok: %v", tc.v, err, want)
			}
			if err != nil && !errors.Is(err, editable.ErrLineBreak) {
				t.Errorf("got: %v, want: %v", err, editable.ErrLineBreak)
			}
		})
	}
}
