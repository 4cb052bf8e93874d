// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLineBreak is returned for values that would split a field's line in two.
var ErrLineBreak = errors.New("value contains a line break")

// CheckValue reports whether v can be written back by Reconstruct without
// shifting the lines below it, which would invalidate their keys.
func CheckValue(v string) error {
	if strings.ContainsAny(v, "\r\n") {
		return fmt.Errorf("%q: %w", v, ErrLineBreak)
	}
	return nil
}
