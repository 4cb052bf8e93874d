// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Key renders the field map key for the field called name on the given line.
func Key(line int, name string) string {
	return fmt.Sprintf("%d_%s", line, whitespace.ReplaceAllString(name, "_"))
}

// ParseKey returns the line index encoded in a key produced by Key.
func ParseKey(key string) (int, error) {
	head, _, ok := strings.Cut(key, "_")
	if !ok {
		return 0, fmt.Errorf("malformed field key %q", key)
	}
	i, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("malformed field key %q: %w", key, err)
	}
	if i < 0 {
		return 0, fmt.Errorf("malformed field key %q: negative line", key)
	}
	return i, nil
}
