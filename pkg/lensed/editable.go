// SPDX-License-Identifier: BSD-2-Clause

package lensed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"kubesage.io/pkg/editable"
)

// ErrFieldNotFound is returned when a pointer refers to an editable field key
// that doesn't exist in the document.
var ErrFieldNotFound = errors.New("editable field not found")

// EditableLens implements the "editable" lens.
// The pointer has a single component, the field key (see editable.Key).
// Only the lines of the edited fields are rewritten.
type EditableLens struct{}

// Apply implements the Lens interface.
func (EditableLens) Apply(src []byte, vals []Setter) ([]byte, error) {
	doc := editable.NewDocument(string(src))
	fields := editable.Extract(doc)

	edits := editable.Fields{}
	for _, v := range vals {
		p, err := jsonpointer.New(v.Pointer)
		if err != nil {
			return nil, err
		}
		path := p.DecodedTokens()
		if got, want := len(path), 1; got != want {
			return nil, fmt.Errorf("unexpected path len. got: %d, want: %d", got, want)
		}
		key := path[0]

		old, ok := edits[key]
		if !ok {
			if old, ok = fields[key]; !ok {
				return nil, fmt.Errorf("%q: %w", key, ErrFieldNotFound)
			}
		}
		b, err := v.Value.Transform([]byte(old))
		if err != nil {
			return nil, err
		}
		if err := editable.CheckValue(string(b)); err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		edits[key] = string(b)
	}

	return []byte(editable.Reconstruct(doc, edits).String()), nil
}

// EditablePointer returns the lens pointer addressing the editable field with the given key.
func EditablePointer(key string) string {
	return "~(editable)/" + strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}
