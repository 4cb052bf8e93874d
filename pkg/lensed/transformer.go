// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lensed

import (
	"golang.org/x/text/transform"
)

// NewTransformer returns a transform.Transformer implementation for a given replacer.
//
// The replacer needs the whole input, so the transformer only makes progress when
// called with atEOF set. Use it with transform.Bytes or transform.String, which
// pass the whole input at once.
func NewTransformer(r Replacer) *ReplacerTransformer {
	return &ReplacerTransformer{r: r}
}

// A ReplacerTransformer is a transform.Transformer that applies a Replacer.
type ReplacerTransformer struct {
	r Replacer
	b []byte
}

// Reset implements the golang.org/x/text/transform.Transformer interface.
func (t *ReplacerTransformer) Reset() {
	t.b = nil
}

// Transform implements the golang.org/x/text/transform.Transformer interface.
func (t *ReplacerTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if !atEOF {
		return 0, 0, transform.ErrShortSrc
	}
	if t.b == nil {
		b, err := t.r.Transform(src)
		if err != nil {
			return 0, 0, err
		}
		if b == nil {
			b = []byte{}
		}
		t.b = b
	}
	if len(dst) < len(t.b) {
		return 0, 0, transform.ErrShortDst
	}
	return copy(dst, t.b), len(src), nil
}
