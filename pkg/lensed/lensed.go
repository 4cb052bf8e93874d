// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

/*
Package lensed performs in-place edits of values nested inside text documents.

Values are addressed with JSONPointers extended with lens selectors. A lens selector
"~(name)" switches the interpretation of the rest of the pointer to the named lens,
applied to the value selected so far. For example:

	/data/values.yaml/~(editable)/5_replicas

selects the "data" -> "values.yaml" field of a YAML document, then interprets that
string as a document with editable fields (see package editable) and selects the
field with key "5_replicas".

A pointer that doesn't start with a lens selector uses the default YAML lens.
*/
package lensed

import (
	"fmt"
	"strings"
)

var (
	// Default is the default map of lenses.
	Default = LensMap{
		"":         YAMLLens{},
		"yaml":     YAMLLens{},
		"yamls":    MultiYAMLLens{},
		"base64":   Base64Lens{},
		"editable": EditableLens{},
	}
)

// A Mapping is a request to replace the value pointed by pointer with a replacement string.
type Mapping struct {
	Pointer     string
	Replacement string
}

// A Setter is like a mapping but uses a Replacer to update the existing value pointed by the pointer.
type Setter struct {
	Pointer string
	Value   Replacer
}

// A Lens knows how to perform in-place edits of parts of a text.
// The parts are addressed using JSONPointer pointers.
// The new value is provided via a replacer which allows, among other things, to nest lenses.
type Lens interface {
	Apply(src []byte, m []Setter) ([]byte, error)
}

// A Replacer transforms a byte slice into another byte slice.
type Replacer interface {
	Transform(src []byte) ([]byte, error)
}

// ReplacerFunc adapts a function to the Replacer interface.
type ReplacerFunc func(src []byte) ([]byte, error)

// Transform implements the Replacer interface.
func (f ReplacerFunc) Transform(src []byte) ([]byte, error) { return f(src) }

// A LensMap is a collection of named lenses.
type LensMap map[string]Lens

// Apply applies mappings to src using the Default lens map.
func Apply(src []byte, m []Mapping) ([]byte, error) {
	return Default.Apply(src, m)
}

// Get returns the values pointed by ptrs using the Default lens map.
func Get(src []byte, ptrs []string) ([][]byte, error) {
	return Default.Get(src, ptrs)
}

// Apply applies a slice of mappings on a source byte slice, resolving lens names
// from the lens map. Mappings are applied in order.
func (lm LensMap) Apply(src []byte, m []Mapping) ([]byte, error) {
	for _, m := range m {
		var err error
		src, err = lm.apply(src, m.Pointer, leafReplacer(m.Replacement))
		if err != nil {
			return nil, err
		}
	}
	return src, nil
}

// Get returns the current value pointed by each pointer, in order.
func (lm LensMap) Get(src []byte, ptrs []string) ([][]byte, error) {
	res := make([][]byte, len(ptrs))
	for i, p := range ptrs {
		i := i
		capture := ReplacerFunc(func(old []byte) ([]byte, error) {
			res[i] = append([]byte(nil), old...)
			return old, nil
		})
		if _, err := lm.apply(src, p, capture); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (lm LensMap) apply(src []byte, ptr string, leaf Replacer) ([]byte, error) {
	type lensPointer struct {
		lens    Lens
		pointer string
	}

	var pairs []lensPointer
	rest := normalize(ptr)
	for rest != "" {
		lens, p, r, err := split(rest)
		if err != nil {
			return nil, err
		}
		l, ok := lm[lens]
		if !ok {
			return nil, fmt.Errorf("lens %q not defined", lens)
		}
		pairs = append(pairs, lensPointer{l, p})
		rest = r
	}

	value := leaf
	for i := len(pairs) - 1; i >= 0; i-- {
		value = appliedLens{pairs[i].lens, []Setter{{pairs[i].pointer, value}}}
	}
	return value.Transform(src)
}

// Replacer returns a Replacer implementation that applies mappings to its input.
func (lm LensMap) Replacer(ms []Mapping) AppliedLensMap {
	return AppliedLensMap{lm, ms}
}

// An AppliedLensMap is a Replacer that applies mappings to its inputs.
type AppliedLensMap struct {
	lm LensMap
	ms []Mapping
}

// Transform implements the Replacer interface.
func (a AppliedLensMap) Transform(src []byte) ([]byte, error) {
	return a.lm.Apply(src, a.ms)
}

// normalize normalizes pointer expressions so that they always start with a lens selector.
func normalize(ptr string) string {
	if ptr == "" {
		return "~()/"
	}
	if strings.HasPrefix(ptr, "/") {
		ptr = fmt.Sprintf("~()%s", ptr)
	}

	ptr = strings.TrimSuffix(ptr, "/")
	if s := strings.Split(ptr, "/"); strings.HasPrefix(s[len(s)-1], "~(") {
		ptr += "/"
	}
	return ptr
}

func isLens(s string) (string, bool) {
	if strings.HasPrefix(s, "~(") && strings.HasSuffix(s, ")") {
		return strings.TrimSuffix(strings.TrimPrefix(s, "~("), ")"), true
	}
	return s, false
}

// split chops the leading lens selector and its pointer off a normalized pointer expression.
func split(src string) (lens string, pointer string, rest string, err error) {
	c := strings.Split(src, "/")
	lens, ok := isLens(c[0])
	if !ok {
		return "", "", "", fmt.Errorf("%q doesn't start with a lens", src)
	}
	for i := 1; i < len(c); i++ {
		if _, ok := isLens(c[i]); ok {
			if pointer == "" {
				pointer = "/"
			}
			return lens, pointer, strings.Join(c[i:], "/"), nil
		}
		pointer += "/" + c[i]
	}
	if pointer == "" {
		pointer = "/"
	}
	return lens, pointer, "", nil
}

type appliedLens struct {
	lens    Lens
	setters []Setter
}

func (a appliedLens) Transform(src []byte) ([]byte, error) {
	return a.lens.Apply(src, a.setters)
}

type leafReplacer []byte

func (l leafReplacer) Transform([]byte) ([]byte, error) {
	return l, nil
}
