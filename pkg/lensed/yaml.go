// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lensed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	yamled "github.com/vmware-labs/go-yaml-edit"
	"github.com/vmware-labs/go-yaml-edit/splice"
	yptr "github.com/vmware-labs/yaml-jsonpointer"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// YAMLLens implements the "yaml" lens.
// The pointer is a JSONPointer (with the yptr ~{...} and ~[k=v] array extensions)
// into a single YAML document.
type YAMLLens struct{}

// Apply implements the Lens interface.
func (YAMLLens) Apply(src []byte, vals []Setter) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, err
	}
	return editNodes(src, vals, func(ptr string) (*yaml.Node, string, error) {
		return &root, ptr, nil
	})
}

// MultiYAMLLens implements the "yamls" lens.
// The first pointer component selects a document in a multi-document YAML stream,
// the rest is a pointer into that document.
type MultiYAMLLens struct{}

// Apply implements the Lens interface.
func (MultiYAMLLens) Apply(src []byte, vals []Setter) ([]byte, error) {
	docs, err := parseAllYAMLDocs(src)
	if err != nil {
		return nil, err
	}
	return editNodes(src, vals, func(ptr string) (*yaml.Node, string, error) {
		head, tail, err := chompJSONPointer(ptr)
		if err != nil {
			return nil, "", err
		}
		n, err := strconv.Atoi(head)
		if err != nil {
			return nil, "", err
		}
		if n < 0 || n >= len(docs) {
			return nil, "", fmt.Errorf("document %d out of range, stream has %d documents", n, len(docs))
		}
		return docs[n], tail, nil
	})
}

// editNodes resolves each setter to a scalar node and splices the replaced value back into src.
// The resolve callback maps a lens pointer to the root node and the pointer within it.
func editNodes(src []byte, vals []Setter, resolve func(ptr string) (*yaml.Node, string, error)) ([]byte, error) {
	var ops []splice.Op
	for _, v := range vals {
		root, ptr, err := resolve(v.Pointer)
		if err != nil {
			return nil, err
		}
		f, err := yptr.Find(root, ptr)
		if err != nil {
			return nil, err
		}
		if f.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%q: only scalar values can be edited", v.Pointer)
		}

		b, err := v.Value.Transform([]byte(f.Value))
		if err != nil {
			return nil, err
		}
		ops = append(ops, yamled.Node(f).With(string(b)))
	}

	b, _, err := transform.Bytes(yamled.T(ops...), src)
	return b, err
}

func parseAllYAMLDocs(src []byte) (res []*yaml.Node, err error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	for {
		var n yaml.Node
		if err := dec.Decode(&n); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		res = append(res, &n)
	}
	return res, nil
}

// chompJSONPointer splits a JSONPointer into the first component and the tail.
// The tail is a valid JSONPointer (i.e. it retains the leading /).
// If ptr contains only one component, an empty tail is returned.
func chompJSONPointer(ptr string) (head, tail string, err error) {
	if !strings.HasPrefix(ptr, "/") {
		return "", "", fmt.Errorf("%q not valid JSONPointer: doesn't start with '/'", ptr)
	}
	c := strings.SplitN(ptr, "/", 3)
	if len(c) == 2 {
		return c[1], "", nil
	}
	return c[1], "/" + c[2], nil
}
