// SPDX-License-Identifier: BSD-2-Clause

package editable

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	yptr "github.com/vmware-labs/yaml-jsonpointer"
	"gopkg.in/yaml.v3"
)

// Paths returns the JSON pointer of the YAML node each editable field of src sits on.
//
// When src is a multi-document stream, pointers are prefixed with the yamls lens and
// the document index (e.g. "~(yamls)/1/spec/replicas"), which is the syntax understood
// by the lensed package. Fields whose line doesn't hold a mapping entry are omitted.
func Paths(src []byte) (map[string]string, error) {
	docs, err := decodeAll(src)
	if err != nil {
		return nil, err
	}

	entries := map[int][]entry{}
	for i, d := range docs {
		walk(d, nil, func(e entry) {
			e.doc = i
			entries[e.line] = append(entries[e.line], e)
		})
	}

	res := map[string]string{}
	for _, f := range ExtractFields(NewDocument(string(src))) {
		e, ok := pick(entries[f.Line+1], f.Name)
		if !ok {
			continue
		}
		ptr := encodePointer(e.path)
		n, err := yptr.Find(docs[e.doc], ptr)
		if err != nil || n.Line != e.line {
			continue
		}
		if len(docs) > 1 {
			ptr = fmt.Sprintf("~(yamls)/%d%s", e.doc, ptr)
		}
		res[f.Key] = ptr
	}
	return res, nil
}

type entry struct {
	doc  int
	line int
	key  string
	path []string
}

func decodeAll(src []byte) ([]*yaml.Node, error) {
	var res []*yaml.Node
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

// walk calls fn for every mapping entry whose value is a scalar.
func walk(n *yaml.Node, path []string, fn func(entry)) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			walk(c, path, fn)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			p := append(append([]string(nil), path...), k.Value)
			if v.Kind == yaml.ScalarNode {
				fn(entry{line: v.Line, key: k.Value, path: p})
			} else {
				walk(v, p, fn)
			}
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			walk(c, append(append([]string(nil), path...), strconv.Itoa(i)), fn)
		}
	}
}

// pick chooses the entry a field refers to when a line holds more than one.
func pick(es []entry, name string) (entry, bool) {
	if len(es) == 0 {
		return entry{}, false
	}
	name = strings.TrimSpace(strings.TrimPrefix(name, "-"))
	for _, e := range es {
		if e.key == name {
			return e, true
		}
	}
	return es[0], true
}

func encodePointer(path []string) string {
	var b strings.Builder
	for _, p := range path {
		b.WriteString("/")
		b.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(p))
	}
	return b.String()
}
