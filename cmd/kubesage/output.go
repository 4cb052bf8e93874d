// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"io"

	"gopkg.in/yaml.v3"
	"kubesage.io/pkg/editable"
)

// namedFields are the fields extracted from one source.
type namedFields struct {
	name   string
	fields []editable.Field
	// paths is optional, keyed by field key.
	paths map[string]string
}

func encodeYAML(w io.Writer, n *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Close()
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendPair(m *yaml.Node, k string, v *yaml.Node) {
	m.Content = append(m.Content, str(k), v)
}

// fieldsNode renders fields in document order. When there's more than one
// document the fields are grouped by source name.
func fieldsNode(docs []namedFields) *yaml.Node {
	render := func(d namedFields) *yaml.Node {
		m := mapping()
		for _, f := range d.fields {
			if d.paths == nil {
				appendPair(m, f.Key, str(f.Value))
				continue
			}
			e := mapping()
			appendPair(e, "value", str(f.Value))
			if p, ok := d.paths[f.Key]; ok {
				appendPair(e, "path", str(p))
			}
			appendPair(m, f.Key, e)
		}
		return m
	}

	if len(docs) == 1 {
		return render(docs[0])
	}
	root := mapping()
	for _, d := range docs {
		appendPair(root, d.name, render(d))
	}
	return root
}

// changedNode renders the current value of each changed key, in key order.
func changedNode(keys []string, fields editable.Fields) *yaml.Node {
	m := mapping()
	for _, k := range keys {
		appendPair(m, k, str(fields[k]))
	}
	return m
}
