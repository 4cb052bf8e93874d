// SPDX-License-Identifier: BSD-2-Clause

package policy

import (
	"errors"
	"fmt"

	"kubesage.io/pkg/editable"
)

// ErrUnknownField is returned when setting a field the policy doesn't mark as editable.
var ErrUnknownField = errors.New("unknown editable field")

// A Session holds the state of one policy edit: the policy as published and the
// current value of its editable fields. Sessions are not safe for concurrent use.
type Session struct {
	Policy Policy

	orig   editable.Document
	fields editable.Fields
}

// NewSession opens an edit session on p.
func NewSession(p Policy) *Session {
	doc := editable.NewDocument(p.YAMLContent)
	return &Session{Policy: p, orig: doc, fields: editable.Extract(doc)}
}

// Fields returns the editable fields of the policy with their original values, in line order.
func (s *Session) Fields() []editable.Field {
	return editable.ExtractFields(s.orig)
}

// Values returns a copy of the current field values.
func (s *Session) Values() editable.Fields {
	return s.fields.Clone()
}

// Set changes the value of the field with the given key.
func (s *Session) Set(key, value string) error {
	if _, ok := s.fields[key]; !ok {
		return fmt.Errorf("policy %q: %q: %w", s.Policy.ID, key, ErrUnknownField)
	}
	if err := editable.CheckValue(value); err != nil {
		return fmt.Errorf("policy %q: %q: %w", s.Policy.ID, key, err)
	}
	s.fields[key] = value
	return nil
}

// Edited reports whether any field value differs from the published policy.
func (s *Session) Edited() bool {
	return editable.Changed(s.orig, s.fields)
}

// YAML returns the policy content with the current field values.
func (s *Session) YAML() string {
	return editable.Reconstruct(s.orig, s.fields).String()
}

// Request returns the request that applies the session's policy to a cluster.
func (s *Session) Request(cluster string) ApplyRequest {
	return NewApplyRequest(s.orig, cluster, s.fields)
}

// NewApplyRequest builds an apply request for the policy whose published content is orig.
// The reconstructed YAML is attached only if fields differ from orig.
func NewApplyRequest(orig editable.Document, cluster string, fields editable.Fields) ApplyRequest {
	req := ApplyRequest{ClusterName: cluster}
	if editable.Changed(orig, fields) {
		req.EditedYAML = editable.Reconstruct(orig, fields).String()
	}
	return req
}
