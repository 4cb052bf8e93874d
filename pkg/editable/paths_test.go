// SPDX-License-Identifier: BSD-2-Clause

package editable_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"kubesage.io/pkg/editable"
)

func TestPaths(t *testing.T) {
	got, err := editable.Paths([]byte(policySrc))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"3_name":                    "/metadata/name",
		"5_replicas":                "/spec/replicas",
		"6_validationFailureAction": "/spec/validationFailureAction",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPathsMultiDoc(t *testing.T) {
	src := `a: 1
---
spec:
  containers:
  - name: app ##editable
    image: nginx ##editable
  labels:
    app/name: x ##editable
`
	got, err := editable.Paths([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"4_-_name":   "~(yamls)/1/spec/containers/0/name",
		"5_image":    "~(yamls)/1/spec/containers/0/image",
		"7_app/name": "~(yamls)/1/spec/labels/app~1name",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPathsInvalidYAML(t *testing.T) {
	if _, err := editable.Paths([]byte("a: [")); err == nil {
		t.Errorf("expecting error")
	}
}
