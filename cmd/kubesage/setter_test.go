// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetterUnmarshal(t *testing.T) {
	dir := t.TempDir()
	vf := filepath.Join(dir, "v.txt")
	if err := os.WriteFile(vf, []byte("from file"), 0644); err != nil {
		t.Fatal(err)
	}
	nl := filepath.Join(dir, "nl.txt")
	if err := os.WriteFile(nl, []byte("enforce\n"), 0644); err != nil {
		t.Fatal(err)
	}
	crlf := filepath.Join(dir, "crlf.txt")
	if err := os.WriteFile(crlf, []byte("enforce\r\n"), 0644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		in   string
		want Setter
	}{
		{"5_replicas=3", Setter{"5_replicas", "3"}},
		{"5_replicas=", Setter{"5_replicas", ""}},
		{"3_url=http://x?a=b", Setter{"3_url", "http://x?a=b"}},
		{`3_handle=\@kubesage`, Setter{"3_handle", "@kubesage"}},
		{"3_notes=@" + vf, Setter{"3_notes", "from file"}},
		{"3_mode=@" + nl, Setter{"3_mode", "enforce"}},
		{"3_mode=@" + crlf, Setter{"3_mode", "enforce"}},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			var got Setter
			if err := got.UnmarshalText([]byte(tc.in)); err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got: %#v, want: %#v", got, tc.want)
			}
		})
	}
}

func TestSetterUnmarshalErrors(t *testing.T) {
	for _, in := range []string{"noequals", "=value", "3_notes=@/does/not/exist"} {
		t.Run(in, func(t *testing.T) {
			var s Setter
			if err := s.UnmarshalText([]byte(in)); err == nil {
				t.Errorf("expecting error for %q", in)
			}
		})
	}
}

func TestSetterPointer(t *testing.T) {
	testCases := []struct {
		field string
		ptr   string
	}{
		{"5_replicas", "~(editable)/5_replicas"},
		{"5_a/b", "~(editable)/5_a~1b"},
		{"/spec/replicas", "/spec/replicas"},
		{"~(yamls)/1/spec/replicas", "~(yamls)/1/spec/replicas"},
	}
	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			if got, want := (Setter{Field: tc.field}).Pointer(), tc.ptr; got != want {
				t.Errorf("got: %q, want: %q", got, want)
			}
		})
	}
}

func TestSettersFromFiles(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "a.yaml")
	f2 := filepath.Join(dir, "b.yaml")
	if err := os.WriteFile(f1, []byte("5_replicas: \"1\"\n2_mode: audit\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(f2, []byte("2_mode: enforce\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := settersFromFiles([]string{f1, f2})
	if err != nil {
		t.Fatal(err)
	}
	want := []Setter{{"2_mode", "enforce"}, {"5_replicas", "1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected setters (-want +got):\n%s", diff)
	}
}

func TestSettersFromFilesBad(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(f, []byte("- a\n- b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := settersFromFiles([]string{f}); err == nil {
		t.Fatal("expecting error")
	}
}
