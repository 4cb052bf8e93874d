// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-getter"
	"github.com/mattn/go-isatty"
	"github.com/mkmik/multierror"
	"kubesage.io/pkg/atomicfile"
)

const stdio = "-"

// A source is a YAML document read from a file, stdin or a remote URL.
type source struct {
	// name is what the user called it, used in messages.
	name string
	// path is the local file edits are written back to. Empty for stdin and remote sources,
	// whose edits go to stdout.
	path string
	buf  []byte
}

func (s *source) writable() bool { return s.path != "" }

// commit writes buf back to the source file atomically, or to w if the source is not writable.
func (s *source) commit(w io.Writer) error {
	if !s.writable() {
		_, err := w.Write(s.buf)
		return err
	}
	return atomicfile.WriteFile(s.path, s.buf, 0)
}

// openSources reads all the documents referenced by paths (see expandPaths).
// No paths means stdin.
func openSources(paths []string) ([]*source, error) {
	if len(paths) == 0 {
		paths = []string{stdio}
	}
	filenames, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(filenames) == 0 {
		return nil, fmt.Errorf("cannot find any manifest in %q", paths)
	}

	var (
		res  []*source
		errs []error
	)
	for _, f := range filenames {
		if s, err := openSource(f); err != nil {
			errs = append(errs, err)
		} else {
			res = append(res, s)
		}
	}
	if errs != nil {
		return nil, multierror.Join(errs)
	}
	return res, nil
}

func openSource(name string) (*source, error) {
	switch {
	case name == stdio:
		b, err := slurpStdin()
		if err != nil {
			return nil, err
		}
		return &source{name: name, buf: b}, nil
	case isRemote(name):
		b, err := fetch(name)
		if err != nil {
			return nil, err
		}
		return &source{name: name, buf: b}, nil
	default:
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return &source{name: name, path: name, buf: b}, nil
	}
}

func slurpStdin() ([]byte, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintf(os.Stderr, "(reading manifests from standard input; hit ctrl-c if this is not what you wanted)\n")
	}
	return io.ReadAll(os.Stdin)
}

// isRemote returns true for go-getter source strings such as https://..., git::..., s3::...
func isRemote(p string) bool {
	return strings.Contains(p, "://") || strings.Contains(p, "::")
}

// fetch downloads a remote document with go-getter.
func fetch(src string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "kubesage")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	dst := filepath.Join(dir, "doc.yaml")
	opt := func(c *getter.Client) (err error) {
		c.Pwd, err = os.Getwd()
		return
	}
	if err := getter.GetFile(dst, src, opt); err != nil {
		return nil, fmt.Errorf("fetching %q: %w", src, err)
	}
	return os.ReadFile(dst)
}

// expandPaths expands globs and directories into file names.
// Directories are scanned (non-recursively) for *.yaml and *.yml files.
// stdin ("-") and remote sources are passed through.
func expandPaths(paths []string) ([]string, error) {
	var (
		res  []string
		errs []error
	)
	for _, p := range paths {
		if p == stdio || isRemote(p) {
			res = append(res, p)
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if matches == nil {
			errs = append(errs, fmt.Errorf("%q: %w", p, os.ErrNotExist))
			continue
		}
		for _, m := range matches {
			st, err := os.Stat(m)
			if err != nil {
				errs = append(errs, err)
			} else if st.IsDir() {
				fs, err := manifestsInDir(m)
				if err != nil {
					errs = append(errs, err)
				}
				res = append(res, fs...)
			} else {
				res = append(res, m)
			}
		}
	}
	if errs != nil {
		return nil, multierror.Join(errs)
	}
	return res, nil
}

func manifestsInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var res []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, err := matchExts(e.Name(), "yaml", "yml"); err != nil {
			return nil, err
		} else if ok {
			res = append(res, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(res)
	return res, nil
}

func matchExts(filename string, exts ...string) (bool, error) {
	for _, e := range exts {
		if ok, err := filepath.Match(fmt.Sprintf("*.%s", e), filename); err != nil {
			return false, err
		} else if ok {
			return true, nil
		}
	}
	return false, nil
}
