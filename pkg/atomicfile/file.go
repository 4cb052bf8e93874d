// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package atomicfile rewrites files so that readers see either the old or the new content.
package atomicfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/transform"
)

// Writer returns a io.WriteCloser that writes data to a temporary file
// which gets renamed atomically as filename upon Commit.
// If filename exists, its permissions are preserved and perm is ignored.
func Writer(filename string, perm os.FileMode) (*AtomicWriter, error) {
	out, err := os.CreateTemp(filepath.Dir(filename), ".*~")
	if err != nil {
		return nil, err
	}
	if st, err := os.Stat(filename); err != nil {
		if !os.IsNotExist(err) {
			out.Close()
			os.Remove(out.Name())
			return nil, err
		}
	} else {
		perm = st.Mode()
	}
	if err := os.Chmod(out.Name(), perm); err != nil {
		out.Close()
		os.Remove(out.Name())
		return nil, err
	}

	return &AtomicWriter{out, filename}, nil
}

// An AtomicWriter is a temporary file that replaces its target on Commit.
type AtomicWriter struct {
	*os.File
	filename string
}

// Close discards the temporary file if it hasn't been committed.
func (a *AtomicWriter) Close() error {
	defer os.RemoveAll(a.Name())
	return a.File.Close()
}

// Commit renames the temporary file over the target file.
func (a *AtomicWriter) Commit() error {
	if err := a.File.Close(); err != nil {
		os.RemoveAll(a.Name())
		return err
	}
	return os.Rename(a.Name(), a.filename)
}

// WriteFrom atomically replaces filename with the content of r.
func WriteFrom(filename string, r io.Reader, perm os.FileMode) error {
	w, err := Writer(filename, perm)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := io.Copy(w, r); err != nil {
		return err
	}
	return w.Commit()
}

// WriteFile is a drop-in replacement for os.WriteFile that writes the file atomically.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	return WriteFrom(filename, bytes.NewReader(data), perm)
}

// Transform reads the content of an existing file, passes it through a transformer and writes it back atomically.
// The whole content is passed to the transformer at once.
func Transform(t transform.Transformer, filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	out, _, err := transform.Bytes(t, b)
	if err != nil {
		return err
	}
	return WriteFile(filename, out, 0)
}
