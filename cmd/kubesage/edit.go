// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"errors"
	"fmt"

	"github.com/mkmik/multierror"
	yptr "github.com/vmware-labs/yaml-jsonpointer"
	"go.uber.org/zap"
	"kubesage.io/pkg/atomicfile"
	"kubesage.io/pkg/editable"
	"kubesage.io/pkg/lensed"
)

type FieldsCmd struct {
	CommonFlags

	NamesOnly bool   `short:"k" help:"Print only field keys and not their values."`
	Paths     bool   `name:"paths" help:"Print the YAML path of each field along with its value."`
	Field     string `arg:"" optional:"" help:"Print the value of one specific field."`
}

func (c *FieldsCmd) Run(ctx *Context) error {
	sources, err := openSources(c.Filenames)
	if err != nil {
		return err
	}

	if c.Field != "" {
		for _, s := range sources {
			if v, ok := editable.Extract(editable.NewDocument(string(s.buf)))[c.Field]; ok {
				fmt.Fprintln(ctx.Stdout, v)
				return nil
			}
		}
		return fmt.Errorf("%q: %w", c.Field, lensed.ErrFieldNotFound)
	}

	if c.NamesOnly {
		for _, s := range sources {
			for _, f := range editable.ExtractFields(editable.NewDocument(string(s.buf))) {
				fmt.Fprintln(ctx.Stdout, f.Key)
			}
		}
		return nil
	}

	var docs []namedFields
	for _, s := range sources {
		nf := namedFields{name: s.name, fields: editable.ExtractFields(editable.NewDocument(string(s.buf)))}
		if c.Paths {
			if nf.paths, err = editable.Paths(s.buf); err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
		}
		docs = append(docs, nf)
	}
	return encodeYAML(ctx.Stdout, fieldsNode(docs))
}

type SetCmd struct {
	CommonFlags

	Values []Setter `arg:"" optional:"" help:"Value to set. Format: field=value or field=@filename, where a leading @ can be escaped with a backslash. The field is either a field key (see 'fields -k') or a lens pointer such as /data/policy.yaml/~(editable)/3_replicas."`
	From   []string `name:"from" type:"existingfile" help:"Read values from one or more YAML files mapping field keys to values."`
	Stdout bool     `name:"stdout" help:"Output to stdout and never update files in-place."`
}

func (c *SetCmd) Run(ctx *Context) error {
	values := c.Values
	if len(c.From) > 0 {
		fromValues, err := settersFromFiles(c.From)
		if err != nil {
			return err
		}
		values = append(fromValues, values...)
	}
	if len(values) == 0 {
		return errors.New("no values to set")
	}

	sources, err := openSources(c.Filenames)
	if err != nil {
		return err
	}

	ms := mappings(values)
	used := make([]bool, len(ms))

	var errs []error
	for _, s := range sources {
		var applicable []lensed.Mapping
		for i, m := range ms {
			ok, err := resolves(s.buf, m.Pointer)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			} else if ok {
				applicable = append(applicable, m)
				used[i] = true
			}
		}
		if len(applicable) == 0 {
			continue
		}
		ctx.Log.Debug("editing", zap.String("source", s.name), zap.Int("values", len(applicable)))

		if s.writable() && !c.Stdout {
			t := lensed.NewTransformer(lensed.Default.Replacer(applicable))
			if err := atomicfile.Transform(t, s.path); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			}
			continue
		}
		b, err := lensed.Default.Apply(s.buf, applicable)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		s.buf, s.path = b, ""
		if err := s.commit(ctx.Stdout); err != nil {
			errs = append(errs, err)
		}
	}

	for i, ok := range used {
		if !ok {
			errs = append(errs, fmt.Errorf("%q: %w", values[i].Field, lensed.ErrFieldNotFound))
		}
	}
	if errs != nil {
		return multierror.Join(errs)
	}
	return nil
}

// resolves reports whether ptr addresses an existing value in src.
func resolves(src []byte, ptr string) (bool, error) {
	_, err := lensed.Get(src, []string{ptr})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, lensed.ErrFieldNotFound), errors.Is(err, yptr.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

type CatCmd struct {
	SetCmd
}

func (c *CatCmd) Run(ctx *Context) error {
	c.Stdout = true
	return c.SetCmd.Run(ctx)
}

type DiffCmd struct {
	CommonFlags

	Original string `name:"original" required:"" help:"Document to compare against (file, URL or - for stdin)."`
}

func (c *DiffCmd) Run(ctx *Context) error {
	orig, err := openSources([]string{c.Original})
	if err != nil {
		return err
	}
	if len(orig) != 1 {
		return fmt.Errorf("--original must reference exactly one document, found %d", len(orig))
	}
	current, err := openSources(c.Filenames)
	if err != nil {
		return err
	}
	if len(current) != 1 {
		return fmt.Errorf("diff works on exactly one document, found %d", len(current))
	}

	fields := editable.Extract(editable.NewDocument(string(current[0].buf)))
	keys := editable.ChangedKeys(editable.NewDocument(string(orig[0].buf)), fields)
	ctx.Log.Debug("diff", zap.Int("fields", len(fields)), zap.Int("changed", len(keys)))

	return encodeYAML(ctx.Stdout, changedNode(keys, fields))
}

type LintCmd struct {
	CommonFlags
}

func (c *LintCmd) Run(ctx *Context) error {
	sources, err := openSources(c.Filenames)
	if err != nil {
		return err
	}

	var errs []error
	for _, s := range sources {
		for _, err := range editable.Lint(editable.NewDocument(string(s.buf))) {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	if errs != nil {
		return multierror.Join(errs)
	}
	return nil
}
