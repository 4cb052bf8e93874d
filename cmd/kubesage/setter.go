// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mkmik/multierror"
	"gopkg.in/yaml.v3"
	"kubesage.io/pkg/lensed"
)

// A Setter is a field=value command line argument.
type Setter struct {
	Field string
	Value string
}

// UnmarshalText implements encoding.TextUnmarshaler, which kong uses to parse arguments.
// A single trailing newline is dropped from @file values.
func (s *Setter) UnmarshalText(in []byte) error {
	c := strings.SplitN(string(in), "=", 2)
	if len(c) != 2 {
		return fmt.Errorf("bad value format %q, missing '='", in)
	}
	s.Field, s.Value = c[0], c[1]
	if s.Field == "" {
		return fmt.Errorf("bad value format %q, missing field", in)
	}

	if strings.HasPrefix(s.Value, "@") {
		b, err := os.ReadFile(strings.TrimPrefix(s.Value, "@"))
		if err != nil {
			return err
		}
		s.Value = strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
	} else if strings.HasPrefix(s.Value, `\@`) {
		s.Value = strings.TrimPrefix(s.Value, `\`)
	}

	return nil
}

// Pointer returns the lens pointer the setter refers to.
// Plain field keys are addressed through the editable lens.
func (s Setter) Pointer() string {
	if strings.HasPrefix(s.Field, "/") || strings.HasPrefix(s.Field, "~(") {
		return s.Field
	}
	return lensed.EditablePointer(s.Field)
}

func mappings(setters []Setter) []lensed.Mapping {
	res := make([]lensed.Mapping, len(setters))
	for i, s := range setters {
		res[i] = lensed.Mapping{Pointer: s.Pointer(), Replacement: s.Value}
	}
	return res
}

// settersFromFiles reads field values from YAML files mapping field keys to values.
// Later files override earlier ones.
func settersFromFiles(paths []string) ([]Setter, error) {
	var (
		errs []error
		all  = map[string]string{}
	)
	for _, path := range paths {
		values, err := parseValues(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for k, v := range values {
			all[k] = v
		}
	}
	if errs != nil {
		return nil, multierror.Join(errs)
	}

	res := make([]Setter, 0, len(all))
	for k, v := range all {
		res = append(res, Setter{k, v})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Field < res[j].Field })
	return res, nil
}

func parseValues(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]string
	if err := yaml.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}
