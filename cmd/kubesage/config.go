// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml"
)

// tomlConfig is a kong.ConfigurationLoader for TOML files whose top level keys
// are flag names, e.g.:
//
//	policy-url = "https://kubesage.example.com/api/v1"
//	timeout = "10s"
//
// Underscores can be used instead of dashes.
func tomlConfig(r io.Reader) (kong.Resolver, error) {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return nil, err
	}
	return kong.ResolverFunc(func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
		for _, k := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if !tree.Has(k) {
				continue
			}
			v := tree.Get(k)
			if _, ok := v.(*toml.Tree); ok {
				continue
			}
			return v, nil
		}
		return nil, nil
	}), nil
}
