// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

// Context is passed to every command's Run method.
type Context struct {
	Log    *zap.Logger
	Stdout io.Writer
}

var cli struct {
	Config  kong.ConfigFlag `name:"config" help:"TOML file with default flag values."`
	Verbose bool            `name:"verbose" env:"KUBESAGE_VERBOSE" help:"Enable debug logging."`

	Fields FieldsCmd `cmd:"" help:"Show editable fields."`
	Set    SetCmd    `cmd:"" help:"Set editable field values."`
	Cat    CatCmd    `cmd:"" help:"Like set but always output to stdout."`
	Diff   DiffCmd   `cmd:"" help:"Show the fields whose value differs from an original document."`
	Lint   LintCmd   `cmd:"" help:"Check that editable field markers are well formed."`
	Policy PolicyCmd `cmd:"" help:"Browse and apply policies published by the policy service."`

	Version kong.VersionFlag `name:"version" help:"Print version information and quit"`
}

// CommonFlags select the documents a command works on.
type CommonFlags struct {
	Filenames []string `name:"filename" short:"f" help:"Files, directories or URLs containing YAML documents with editable fields. Defaults to stdin."`
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("kubesage"),
		kong.Description("Edit and apply KubeSage policies with ##editable fields."),
		kong.UsageOnError(),
		kong.Configuration(tomlConfig, "~/.kubesage.toml"),
		kong.Vars{
			"version": version,
		},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)

	log, err := newLogger(cli.Verbose)
	ctx.FatalIfErrorf(err)
	defer log.Sync()

	err = ctx.Run(&Context{Log: log, Stdout: os.Stdout})
	ctx.FatalIfErrorf(err)
}
