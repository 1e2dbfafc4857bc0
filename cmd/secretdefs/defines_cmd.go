package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/defines"
)

func newDefinesCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defines",
		Short: "Print preprocessor definitions for the build",
		Long: `Load the .env file, merge it with the environment and print APP_EUI,
DEV_EUI and APP_KEY as preprocessor definitions, in that order. Variables
that are not set anywhere are left out.

Formats: flags (default, -DNAME=VALUE), json, yaml, header.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = opts.cfg.Format
			}
			return runDefines(cmd, opts, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (flags, json, yaml, header)")

	return cmd
}

// runDefines renders the collected definitions to stdout. Nothing is
// written when loading fails.
func runDefines(cmd *cobra.Command, opts *options, name string) error {
	format, err := defines.ParseFormat(name)
	if err != nil {
		return err
	}

	defs, err := collect(opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := defines.Render(&buf, format, defs); err != nil {
		return fmt.Errorf("failed to render definitions: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

func collect(opts *options) ([]defines.Define, error) {
	env, err := opts.environment()
	if err != nil {
		return nil, err
	}

	defs := defines.Collect(env)
	slog.Info("collected definitions", "count", len(defs), "env_file", opts.cfg.EnvFile)
	return defs, nil
}

func newHeaderCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "header",
		Short: "Write definitions to a C header",
		Long: `Write APP_EUI, DEV_EUI and APP_KEY as #define lines to a generated C header.

The file is only rewritten when its content changes, so an unchanged header
does not trigger a rebuild.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = opts.cfg.Header
			}
			return runHeader(cmd, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Header path (defaults to include/secrets_gen.h)")

	return cmd
}

func runHeader(cmd *cobra.Command, opts *options, path string) error {
	defs, err := collect(opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := defines.Render(&buf, defines.FormatHeader, defs); err != nil {
		return fmt.Errorf("failed to render header: %w", err)
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, buf.Bytes()) {
		slog.Debug("header unchanged", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Up to date: %s\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create header directory: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s (%d definitions)\n", path, len(defs))
	return nil
}
