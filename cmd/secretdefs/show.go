package main

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/defines"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/environ"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/validation"
)

func newShowCmd(opts *options) *cobra.Command {
	var reveal, all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show where each credential comes from",
		Long: `Show APP_EUI, DEV_EUI and APP_KEY with their source (environment, .env
file or not set). Values are masked unless --reveal is given. With --all,
every other variable defined in the .env file is listed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, opts, reveal, all)
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print values in clear text")
	cmd.Flags().BoolVar(&all, "all", false, "Also list variables from the .env file that are not forwarded")

	return cmd
}

func runShow(cmd *cobra.Command, opts *options, reveal, all bool) error {
	env, err := opts.environment()
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("NAME", "SOURCE", "VALUE")

	for _, name := range defines.AllowList {
		t.Row(name, sourceLabel(env, name, opts.cfg.EnvFile), displayValue(env, name, reveal))
	}

	if all {
		for _, key := range fileOnlyKeys(env) {
			t.Row(key, opts.cfg.EnvFile, maskValue(env.Get(key), reveal))
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

func sourceLabel(env *environ.Env, name, envFile string) string {
	src, ok := env.SourceOf(name)
	switch {
	case !ok:
		return "not set (firmware default)"
	case src == environ.SourceFile:
		return envFile
	default:
		return "environment"
	}
}

// fileOnlyKeys returns the sorted keys taken from the env file that are not
// allow-listed.
func fileOnlyKeys(env *environ.Env) []string {
	var keys []string
	for _, key := range env.Keys() {
		if src, _ := env.SourceOf(key); src != environ.SourceFile || slices.Contains(defines.AllowList, key) {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func displayValue(env *environ.Env, name string, reveal bool) string {
	value, ok := env.Lookup(name)
	if !ok {
		return "-"
	}
	return maskValue(value, reveal)
}

func maskValue(value string, reveal bool) string {
	switch {
	case reveal:
		return value
	case value == "":
		return `""`
	}

	if b, err := validation.ParseByteList(value); err == nil {
		return fmt.Sprintf("<%d bytes hidden>", len(b))
	}
	return "<hidden>"
}
