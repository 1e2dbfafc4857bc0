package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/defines"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/envfile"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/project"
)

// firmwareDefaults mirrors the fallback values compiled into secrets.h.
var firmwareDefaults = map[string]string{
	defines.AppEUI: "{ 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00 }",
	defines.DevEUI: "{ 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07 }",
	defines.AppKey: "{ 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F }",
}

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter .env file",
		Long: `Create a .env file at the project root (the nearest directory containing
platformio.ini) pre-filled with the firmware default credentials.

Examples:
  secretdefs init            # Write ./.env or <project root>/.env
  secretdefs init --force    # Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func runInit(cmd *cobra.Command, opts *options, force bool) error {
	path := opts.cfg.EnvFile
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		root, err := project.FindRoot(cwd)
		if err != nil {
			return fmt.Errorf("could not find project root: %w", err)
		}
		path = filepath.Join(root, path)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := envfile.Template(firmwareDefaults)
	if err != nil {
		return fmt.Errorf("failed to render env file: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Replace the default values with the credentials from your network server."))
	return nil
}
