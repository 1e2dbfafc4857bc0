package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/validation"
)

func newValidateCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate LoRaWAN credentials",
		Long: `Validate the .env file and the APP_EUI, DEV_EUI and APP_KEY values it
resolves to. EUIs must be 8-byte and keys 16-byte C initialisers such as
{ 0x00, 0x01, ... }. Missing values are reported as warnings because the
firmware falls back to its compiled-in defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print issues as JSON")

	return cmd
}

// runValidate prints all issues and fails if any of them is an error.
func runValidate(cmd *cobra.Command, opts *options, asJSON bool) error {
	validator := validation.NewValidator(opts.cfg.EnvFile)
	result := validator.ValidateAll(opts.ambient)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printIssues(out, result)
	}

	if result.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
	}
	return nil
}

func printIssues(w io.Writer, result *validation.Result) {
	for _, issue := range result.Issues {
		prefix := warningStyle.Render("[WARNING]")
		if issue.Severity == validation.SeverityError {
			prefix = errorStyle.Render("[ERROR]")
		}

		if issue.Field != "" {
			fmt.Fprintf(w, "%s %s: %s (%s)\n", prefix, issue.File, issue.Message, issue.Field)
		} else {
			fmt.Fprintf(w, "%s %s: %s\n", prefix, issue.File, issue.Message)
		}
	}

	switch {
	case result.HasErrors():
	case len(result.Issues) == 0:
		fmt.Fprintln(w, successStyle.Render("All credentials are valid."))
	default:
		fmt.Fprintf(w, "\nValidation passed with %d warning(s).\n", result.WarningCount())
	}
}
