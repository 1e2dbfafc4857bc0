// Package main provides the secretdefs CLI, which forwards LoRaWAN
// credentials from a .env file or the environment to a firmware build as
// preprocessor definitions.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/secretdefs/pkg/config"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/envfile"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/environ"
	"github.com/jaspreet-dot-casa/secretdefs/pkg/logging"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds state shared by all subcommands.
type options struct {
	envFile    string
	configPath string
	logLevel   string

	ambientFn func() *environ.Env
	ambient   *environ.Env
	cfg       *config.Config
}

// setup resolves configuration and logging before a subcommand runs.
func (o *options) setup(cmd *cobra.Command) error {
	o.ambient = o.ambientFn()

	cfg, err := config.Load(o.configPath, o.ambient)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("env-file") {
		cfg.EnvFile = o.envFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := logging.Setup(cfg.LogLevel); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}

// environment returns the ambient environment merged with the env file.
func (o *options) environment() (*environ.Env, error) {
	return envfile.Load(o.cfg.EnvFile, o.ambient)
}

// newRootCmd creates the root command for secretdefs
func newRootCmd() *cobra.Command {
	return newRootCmdWithEnv(environ.FromOS)
}

func newRootCmdWithEnv(ambient func() *environ.Env) *cobra.Command {
	opts := &options{ambientFn: ambient}

	rootCmd := &cobra.Command{
		Use:   "secretdefs",
		Short: "LoRaWAN secrets to preprocessor definitions",
		Long: `secretdefs reads APP_EUI, DEV_EUI and APP_KEY from the environment or an
optional .env file and hands them to a firmware build as preprocessor
definitions. Variables already set in the environment win over the file.

Use it from platformio.ini as a dynamic build flag:

  [env]
  build_flags = !secretdefs defines`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", envfile.DefaultName, "Path to the dotenv file")
	pf.StringVar(&opts.configPath, "config", config.DefaultFileName, "Path to the project config file")
	pf.StringVar(&opts.logLevel, "log-level", logging.DefaultLevel, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newDefinesCmd(opts),
		newHeaderCmd(opts),
		newShowCmd(opts),
		newValidateCmd(opts),
		newInitCmd(opts),
	)

	return rootCmd
}

