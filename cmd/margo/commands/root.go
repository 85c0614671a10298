// Package commands implements the CLI commands for margo.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/margo/internal/app"
	"go.trai.ch/margo/internal/build"
)

// CLI represents the command line interface for margo.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// overrideFlags maps flag names to the config keys they override.
var overrideFlags = map[string]string{
	"lockfile":      "lockfile",
	"cargo-dir":     "cargo_dir",
	"registry-url":  "registry.url",
	"registry-name": "registry.name",
	"concurrency":   "concurrency",
	"timeout":       "timeout",
	"report":        "report",
	"log-json":      "log.json",
	"log-file":      "log.file",
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "margo",
		Short:         "Fetch the crates of a Cargo.lock into the local cargo cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default is ./margo.yaml)")
	flags.StringP("lockfile", "l", "", "Path to the lockfile")
	flags.String("cargo-dir", "", "Cargo home holding the registry cache")
	flags.String("registry-url", "", "Index URL of the registry to fetch from")
	flags.String("registry-name", "", "Directory name of the registry cache")
	flags.IntP("concurrency", "j", 0, "Number of crates fetched at the same time")
	flags.Duration("timeout", 0, "Timeout of a single HTTP request")
	flags.String("report", "", "Write a YAML run report to this path")
	flags.Bool("log-json", false, "Log as JSON")
	flags.String("log-file", "", "Also write logs to this rotating file")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

// options collects the config file and the explicitly set flags of cmd.
func options(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")

	overrides := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := overrideFlags[f.Name]
		if !ok {
			return
		}
		overrides[key] = flagValue(cmd, f)
	})

	return app.Options{ConfigPath: configPath, Overrides: overrides}
}

func flagValue(cmd *cobra.Command, f *pflag.Flag) any {
	switch f.Value.Type() {
	case "int":
		v, _ := cmd.Flags().GetInt(f.Name)
		return v
	case "bool":
		v, _ := cmd.Flags().GetBool(f.Name)
		return v
	case "duration":
		v, _ := cmd.Flags().GetDuration(f.Name)
		return v
	default:
		return f.Value.String()
	}
}
