package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/geange/complgen/internal/commands/check"
	"github.com/geange/complgen/internal/commands/dot"
	"github.com/geange/complgen/internal/commands/match"
	"github.com/geange/complgen/internal/commands/shared"
	"github.com/geange/complgen/internal/commands/tables"
)

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complgen-dfa",
		Short: "Compile usage grammars into completion automata",
		Long: `complgen-dfa compiles a command's usage grammar into the deterministic
automaton that shell completion scripts are generated from, and lets you
inspect it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addPersistentFlags(cmd.PersistentFlags())

	cmd.AddCommand(dot.NewCommand())
	cmd.AddCommand(match.NewCommand())
	cmd.AddCommand(tables.NewCommand())
	cmd.AddCommand(check.NewCommand())
	return cmd
}

func addPersistentFlags(flags *pflag.FlagSet) {
	config, logLevel, logFormat, noMinimize := shared.RegisterFlagPointers()
	flags.StringVar(config, "config", "", "Path to config file")
	flags.StringVar(logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(logFormat, "log-format", "", "Log format (json, text)")
	flags.BoolVar(noMinimize, "no-minimize", false, "Skip automaton minimization")
}

// HandleExitError reports err and exits with the matching code.
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
