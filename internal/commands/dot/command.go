package dot

import (
	"github.com/spf13/cobra"

	"github.com/geange/complgen/internal/commands/shared"
)

// NewCommand creates the dot command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dot <grammar>",
		Short: "Print the automaton of a grammar in GraphViz format",
		Long: `Compile a usage grammar and print its automaton as a GraphViz digraph.
Subword automata are drawn as clusters.

  complgen-dfa dot grep.usage | dot -Tsvg > grep.svg`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	env, err := shared.Setup(cmd)
	if err != nil {
		return err
	}
	_, d, err := env.CompileFile(args[0])
	if err != nil {
		return err
	}
	return d.WriteDot(cmd.OutOrStdout())
}
