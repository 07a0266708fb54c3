package tables

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/geange/complgen"
	"github.com/geange/complgen/internal/commands/shared"
	"github.com/geange/complgen/internal/log"
)

var shellFlag string

// NewCommand creates the tables command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables <grammar>",
		Short: "Dump the tables a completion script generator reads",
		Long: `Compile a usage grammar and print, as YAML, the tables a shell completion
script generator is built from: literals, per-state transitions, wildcard
transitions, command transitions and every nested subword automaton.

States and subwords are numbered from 1, in ascending state order.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}
	cmd.Flags().StringVar(&shellFlag, "shell", "", "Shell whose specializations to list (bash, fish, zsh; default from config)")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	env, err := shared.Setup(cmd)
	if err != nil {
		return err
	}
	shell := env.Config.Shell
	if shellFlag != "" {
		shell = shellFlag
	}
	classify, err := classifier(shell)
	if err != nil {
		return err
	}

	g, d, err := env.CompileFile(args[0])
	if err != nil {
		return err
	}

	doc := Build(g.Command, shell, d, classify)
	env.Logger.Debug("built tables",
		slog.String(log.GrammarKey, args[0]),
		slog.Int(log.StatesKey, doc.States),
		slog.Int(log.SubwordsKey, len(doc.Subwords)))

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode tables: %w", err)
	}
	return enc.Close()
}

func classifier(shell string) (complgen.Classifier, error) {
	switch shell {
	case "bash":
		return complgen.ClassifyBash, nil
	case "fish":
		return complgen.ClassifyFish, nil
	case "zsh":
		return complgen.ClassifyZsh, nil
	}
	return nil, fmt.Errorf("unknown shell %q", shell)
}
