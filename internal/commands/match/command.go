package match

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/geange/complgen"
	"github.com/geange/complgen/internal/commands/shared"
	"github.com/geange/complgen/internal/log"
)

var lineFlag string

// NewCommand creates the match command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <grammar> [words...]",
		Short: "Check whether a command line matches a grammar",
		Long: `Compile a usage grammar and run its automaton over the given words.
With --line the words are split from a single shell-quoted string instead.

  complgen-dfa match grep.usage --color=auto needle a.txt
  complgen-dfa match --line "--color=auto 'needle in' a.txt" grep.usage

Flags must come before the grammar; everything after it is a word.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}
	cmd.Flags().StringVar(&lineFlag, "line", "", "Command line to split into words")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	env, err := shared.Setup(cmd)
	if err != nil {
		return err
	}

	words := args[1:]
	if lineFlag != "" {
		split, err := shlex.Split(lineFlag)
		if err != nil {
			return fmt.Errorf("failed to split --line: %w", err)
		}
		words = append(split, words...)
	}

	_, d, err := env.CompileFile(args[0])
	if err != nil {
		return err
	}

	ok, err := d.Accepts(words)
	env.Logger.Debug("matched words",
		slog.String(log.GrammarKey, args[0]),
		slog.Int("words", len(words)),
		slog.Bool("accepted", ok))

	out := cmd.OutOrStdout()
	line := strings.Join(words, " ")
	switch {
	case errors.Is(err, complgen.ErrAmbiguous):
		fmt.Fprintln(out, shared.RenderWarn("ambiguous: " + line))
		return err
	case err != nil:
		return err
	case ok:
		fmt.Fprintln(out, shared.RenderOK("accepted: " + line))
	default:
		fmt.Fprintln(out, shared.RenderError("rejected: " + line))
	}
	return nil
}
