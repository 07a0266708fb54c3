package check

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/geange/complgen/internal/commands/shared"
	"github.com/geange/complgen/internal/log"
)

// NewCommand creates the check command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <glob>...",
		Short: "Compile every grammar matching the given patterns",
		Long: `Compile every usage grammar matched by the given doublestar patterns and
report the number of states of each automaton.

  complgen-dfa check 'usage/**/*.usage'`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	env, err := shared.Setup(cmd)
	if err != nil {
		return err
	}

	var files []string
	for _, pattern := range args {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			env.Logger.Warn("pattern matched no files", slog.String("pattern", pattern))
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return errors.New("no grammars found")
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range files {
		_, d, err := env.CompileFile(path)
		if err != nil {
			failed++
			env.Logger.Error("grammar failed", slog.String(log.GrammarKey, path), log.Error(err))
			fmt.Fprintln(out, shared.RenderError(err.Error()))
			continue
		}
		env.Logger.Info("grammar compiled",
			slog.String(log.GrammarKey, path),
			slog.Int(log.StatesKey, d.NumStates()),
			slog.Int(log.SubwordsKey, d.Subwords(0).Len()))
		fmt.Fprintln(out, shared.RenderOK(fmt.Sprintf("%s %s", path, shared.RenderLabel(fmt.Sprintf("(%d states)", d.NumStates())))))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d grammars failed", failed, len(files))
	}
	return nil
}
