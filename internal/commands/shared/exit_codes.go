package shared

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/geange/complgen"
	"github.com/geange/complgen/grammar"
)

// Exit codes used by complgen-dfa.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitAmbiguous    = 3
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var syntaxErr *grammar.SyntaxError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, complgen.ErrAmbiguous):
		return ExitAmbiguous
	case errors.As(err, &syntaxErr),
		errors.Is(err, grammar.ErrEmptyGrammar),
		errors.Is(err, grammar.ErrVaryingCommandNames),
		errors.Is(err, grammar.ErrRecursiveDefinition),
		errors.Is(err, grammar.ErrDuplicateDefinition),
		errors.Is(err, grammar.ErrInvalidSpecialization):
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}

// HandleExitError prints err and exits with the matching code.
func HandleExitError(err error) {
	writeError(os.Stderr, err)
	os.Exit(ExitCode(err))
}

func writeError(w io.Writer, err error) {
	fmt.Fprintln(w, RenderError(err.Error()))
}
