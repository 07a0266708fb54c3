package grammar

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyGrammar          = errors.New("empty grammar")
	ErrVaryingCommandNames   = errors.New("only one command is allowed in a completions definition")
	ErrRecursiveDefinition   = errors.New("recursive nonterminal definition")
	ErrDuplicateDefinition   = errors.New("nonterminal defined more than once")
	ErrInvalidSpecialization = errors.New("shell specializations must be a single command")
)

// SyntaxError reports malformed grammar text. Pos is a rune offset; Line and
// Column are 1-based.
type SyntaxError struct {
	Pos    int
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}
