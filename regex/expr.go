package regex

import (
	"errors"
	"strings"
)

type Kind int

const (
	EXPR_TERMINAL    = Kind(iota) // A literal word
	EXPR_NONTERMINAL              // A named placeholder, e.g. <FILE>
	EXPR_COMMAND                  // A shell command producing candidates
	EXPR_SUBWORD                  // An expression matched inside a single word
	EXPR_SEQUENCE                 // Two expressions one after the other
	EXPR_ALTERNATIVE              // Either of two expressions
	EXPR_OPTIONAL                 // An optional expression
	EXPR_MANY1                    // An expression that repeats at least once
)

var ErrNilExpr = errors.New("nil expression")

// Expr is a node of the grammar expression tree. Sequences and alternatives
// are binary; the exported constructors fold longer lists to the left.
type Expr struct {
	kind        Kind
	exp1, exp2  *Expr
	word        string // terminal word, nonterminal name or command
	description string
}

func newExpr(kind Kind, exp1, exp2 *Expr, word, description string) *Expr {
	return &Expr{
		kind:        kind,
		exp1:        exp1,
		exp2:        exp2,
		word:        word,
		description: description,
	}
}

func makeTerminal(word, description string) *Expr {
	return newExpr(EXPR_TERMINAL, nil, nil, word, description)
}

func makeNonterminal(name string) *Expr {
	return newExpr(EXPR_NONTERMINAL, nil, nil, name, "")
}

func makeCommand(cmd string) *Expr {
	return newExpr(EXPR_COMMAND, nil, nil, cmd, "")
}

func makeSubword(exp *Expr) *Expr {
	return newExpr(EXPR_SUBWORD, exp, nil, "", "")
}

func makeSequence(exp1, exp2 *Expr) *Expr {
	return newExpr(EXPR_SEQUENCE, exp1, exp2, "", "")
}

func makeAlternative(exp1, exp2 *Expr) *Expr {
	return newExpr(EXPR_ALTERNATIVE, exp1, exp2, "", "")
}

func makeOptional(exp *Expr) *Expr {
	return newExpr(EXPR_OPTIONAL, exp, nil, "", "")
}

func makeMany1(exp *Expr) *Expr {
	return newExpr(EXPR_MANY1, exp, nil, "", "")
}

// Terminal matches word exactly. description is shown next to the completion
// and may be empty.
func Terminal(word, description string) *Expr {
	return makeTerminal(word, description)
}

// Nonterminal is a placeholder such as <FILE>, completed by the shell.
func Nonterminal(name string) *Expr {
	return makeNonterminal(name)
}

// Command is a shell command whose output lists the candidates.
func Command(cmd string) *Expr {
	return makeCommand(cmd)
}

// Subword matches exp against the characters of a single word, as in
// --color=<WHEN>.
func Subword(exp *Expr) *Expr {
	return makeSubword(exp)
}

func Sequence(first *Expr, rest ...*Expr) *Expr {
	e := first
	for _, r := range rest {
		e = makeSequence(e, r)
	}
	return e
}

func Alternative(first *Expr, rest ...*Expr) *Expr {
	e := first
	for _, r := range rest {
		e = makeAlternative(e, r)
	}
	return e
}

func Optional(exp *Expr) *Expr {
	return makeOptional(exp)
}

func Many1(exp *Expr) *Expr {
	return makeMany1(exp)
}

func (e *Expr) Kind() Kind {
	return e.kind
}

// Children returns the operands of a composite expression.
func (e *Expr) Children() []*Expr {
	switch {
	case e.exp1 != nil && e.exp2 != nil:
		return []*Expr{e.exp1, e.exp2}
	case e.exp1 != nil:
		return []*Expr{e.exp1}
	}
	return nil
}

// Word returns the word of a terminal, the name of a nonterminal or the text
// of a command.
func (e *Expr) Word() string {
	return e.word
}

func (e *Expr) Description() string {
	return e.description
}

// Substitute rebuilds e, replacing every nonterminal for which expand returns
// an expression. Nonterminals expand maps to nil are kept.
func Substitute(e *Expr, expand func(name string) (*Expr, error)) (*Expr, error) {
	if e == nil {
		return nil, ErrNilExpr
	}
	switch e.kind {
	case EXPR_NONTERMINAL:
		r, err := expand(e.word)
		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
		return e, nil
	case EXPR_TERMINAL, EXPR_COMMAND:
		return e, nil
	}

	exp1, err := Substitute(e.exp1, expand)
	if err != nil {
		return nil, err
	}
	var exp2 *Expr
	if e.exp2 != nil {
		if exp2, err = Substitute(e.exp2, expand); err != nil {
			return nil, err
		}
	}
	return newExpr(e.kind, exp1, exp2, e.word, e.description), nil
}

func (e *Expr) validate() error {
	if e == nil {
		return ErrNilExpr
	}
	switch e.kind {
	case EXPR_SEQUENCE, EXPR_ALTERNATIVE:
		if err := e.exp1.validate(); err != nil {
			return err
		}
		return e.exp2.validate()
	case EXPR_SUBWORD, EXPR_OPTIONAL, EXPR_MANY1:
		return e.exp1.validate()
	}
	return nil
}

func (e *Expr) String() string {
	b := new(strings.Builder)
	e.toStringBuilder(b)
	return b.String()
}

func (e *Expr) toStringBuilder(b *strings.Builder) {
	switch e.kind {
	case EXPR_TERMINAL:
		b.WriteString(e.word)
		if e.description != "" {
			b.WriteString(` "`)
			b.WriteString(e.description)
			b.WriteString(`"`)
		}
	case EXPR_NONTERMINAL:
		b.WriteString("<")
		b.WriteString(e.word)
		b.WriteString(">")
	case EXPR_COMMAND:
		b.WriteString("{{{ ")
		b.WriteString(e.word)
		b.WriteString(" }}}")
	case EXPR_SUBWORD:
		b.WriteString("subword(")
		e.exp1.toStringBuilder(b)
		b.WriteString(")")
	case EXPR_SEQUENCE:
		b.WriteString("(")
		e.exp1.toStringBuilder(b)
		b.WriteString(" ")
		e.exp2.toStringBuilder(b)
		b.WriteString(")")
	case EXPR_ALTERNATIVE:
		b.WriteString("(")
		e.exp1.toStringBuilder(b)
		b.WriteString(" | ")
		e.exp2.toStringBuilder(b)
		b.WriteString(")")
	case EXPR_OPTIONAL:
		b.WriteString("[")
		e.exp1.toStringBuilder(b)
		b.WriteString("]")
	case EXPR_MANY1:
		b.WriteString("(")
		e.exp1.toStringBuilder(b)
		b.WriteString(")...")
	}
}
