package grammar

import (
	"fmt"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/geange/complgen"
	"github.com/geange/complgen/regex"
)

// Grammar is a parsed usage grammar: the call variants of one command,
// nonterminal definitions and per-shell nonterminal specializations.
//
//	grep [--color=<WHEN>] <PATTERN> [<FILE>]...;
//	<WHEN> ::= always | never | auto;
//	<FILE@bash> ::= {{{ compgen -f -- "$cur" }}};
type Grammar struct {
	Command         string
	Variants        []*regex.Expr // nil for a variant without arguments
	Specializations regex.Specializations

	definitions *orderedmap.OrderedMap[string, *regex.Expr]
}

// Parse parses grammar text. Every call variant must name the same command.
func Parse(input string) (*Grammar, error) {
	statements, err := newParser(input).parseGrammar()
	if err != nil {
		return nil, err
	}

	g := &Grammar{
		Specializations: regex.Specializations{},
		definitions:     orderedmap.New[string, *regex.Expr](),
	}
	var names []string
	for _, s := range statements {
		switch {
		case s.isDefinition() && s.shell != "":
			if err := g.addSpecialization(s); err != nil {
				return nil, err
			}
		case s.isDefinition():
			if _, ok := g.definitions.Get(s.nonterminal); ok {
				return nil, fmt.Errorf("%w: <%s>", ErrDuplicateDefinition, s.nonterminal)
			}
			g.definitions.Set(s.nonterminal, s.expr)
		default:
			if g.Command == "" {
				g.Command = s.command
			}
			if s.command != g.Command && !slices.Contains(names, s.command) {
				names = append(names, s.command)
			}
			g.Variants = append(g.Variants, s.expr)
		}
	}

	if len(g.Variants) == 0 {
		return nil, ErrEmptyGrammar
	}
	if len(names) > 0 {
		names = append([]string{g.Command}, names...)
		return nil, fmt.Errorf("%w: %s", ErrVaryingCommandNames, strings.Join(names, ", "))
	}
	return g, nil
}

func (g *Grammar) addSpecialization(s statement) error {
	if s.expr.Kind() != regex.EXPR_COMMAND {
		return fmt.Errorf("%w: <%s@%s>", ErrInvalidSpecialization, s.nonterminal, s.shell)
	}
	spec, ok := g.Specializations[s.nonterminal]
	if !ok {
		spec = &complgen.Specialization{}
		g.Specializations[s.nonterminal] = spec
	}
	var field *string
	switch s.shell {
	case "bash":
		field = &spec.Bash
	case "fish":
		field = &spec.Fish
	default:
		field = &spec.Zsh
	}
	if *field != "" {
		return fmt.Errorf("%w: <%s@%s>", ErrDuplicateDefinition, s.nonterminal, s.shell)
	}
	*field = s.expr.Word()
	return nil
}

// Definitions lists the defined nonterminals in declaration order.
func (g *Grammar) Definitions() []string {
	names := make([]string, 0, g.definitions.Len())
	for pair := g.definitions.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Expr returns the arguments of the command as one expression: the
// alternative of all call variants with every defined nonterminal expanded.
// A variant without arguments makes the whole expression optional.
func (g *Grammar) Expr() (*regex.Expr, error) {
	expanded := make(map[string]*regex.Expr, g.definitions.Len())
	inProgress := make(map[string]bool)

	var expand func(name string) (*regex.Expr, error)
	expand = func(name string) (*regex.Expr, error) {
		if e, ok := expanded[name]; ok {
			return e, nil
		}
		def, ok := g.definitions.Get(name)
		if !ok {
			return nil, nil
		}
		if inProgress[name] {
			return nil, fmt.Errorf("%w: <%s>", ErrRecursiveDefinition, name)
		}
		inProgress[name] = true
		e, err := regex.Substitute(def, expand)
		if err != nil {
			return nil, err
		}
		delete(inProgress, name)
		expanded[name] = e
		return e, nil
	}

	var result *regex.Expr
	optional := false
	for _, v := range g.Variants {
		if v == nil {
			optional = true
			continue
		}
		e, err := regex.Substitute(v, expand)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = e
		} else {
			result = regex.Alternative(result, e)
		}
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %s takes no arguments", ErrEmptyGrammar, g.Command)
	}
	if optional {
		result = regex.Optional(result)
	}
	return result, nil
}

// Compile builds the completion automaton of the grammar.
func (g *Grammar) Compile(options ...regex.CompileOption) (*complgen.DFA, error) {
	e, err := g.Expr()
	if err != nil {
		return nil, err
	}
	return regex.Compile(e, g.Specializations, options...)
}
