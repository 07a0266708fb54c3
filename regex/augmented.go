package regex

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/geange/complgen"
)

// Specializations maps nonterminal names to their per-shell commands.
type Specializations map[string]*complgen.Specialization

// Regex is an expression augmented with an endmarker, its leaves numbered by
// position from left to right. It carries the firstpos and followpos sets
// automaton construction works from (Dragon book 3.9).
type Regex struct {
	alphabet  *complgen.Alphabet
	symbols   []complgen.Symbol // symbol at every non-endmarker position
	followpos []*bitset.BitSet
	firstpos  *bitset.BitSet
	endmarker complgen.Position
}

var _ complgen.PositionRegex = &Regex{}

// node holds the per-subtree functions of the construction.
type node struct {
	nullable bool
	firstpos *bitset.BitSet
	lastpos  *bitset.BitSet
}

type augmenter struct {
	specs     Specializations
	alphabet  *complgen.Alphabet
	symbols   []complgen.Symbol
	followpos []*bitset.BitSet
}

// Augment numbers the leaves of e and computes firstpos and followpos. The
// expression of every subword is compiled into its own minimized automaton,
// which then labels the subword leaf.
func Augment(e *Expr, specs Specializations) (*Regex, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	a := &augmenter{
		specs:    specs,
		alphabet: complgen.NewAlphabet(),
	}
	root, err := a.walk(e)
	if err != nil {
		return nil, err
	}

	endmarker := complgen.Position(len(a.symbols))
	for i, ok := root.lastpos.NextSet(0); ok; i, ok = root.lastpos.NextSet(i + 1) {
		a.followpos[i].Set(uint(endmarker))
	}
	firstpos := root.firstpos.Clone()
	if root.nullable {
		firstpos.Set(uint(endmarker))
	}

	return &Regex{
		alphabet:  a.alphabet,
		symbols:   a.symbols,
		followpos: a.followpos,
		firstpos:  firstpos,
		endmarker: endmarker,
	}, nil
}

func (a *augmenter) leaf(in complgen.Input) *node {
	pos := uint(len(a.symbols))
	a.symbols = append(a.symbols, a.alphabet.Add(in))
	a.followpos = append(a.followpos, bitset.New(pos+1))
	return &node{
		firstpos: bitset.New(pos + 1).Set(pos),
		lastpos:  bitset.New(pos + 1).Set(pos),
	}
}

func (a *augmenter) addFollow(from, to *bitset.BitSet) {
	for i, ok := from.NextSet(0); ok; i, ok = from.NextSet(i + 1) {
		a.followpos[i].InPlaceUnion(to)
	}
}

func (a *augmenter) walk(e *Expr) (*node, error) {
	switch e.kind {
	case EXPR_TERMINAL:
		return a.leaf(complgen.Literal{Word: e.word, Description: e.description}), nil
	case EXPR_NONTERMINAL:
		return a.leaf(complgen.Nonterminal{Name: e.word, Specialization: a.specs[e.word]}), nil
	case EXPR_COMMAND:
		return a.leaf(complgen.Command{Command: e.word}), nil
	case EXPR_SUBWORD:
		inner, err := Compile(e.exp1, a.specs)
		if err != nil {
			return nil, fmt.Errorf("subword %s: %w", e.exp1, err)
		}
		return a.leaf(complgen.Subword{DFA: inner}), nil
	case EXPR_SEQUENCE:
		left, err := a.walk(e.exp1)
		if err != nil {
			return nil, err
		}
		right, err := a.walk(e.exp2)
		if err != nil {
			return nil, err
		}
		a.addFollow(left.lastpos, right.firstpos)
		n := &node{
			nullable: left.nullable && right.nullable,
			firstpos: left.firstpos.Clone(),
			lastpos:  right.lastpos.Clone(),
		}
		if left.nullable {
			n.firstpos.InPlaceUnion(right.firstpos)
		}
		if right.nullable {
			n.lastpos.InPlaceUnion(left.lastpos)
		}
		return n, nil
	case EXPR_ALTERNATIVE:
		left, err := a.walk(e.exp1)
		if err != nil {
			return nil, err
		}
		right, err := a.walk(e.exp2)
		if err != nil {
			return nil, err
		}
		return &node{
			nullable: left.nullable || right.nullable,
			firstpos: left.firstpos.Union(right.firstpos),
			lastpos:  left.lastpos.Union(right.lastpos),
		}, nil
	case EXPR_OPTIONAL:
		inner, err := a.walk(e.exp1)
		if err != nil {
			return nil, err
		}
		inner.nullable = true
		return inner, nil
	case EXPR_MANY1:
		inner, err := a.walk(e.exp1)
		if err != nil {
			return nil, err
		}
		a.addFollow(inner.lastpos, inner.firstpos)
		return inner, nil
	}
	return nil, fmt.Errorf("unknown expression kind %d", e.kind)
}

func (r *Regex) Firstpos() *bitset.BitSet {
	return r.firstpos
}

func (r *Regex) Followpos(pos complgen.Position) *bitset.BitSet {
	if int(pos) < 0 || int(pos) >= len(r.followpos) {
		return nil
	}
	return r.followpos[pos]
}

func (r *Regex) SymbolAt(pos complgen.Position) (complgen.Symbol, bool) {
	if int(pos) < 0 || int(pos) >= len(r.symbols) {
		return 0, false
	}
	return r.symbols[pos], true
}

func (r *Regex) Endmarker() complgen.Position {
	return r.endmarker
}

func (r *Regex) Alphabet() *complgen.Alphabet {
	return r.alphabet
}

// numPositions counts the positions, the endmarker included.
func (r *Regex) numPositions() int {
	return len(r.symbols) + 1
}
