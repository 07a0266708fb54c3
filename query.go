package complgen

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/ef-ds/deque"
)

// The queries below are what shell script generators read. They visit
// states in ascending order and symbols in alphabet order, so their output is
// stable from run to run.

// eachTransition calls fn for every recorded transition.
func (d *DFA) eachTransition(fn func(from StateID, sym Symbol, to StateID)) {
	for _, from := range d.sortedSources() {
		for _, sym := range d.sortedSymbols(from) {
			fn(from, sym, d.transitions[from][sym])
		}
	}
}

// States returns the states reachable from the starting state, ascending.
func (d *DFA) States() []StateID {
	seen := bitset.New(uint(len(d.transitions) + 1))
	seen.Set(uint(d.start))
	queue := deque.New()
	queue.PushBack(d.start)
	for queue.Len() > 0 {
		v, _ := queue.PopFront()
		for _, to := range d.transitions[v.(StateID)] {
			if !seen.Test(uint(to)) {
				seen.Set(uint(to))
				queue.PushBack(to)
			}
		}
	}
	states := make([]StateID, 0, seen.Count())
	for i, ok := seen.NextSet(0); ok; i, ok = seen.NextSet(i + 1) {
		states = append(states, StateID(i))
	}
	return states
}

// NumStates is the number of reachable states.
func (d *DFA) NumStates() int {
	return len(d.States())
}

type LiteralEntry struct {
	Word        string
	Description string
}

// Literals lists every literal of the alphabet in alphabet order.
func (d *DFA) Literals() []LiteralEntry {
	var result []LiteralEntry
	for _, sym := range d.alphabet.Symbols() {
		if lit, ok := d.alphabet.Input(sym).(Literal); ok {
			result = append(result, LiteralEntry{Word: lit.Word, Description: lit.Description})
		}
	}
	return result
}

type LiteralTransition struct {
	Word        string
	Description string
	To          StateID
}

func (d *DFA) LiteralTransitionsFrom(from StateID) []LiteralTransition {
	var result []LiteralTransition
	for _, sym := range d.sortedSymbols(from) {
		if lit, ok := d.alphabet.Input(sym).(Literal); ok {
			result = append(result, LiteralTransition{Word: lit.Word, Description: lit.Description, To: d.transitions[from][sym]})
		}
	}
	return result
}

type SubwordTransition struct {
	DFA *DFA
	To  StateID
}

func (d *DFA) SubwordTransitionsFrom(from StateID) []SubwordTransition {
	var result []SubwordTransition
	for _, sym := range d.sortedSymbols(from) {
		if sub, ok := d.alphabet.Input(sym).(Subword); ok {
			result = append(result, SubwordTransition{DFA: sub.DFA, To: d.transitions[from][sym]})
		}
	}
	return result
}

type StatePair struct {
	From StateID
	To   StateID
}

// MatchAnythingTransitions lists the transitions on nonterminals and
// commands.
func (d *DFA) MatchAnythingTransitions() []StatePair {
	var result []StatePair
	d.eachTransition(func(from StateID, sym Symbol, to StateID) {
		if d.alphabet.Input(sym).MatchesAnything() {
			result = append(result, StatePair{From: from, To: to})
		}
	})
	return result
}

// Classifier extracts the shell command a generator should run for an
// input, if any.
type Classifier func(in Input) (string, bool)

// ClassifyCommand picks opaque Command inputs.
func ClassifyCommand(in Input) (string, bool) {
	c, ok := in.(Command)
	return c.Command, ok
}

// ClassifyBash picks nonterminals carrying a bash specialization.
func ClassifyBash(in Input) (string, bool) {
	return specialization(in, func(s *Specialization) string { return s.Bash })
}

// ClassifyFish picks nonterminals carrying a fish specialization.
func ClassifyFish(in Input) (string, bool) {
	return specialization(in, func(s *Specialization) string { return s.Fish })
}

// ClassifyZsh picks nonterminals carrying a zsh specialization.
func ClassifyZsh(in Input) (string, bool) {
	return specialization(in, func(s *Specialization) string { return s.Zsh })
}

func specialization(in Input, field func(*Specialization) string) (string, bool) {
	n, ok := in.(Nonterminal)
	if !ok || n.Specialization == nil {
		return "", false
	}
	cmd := field(n.Specialization)
	return cmd, cmd != ""
}

type CommandTransition struct {
	From    StateID
	Command string
}

// NestedCommands groups the command transitions of one distinct nested
// automaton.
type NestedCommands struct {
	DFA         *DFA
	Transitions []CommandTransition
}

// CommandTransitions splits the transitions classify accepts into those of
// the automaton itself and those of each distinct nested automaton. Nested
// automata equal by content are walked once, in Subwords order.
func (d *DFA) CommandTransitions(classify Classifier) ([]CommandTransition, []NestedCommands) {
	topLevel := d.classifiedTransitions(classify)

	table := d.Subwords(0)
	nested := make([]NestedCommands, 0, table.Len())
	for _, sub := range table.DFAs() {
		nested = append(nested, NestedCommands{
			DFA:         sub,
			Transitions: sub.classifiedTransitions(classify),
		})
	}
	return topLevel, nested
}

func (d *DFA) classifiedTransitions(classify Classifier) []CommandTransition {
	var result []CommandTransition
	d.eachTransition(func(from StateID, sym Symbol, _ StateID) {
		if cmd, ok := classify(d.alphabet.Input(sym)); ok {
			result = append(result, CommandTransition{From: from, Command: cmd})
		}
	})
	return result
}

// SubwordTable numbers the distinct nested automata reachable from an
// automaton. Automata equal by content share a number.
type SubwordTable struct {
	dfas  []*DFA
	ids   *HashMap[int]
	first int
}

// Subwords discovers every nested automaton, nested ones included,
// breadth-first, and numbers them from firstID in discovery order.
func (d *DFA) Subwords(firstID int) *SubwordTable {
	t := &SubwordTable{
		ids:   NewHashMap[int](WithCapacity(4)),
		first: firstID,
	}
	queue := deque.New()
	queue.PushBack(d)
	for queue.Len() > 0 {
		v, _ := queue.PopFront()
		v.(*DFA).eachTransition(func(_ StateID, sym Symbol, _ StateID) {
			sub, ok := v.(*DFA).alphabet.Input(sym).(Subword)
			if !ok {
				return
			}
			t.ids.GetOrSet(sub.DFA, func() int {
				t.dfas = append(t.dfas, sub.DFA)
				queue.PushBack(sub.DFA)
				return firstID + len(t.dfas) - 1
			})
		})
	}
	return t
}

// ID returns the number of the nested automaton equal to sub.
func (t *SubwordTable) ID(sub *DFA) (int, bool) {
	return t.ids.Get(sub)
}

// DFAs returns one representative per distinct nested automaton, in
// numbering order.
func (t *SubwordTable) DFAs() []*DFA {
	return slices.Clone(t.dfas)
}

func (t *SubwordTable) Len() int {
	return len(t.dfas)
}
