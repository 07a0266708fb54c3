package complgen

import (
	"slices"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// StateID identifies a DFA state. Ids are dense and non-negative.
type StateID int

// Every state of a freshly constructed automaton formally has a transition on
// every alphabet symbol. Transitions that are not recorded go to the dead
// state, which is never built explicitly and never accepting. Real states of
// a constructed automaton start at FirstStateID. Minimization relies on this
// total transition function.
//
// Canonicalized automata (the output of Minimize) drop the convention: their
// states are renumbered from 0 and a missing transition simply does not
// exist.
const (
	DeadStateID  StateID = 0
	FirstStateID StateID = 1
)

// DFA is a deterministic automaton over an Alphabet of inputs. A DFA is
// immutable once built; Minimize and Canonicalize return new values. Nested
// automata referenced by Subword inputs are shared by pointer.
type DFA struct {
	start       StateID
	transitions map[StateID]map[Symbol]StateID
	accepting   *bitset.BitSet
	alphabet    *Alphabet

	hashOnce sync.Once
	hashCode uint64
}

func newDFA(start StateID, transitions map[StateID]map[Symbol]StateID, accepting *bitset.BitSet, alphabet *Alphabet) *DFA {
	if alphabet == nil {
		panic("complgen: automaton without alphabet")
	}
	if transitions == nil {
		transitions = make(map[StateID]map[Symbol]StateID)
	}
	if accepting == nil {
		accepting = bitset.New(0)
	}
	return &DFA{
		start:       start,
		transitions: transitions,
		accepting:   accepting,
		alphabet:    alphabet,
	}
}

func (d *DFA) StartingState() StateID {
	return d.start
}

func (d *DFA) Alphabet() *Alphabet {
	return d.alphabet
}

// Transitions returns the transition table keyed by source state. The map is
// shared with the automaton and must not be modified.
func (d *DFA) Transitions() map[StateID]map[Symbol]StateID {
	return d.transitions
}

// TransitionsFrom returns the recorded transitions leaving state, nil when
// there are none.
func (d *DFA) TransitionsFrom(state StateID) map[Symbol]StateID {
	return d.transitions[state]
}

// Step returns the target of the transition on sym, false when none is
// recorded.
func (d *DFA) Step(state StateID, sym Symbol) (StateID, bool) {
	to, ok := d.transitions[state][sym]
	return to, ok
}

func (d *DFA) IsAccepting(state StateID) bool {
	return state >= 0 && d.accepting.Test(uint(state))
}

// AcceptingStates returns the accepting states in ascending order.
func (d *DFA) AcceptingStates() []StateID {
	states := make([]StateID, 0, d.accepting.Count())
	for i, ok := d.accepting.NextSet(0); ok; i, ok = d.accepting.NextSet(i + 1) {
		states = append(states, StateID(i))
	}
	return states
}

// AllStates returns every state named by the automaton: the start state,
// every source and target of a recorded transition, every accepting state,
// and the dead state.
func (d *DFA) AllStates() *bitset.BitSet {
	states := bitset.New(uint(len(d.transitions) + 1))
	states.Set(uint(DeadStateID))
	states.Set(uint(d.start))
	for from, tos := range d.transitions {
		states.Set(uint(from))
		for _, to := range tos {
			states.Set(uint(to))
		}
	}
	states.InPlaceUnion(d.accepting)
	return states
}

// sortedSources returns the states that have an entry in the transition
// table, ascending.
func (d *DFA) sortedSources() []StateID {
	sources := make([]StateID, 0, len(d.transitions))
	for from := range d.transitions {
		sources = append(sources, from)
	}
	slices.Sort(sources)
	return sources
}

// sortedSymbols returns the symbols of the transitions leaving state in
// alphabet order.
func (d *DFA) sortedSymbols(state StateID) []Symbol {
	tos := d.transitions[state]
	syms := make([]Symbol, 0, len(tos))
	for sym := range tos {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	return syms
}

var _ Hashable = &DFA{}

// Hash is computed from the starting state, the accepting states and the
// transition table, with inputs hashed by content. It is stable across
// alphabets, so two automata built independently over different alphabets
// hash alike when their tables agree.
func (d *DFA) Hash() uint64 {
	d.hashOnce.Do(func() {
		h := combine(0, uint64(d.start))
		var transitions uint64
		for from, tos := range d.transitions {
			for sym, to := range tos {
				t := combine(uint64(from), d.alphabet.Input(sym).Hash())
				transitions += combine(t, uint64(to))
			}
		}
		var accepting uint64
		for i, ok := d.accepting.NextSet(0); ok; i, ok = d.accepting.NextSet(i + 1) {
			accepting += mix64(uint64(i) + 1)
		}
		d.hashCode = combine(combine(h, transitions), accepting)
	})
	return d.hashCode
}

// Equals compares transition-table content: same start, same accepting
// states, and the same (source, input, target) triples, inputs compared by
// content.
func (d *DFA) Equals(other Hashable) bool {
	o, ok := other.(*DFA)
	if !ok {
		return false
	}
	if d == nil || o == nil {
		return d == o
	}
	if d == o {
		return true
	}
	if d.start != o.start || d.Hash() != o.Hash() {
		return false
	}
	if d.accepting.SymmetricDifferenceCardinality(o.accepting) != 0 {
		return false
	}
	nonEmpty := 0
	for from, tos := range d.transitions {
		if len(tos) == 0 {
			continue
		}
		nonEmpty++
		otos := o.transitions[from]
		if len(otos) != len(tos) {
			return false
		}
		for sym, to := range tos {
			osym, ok := o.alphabet.Lookup(d.alphabet.Input(sym))
			if !ok {
				return false
			}
			if oto, ok := otos[osym]; !ok || oto != to {
				return false
			}
		}
	}
	for _, otos := range o.transitions {
		if len(otos) > 0 {
			nonEmpty--
		}
	}
	return nonEmpty == 0
}
