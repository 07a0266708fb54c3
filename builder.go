package complgen

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Builder assembles a DFA state by state. States are integers and must be
// created with CreateState; the first one created is FirstStateID and is the
// starting state unless SetStart says otherwise. Every created state gets an
// entry in the transition table, so transitions it does not record go to the
// dead state. A Builder must not be used after Finish.
type Builder struct {
	alphabet    *Alphabet
	nextState   StateID
	start       StateID
	transitions map[StateID]map[Symbol]StateID
	accepting   *bitset.BitSet
}

// NewBuilder starts an automaton over alphabet; nil creates a fresh one that
// grows with AddTransition.
func NewBuilder(alphabet *Alphabet) *Builder {
	if alphabet == nil {
		alphabet = NewAlphabet()
	}
	return &Builder{
		alphabet:    alphabet,
		nextState:   FirstStateID,
		start:       FirstStateID,
		transitions: make(map[StateID]map[Symbol]StateID),
		accepting:   bitset.New(8),
	}
}

// CreateState creates a new state.
func (b *Builder) CreateState() StateID {
	state := b.nextState
	b.nextState++
	b.transitions[state] = make(map[Symbol]StateID)
	return state
}

// numStates reports how many states were created, the dead state aside.
func (b *Builder) numStates() int {
	return int(b.nextState - FirstStateID)
}

func (b *Builder) SetStart(state StateID) {
	b.start = state
}

// SetAccept sets or clears state as an accept state.
func (b *Builder) SetAccept(state StateID, accept bool) {
	b.accepting.SetTo(uint(state), accept)
}

// AddTransition interns in into the alphabet and adds a transition on it.
func (b *Builder) AddTransition(from StateID, in Input, to StateID) error {
	return b.AddSymbolTransition(from, b.alphabet.Add(in), to)
}

// AddSymbolTransition adds a transition labelled with an existing symbol. A
// second, different target for the same source and symbol would make the
// automaton nondeterministic and is rejected.
func (b *Builder) AddSymbolTransition(from StateID, sym Symbol, to StateID) error {
	if from == DeadStateID {
		return fmt.Errorf("dead state (%d) cannot have transitions", from)
	}
	if int(sym) < 0 || int(sym) >= b.alphabet.Len() {
		return fmt.Errorf("symbol %d is not part of the alphabet", sym)
	}
	tos, ok := b.transitions[from]
	if !ok {
		tos = make(map[Symbol]StateID)
		b.transitions[from] = tos
	}
	if existing, ok := tos[sym]; ok && existing != to {
		return fmt.Errorf("state %d already has a transition on %s (to %d)", from, b.alphabet.Input(sym), existing)
	}
	tos[sym] = to
	return nil
}

// Finish returns the built automaton.
func (b *Builder) Finish() *DFA {
	d := newDFA(b.start, b.transitions, b.accepting, b.alphabet)
	b.transitions = nil
	b.accepting = nil
	return d
}
