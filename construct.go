package complgen

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/ef-ds/deque"
)

// Position identifies one leaf (a terminal occurrence or the endmarker) of a
// position-augmented regex.
type Position int

// PositionRegex is the upstream contract automaton construction is built on:
// a regex augmented with an endmarker whose leaves are numbered by position.
type PositionRegex interface {
	// Firstpos returns the positions that can start a match.
	Firstpos() *bitset.BitSet

	// Followpos returns the positions that can follow pos, nil when none.
	Followpos(pos Position) *bitset.BitSet

	// SymbolAt returns the input symbol at pos; false for the endmarker.
	SymbolAt(pos Position) (Symbol, bool)

	// Endmarker returns the position of the endmarker.
	Endmarker() Position

	// Alphabet returns every input symbol used by the regex.
	Alphabet() *Alphabet
}

// FromRegex converts a position-augmented regex directly into a DFA whose
// states are sets of positions (Dragon book 3.9.5). The start state is
// firstpos and gets FirstStateID; states are allocated in discovery order and
// identified by their position set. Every state containing the endmarker
// accepts.
func FromRegex(r PositionRegex) *DFA {
	alphabet := r.Alphabet()
	endmarker := r.Endmarker()

	b := NewBuilder(alphabet)

	initialSet := NewFrozenIntSet(r.Firstpos().Clone())
	b.SetStart(b.CreateState())

	dstates := NewHashMap[StateID](WithCapacity(16))
	dstates.Set(initialSet, FirstStateID)

	worklist := deque.New()
	worklist.PushBack(initialSet)

	if initialSet.Contains(int(endmarker)) {
		b.SetAccept(FirstStateID, true)
	}

	for worklist.Len() > 0 {
		v, _ := worklist.PopFront()
		combined := v.(*FrozenIntSet)
		from, _ := dstates.Get(combined)

		// Group the followpos of every position by the symbol at it.
		targets := make(map[Symbol]*bitset.BitSet)
		for _, pos := range combined.GetArray() {
			sym, ok := r.SymbolAt(Position(pos))
			if !ok {
				continue
			}
			follow := r.Followpos(Position(pos))
			if follow == nil || follow.None() {
				continue
			}
			u, ok := targets[sym]
			if !ok {
				u = bitset.New(follow.Len())
				targets[sym] = u
			}
			u.InPlaceUnion(follow)
		}

		for _, sym := range alphabet.Symbols() {
			u, ok := targets[sym]
			if !ok {
				continue
			}
			next := NewFrozenIntSet(u)
			to, _ := dstates.GetOrSet(next, func() StateID {
				s := b.CreateState()
				worklist.PushBack(next)
				if next.Contains(int(endmarker)) {
					b.SetAccept(s, true)
				}
				return s
			})
			if err := b.AddSymbolTransition(from, sym, to); err != nil {
				panic(err)
			}
		}
	}

	return b.Finish()
}
