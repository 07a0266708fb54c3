package complgen

import (
	"cmp"
	"slices"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/ef-ds/deque"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// transition is one (source, symbol, target) triple.
type transition struct {
	from StateID
	sym  Symbol
	to   StateID
}

// Minimize returns an equivalent automaton with the fewest states, computed
// with Hopcroft's partition refinement and then canonicalized, so states are
// renumbered densely from 0. The input must have a total transition function
// relative to its alphabet, missing transitions standing for the dead state.
//
// An automaton without any non-accepting state besides the dead state has
// nothing to refine; it is only canonicalized.
//
// References:
//   - The Dragon Book: Minimizing the Number of States of a DFA
//   - Engineering a Compiler, 3rd ed, 2.4.4 DFA to Minimal DFA
func Minimize(a *DFA) *DFA {
	d := a
	if a.usesDeadStateAsReal() {
		// Canonical automata start at 0; move them clear of the dead state.
		d = a.shifted(1)
	}

	all := d.AllStates()
	deadGroup := bitset.New(1).Set(uint(DeadStateID))
	acceptingGroup := d.accepting.Difference(deadGroup)
	nonacceptingGroup := all.Difference(d.accepting).Difference(deadGroup)
	if nonacceptingGroup.None() {
		return Canonicalize(a)
	}

	pool := NewIntSetPool()
	partition := orderedmap.New[SetHandle, struct{}]()
	worklist := newHandleWorklist()
	for _, group := range []*bitset.BitSet{deadGroup, acceptingGroup, nonacceptingGroup} {
		if group.None() {
			continue
		}
		id := pool.Intern(group)
		partition.Set(id, struct{}{})
		worklist.push(id)
	}

	inverse := inverseTransitions(d, all)
	symbols := d.alphabet.Symbols()

	for {
		groupID, ok := worklist.pop()
		if !ok {
			break
		}
		group := pool.Get(groupID)
		lo, _ := group.Min()
		hi, _ := group.Max()

		// Transitions into the group, bucketed by symbol.
		sourcesBySymbol := make(map[Symbol]*bitset.BitSet)
		first := sort.Search(len(inverse), func(i int) bool {
			return int(inverse[i].to) >= lo
		})
		for i := first; i < len(inverse) && int(inverse[i].to) <= hi; i++ {
			t := inverse[i]
			if !group.Contains(int(t.to)) {
				continue
			}
			sources, ok := sourcesBySymbol[t.sym]
			if !ok {
				sources = bitset.New(all.Len())
				sourcesBySymbol[t.sym] = sources
			}
			sources.Set(uint(t.from))
		}

		for _, sym := range symbols {
			sources, ok := sourcesBySymbol[sym]
			if !ok {
				continue
			}

			var overlapping []SetHandle
			for pair := partition.Oldest(); pair != nil; pair = pair.Next() {
				if pool.Get(pair.Key).Bits().IntersectionCardinality(sources) > 0 {
					overlapping = append(overlapping, pair.Key)
				}
			}

			for _, id := range overlapping {
				states := pool.Get(id).Bits()
				removed := states.Intersection(sources)
				remaining := states.Difference(removed)
				if remaining.None() {
					continue
				}

				partition.Delete(id)
				removedID := pool.Intern(removed)
				remainingID := pool.Intern(remaining)
				partition.Set(removedID, struct{}{})
				partition.Set(remainingID, struct{}{})

				if id == groupID {
					// The splitter itself is gone before every block was
					// checked against it on sym; both halves take over.
					worklist.push(removedID)
					worklist.push(remainingID)
					break
				}

				if worklist.contains(id) {
					worklist.remove(id)
					worklist.push(removedID)
					worklist.push(remainingID)
				} else if removed.Count() <= remaining.Count() {
					worklist.push(removedID)
				} else {
					worklist.push(remainingID)
				}
			}
		}
	}

	// The smallest member of every block represents it.
	representative := make(map[StateID]StateID, all.Count())
	for pair := partition.Oldest(); pair != nil; pair = pair.Next() {
		block := pool.Get(pair.Key)
		rep, _ := block.Min()
		for _, s := range block.GetArray() {
			representative[StateID(s)] = StateID(rep)
		}
	}

	accepting := bitset.New(d.accepting.Len())
	for _, s := range d.AcceptingStates() {
		accepting.Set(uint(representative[s]))
	}

	transitions := make(map[StateID]map[Symbol]StateID, len(d.transitions))
	for from, tos := range d.transitions {
		rewritten := make(map[Symbol]StateID, len(tos))
		for sym, to := range tos {
			rewritten[sym] = representative[to]
		}
		transitions[from] = rewritten
	}

	return Canonicalize(newDFA(representative[d.start], transitions, accepting, d.alphabet))
}

// inverseTransitions lists every transition of the total transition
// function, missing ones spelled out as transitions to the dead state, sorted
// by target so the transitions into a block can be found by binary search.
func inverseTransitions(d *DFA, all *bitset.BitSet) []transition {
	symbols := d.alphabet.Symbols()
	result := make([]transition, 0, int(all.Count())*len(symbols))
	for i, ok := all.NextSet(0); ok; i, ok = all.NextSet(i + 1) {
		from := StateID(i)
		if from == DeadStateID {
			continue
		}
		tos := d.transitions[from]
		for _, sym := range symbols {
			to, ok := tos[sym]
			if !ok {
				to = DeadStateID
			}
			result = append(result, transition{from: from, sym: sym, to: to})
		}
	}
	slices.SortStableFunc(result, func(a, b transition) int {
		return cmp.Compare(a.to, b.to)
	})
	return result
}

// handleWorklist is a FIFO of pending blocks with O(1) membership tests.
// Removed handles stay queued and are skipped when popped.
type handleWorklist struct {
	queue   *deque.Deque
	pending map[SetHandle]bool
}

func newHandleWorklist() *handleWorklist {
	return &handleWorklist{
		queue:   deque.New(),
		pending: make(map[SetHandle]bool),
	}
}

func (w *handleWorklist) push(id SetHandle) {
	if w.pending[id] {
		return
	}
	w.pending[id] = true
	w.queue.PushBack(id)
}

func (w *handleWorklist) pop() (SetHandle, bool) {
	for w.queue.Len() > 0 {
		v, _ := w.queue.PopFront()
		id := v.(SetHandle)
		if w.pending[id] {
			delete(w.pending, id)
			return id, true
		}
	}
	return 0, false
}

func (w *handleWorklist) contains(id SetHandle) bool {
	return w.pending[id]
}

func (w *handleWorklist) remove(id SetHandle) {
	delete(w.pending, id)
}

// usesDeadStateAsReal reports whether state 0 is a real state, as in
// canonicalized automata.
func (d *DFA) usesDeadStateAsReal() bool {
	return d.start == DeadStateID || len(d.transitions[DeadStateID]) > 0 || d.accepting.Test(uint(DeadStateID))
}

// shifted renumbers every state by adding offset.
func (d *DFA) shifted(offset StateID) *DFA {
	transitions := make(map[StateID]map[Symbol]StateID, len(d.transitions))
	for from, tos := range d.transitions {
		moved := make(map[Symbol]StateID, len(tos))
		for sym, to := range tos {
			moved[sym] = to + offset
		}
		transitions[from+offset] = moved
	}
	accepting := bitset.New(d.accepting.Len() + uint(offset))
	for _, s := range d.AcceptingStates() {
		accepting.Set(uint(s + offset))
	}
	return newDFA(d.start+offset, transitions, accepting, d.alphabet)
}
