package complgen

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/ef-ds/deque"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Canonicalize returns a copy of d reduced to the states that matter and
// renumbered densely from 0:
//
//   - transitions into states that cannot reach an accepting state are
//     dropped, so no non-accepting dead end survives;
//   - only states reachable from the starting state are kept;
//   - ids are assigned breadth-first from the starting state (which becomes
//     0), symbols visited in alphabet order.
//
// The result no longer follows the dead-state convention: a transition that
// is not recorded does not exist.
func Canonicalize(d *DFA) *DFA {
	live := d.liveStates()

	newFromOld := orderedmap.New[StateID, StateID]()
	newFromOld.Set(d.start, 0)
	queue := deque.New()
	queue.PushBack(d.start)
	for queue.Len() > 0 {
		v, _ := queue.PopFront()
		from := v.(StateID)
		for _, sym := range d.sortedSymbols(from) {
			to := d.transitions[from][sym]
			if !live.Test(uint(to)) {
				continue
			}
			if _, seen := newFromOld.Get(to); !seen {
				newFromOld.Set(to, StateID(newFromOld.Len()))
				queue.PushBack(to)
			}
		}
	}

	transitions := make(map[StateID]map[Symbol]StateID, newFromOld.Len())
	accepting := bitset.New(uint(newFromOld.Len()))
	for pair := newFromOld.Oldest(); pair != nil; pair = pair.Next() {
		old, renumbered := pair.Key, pair.Value
		if d.IsAccepting(old) {
			accepting.Set(uint(renumbered))
		}
		for sym, to := range d.transitions[old] {
			target, ok := newFromOld.Get(to)
			if !ok {
				continue
			}
			tos, ok := transitions[renumbered]
			if !ok {
				tos = make(map[Symbol]StateID)
				transitions[renumbered] = tos
			}
			tos[sym] = target
		}
	}

	return newDFA(0, transitions, accepting, d.alphabet)
}

// liveStates returns the states from which an accepting state is reachable
// through recorded transitions.
func (d *DFA) liveStates() *bitset.BitSet {
	predecessors := make(map[StateID][]StateID)
	for from, tos := range d.transitions {
		for _, to := range tos {
			predecessors[to] = append(predecessors[to], from)
		}
	}

	live := d.accepting.Clone()
	queue := deque.New()
	for _, s := range d.AcceptingStates() {
		queue.PushBack(s)
	}
	for queue.Len() > 0 {
		v, _ := queue.PopFront()
		for _, from := range predecessors[v.(StateID)] {
			if !live.Test(uint(from)) {
				live.Set(uint(from))
				queue.PushBack(from)
			}
		}
	}
	return live
}
