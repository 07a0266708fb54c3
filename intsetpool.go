package complgen

import "github.com/bits-and-blooms/bitset"

// SetHandle identifies an interned set inside an IntSetPool. Equal sets
// always share one handle, so handles can be compared and hashed directly.
type SetHandle int

// IntSetPool deduplicates integer sets. Every distinct set is frozen and
// hashed once; refinement code passes handles around and resolves them only
// to test membership or intersect.
type IntSetPool struct {
	pool      []*FrozenIntSet
	idFromSet *HashMap[SetHandle]
}

func NewIntSetPool() *IntSetPool {
	return &IntSetPool{
		idFromSet: NewHashMap[SetHandle](WithCapacity(16)),
	}
}

// Intern returns the handle of the set equal to bits, registering it when
// unseen. bits must not be modified afterwards.
func (p *IntSetPool) Intern(bits *bitset.BitSet) SetHandle {
	set := NewFrozenIntSet(bits)
	id, _ := p.idFromSet.GetOrSet(set, func() SetHandle {
		p.pool = append(p.pool, set)
		return SetHandle(len(p.pool) - 1)
	})
	return id
}

// Get resolves a handle. Handles not issued by this pool panic.
func (p *IntSetPool) Get(id SetHandle) *FrozenIntSet {
	return p.pool[id]
}

func (p *IntSetPool) Len() int {
	return len(p.pool)
}
