package complgen

import "github.com/bits-and-blooms/bitset"

// IntSet is a hashable set of non-negative integers.
type IntSet interface {
	Hashable

	GetArray() []int

	Size() int

	Contains(v int) bool
}

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet is an immutable bitset whose hash is computed once. Two frozen
// sets are equal when they hold the same members, whatever the capacity of
// the underlying bitsets.
type FrozenIntSet struct {
	bits     *bitset.BitSet
	size     int
	min, max int
	hashCode uint64
}

// NewFrozenIntSet freezes bits. The caller must not modify bits afterwards.
func NewFrozenIntSet(bits *bitset.BitSet) *FrozenIntSet {
	if bits == nil {
		bits = bitset.New(0)
	}
	f := &FrozenIntSet{bits: bits, min: -1, max: -1}
	h := uint64(0)
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		if f.min < 0 {
			f.min = int(i)
		}
		f.max = int(i)
		f.size++
		h += uint64(uint32(mix(int(i))))
	}
	f.hashCode = mix64(h + uint64(f.size))
	return f
}

// NewFrozenIntSetOf builds a frozen set from explicit members.
func NewFrozenIntSetOf(values ...int) *FrozenIntSet {
	bits := bitset.New(0)
	for _, v := range values {
		bits.Set(uint(v))
	}
	return NewFrozenIntSet(bits)
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

func (f *FrozenIntSet) Equals(other Hashable) bool {
	o, ok := other.(*FrozenIntSet)
	if !ok {
		return false
	}
	if f == nil || o == nil {
		return f == o
	}
	if f == o {
		return true
	}
	if f.hashCode != o.hashCode || f.size != o.size {
		return false
	}
	return f.bits.SymmetricDifferenceCardinality(o.bits) == 0
}

// GetArray returns the members in ascending order.
func (f *FrozenIntSet) GetArray() []int {
	values := make([]int, 0, f.size)
	for i, ok := f.bits.NextSet(0); ok; i, ok = f.bits.NextSet(i + 1) {
		values = append(values, int(i))
	}
	return values
}

func (f *FrozenIntSet) Size() int {
	return f.size
}

func (f *FrozenIntSet) Contains(v int) bool {
	return v >= 0 && f.bits.Test(uint(v))
}

// Bits exposes the underlying bitset for read-only set algebra.
func (f *FrozenIntSet) Bits() *bitset.BitSet {
	return f.bits
}

// Min returns the smallest member, false when the set is empty.
func (f *FrozenIntSet) Min() (int, bool) {
	return f.min, f.size > 0
}

// Max returns the largest member, false when the set is empty.
func (f *FrozenIntSet) Max() (int, bool) {
	return f.max, f.size > 0
}
