package complgen

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
)

func TestIntSetPool_Intern(t *testing.T) {
	pool := NewIntSetPool()

	a := pool.Intern(bitset.New(8).Set(1).Set(4))
	b := pool.Intern(bitset.New(256).Set(4).Set(1))
	c := pool.Intern(bitset.New(8).Set(1))
	empty := pool.Intern(bitset.New(0))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, c, empty)
	assert.Equal(t, 3, pool.Len())

	assert.Equal(t, []int{1, 4}, pool.Get(a).GetArray())
	assert.Equal(t, []int{1}, pool.Get(c).GetArray())
	assert.Equal(t, 0, pool.Get(empty).Size())
}

func TestIntSetPool_HandlesAreDense(t *testing.T) {
	pool := NewIntSetPool()
	for i := 0; i < 50; i++ {
		assert.Equal(t, SetHandle(i), pool.Intern(bitset.New(0).Set(uint(i))))
	}
	for i := 0; i < 50; i++ {
		assert.Equal(t, SetHandle(i), pool.Intern(bitset.New(0).Set(uint(i))))
	}
	assert.Equal(t, 50, pool.Len())
}
