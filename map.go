package complgen

// Hashable is implemented by keys compared by content rather than identity.
// Equal values must report equal hashes.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap interns Hashable keys: position sets during construction,
// partition blocks during minimization, inputs in an alphabet. Keys are never
// removed. A HashMap is not safe for concurrent use.
type HashMap[T any] struct {
	buckets [][]entry[T]
	mask    uint64
	count   int
}

type entry[T any] struct {
	hash  uint64
	key   Hashable
	value T
}

type hashMapOptions struct {
	capacity int
}

type HashMapOption func(*hashMapOptions)

// WithCapacity sizes the bucket array for about capacity keys.
func WithCapacity(capacity int) HashMapOption {
	return func(o *hashMapOptions) {
		o.capacity = capacity
	}
}

// NewHashMap creates a map whose bucket count is the requested capacity
// rounded up to a power of two.
func NewHashMap[T any](options ...HashMapOption) *HashMap[T] {
	opts := hashMapOptions{capacity: 1}
	for _, opt := range options {
		opt(&opts)
	}
	n := 1
	for n < opts.capacity {
		n <<= 1
	}
	return &HashMap[T]{
		buckets: make([][]entry[T], n),
		mask:    uint64(n - 1),
	}
}

func (m *HashMap[T]) find(key Hashable) (uint64, int) {
	h := key.Hash()
	for i, e := range m.buckets[h&m.mask] {
		if e.hash == h && e.key.Equals(key) {
			return h, i
		}
	}
	return h, -1
}

// Get returns the value stored under a key equal to key.
func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	h, i := m.find(key)
	if i < 0 {
		var zero T
		return zero, false
	}
	return m.buckets[h&m.mask][i].value, true
}

// Set inserts or replaces the value stored under key.
func (m *HashMap[T]) Set(key Hashable, value T) {
	h, i := m.find(key)
	if i >= 0 {
		m.buckets[h&m.mask][i].value = value
		return
	}
	m.insert(h, key, value)
}

// GetOrSet returns the value stored under key and true. When key is absent
// it stores newValue() and returns it with false; newValue runs at most once.
func (m *HashMap[T]) GetOrSet(key Hashable, newValue func() T) (T, bool) {
	h, i := m.find(key)
	if i >= 0 {
		return m.buckets[h&m.mask][i].value, true
	}
	value := newValue()
	m.insert(h, key, value)
	return value, false
}

func (m *HashMap[T]) insert(h uint64, key Hashable, value T) {
	m.buckets[h&m.mask] = append(m.buckets[h&m.mask], entry[T]{hash: h, key: key, value: value})
	m.count++
	// keep the load under 3/4
	if 4*m.count > 3*len(m.buckets) {
		m.grow()
	}
}

func (m *HashMap[T]) grow() {
	buckets := make([][]entry[T], 2*len(m.buckets))
	mask := uint64(len(buckets) - 1)
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			buckets[e.hash&mask] = append(buckets[e.hash&mask], e)
		}
	}
	m.buckets = buckets
	m.mask = mask
}
