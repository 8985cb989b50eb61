package collection

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	ErrDuplicateKey    = errors.New("collection: key already present")
	ErrKeyNotFound     = errors.New("collection: key not found")
	ErrIndexOutOfRange = errors.New("collection: index out of range")
	ErrInvalidKey      = errors.New("collection: key index is negative")
)

const (
	initialCapacity = 4
	absent          = -1
)

// SparseSet maps bounded non-negative integer keys to values with O(1)
// add, remove and lookup. Values live in a dense slice without holes, so a
// scan touches exactly Len() entries.
//
// Methods hand out dense indices instead of pointers. An index stays valid
// until the next Remove or Clear.
type SparseSet[K any, V any] struct {
	index  func(K) int
	onMove func(from, to int)

	forward []int
	reverse []int
	keys    []K
	dense   []V
	count   int
}

// New creates an empty set whose keys are mapped to integer slots by index.
func New[K any, V any](index func(K) int) *SparseSet[K, V] {
	forward := make([]int, initialCapacity)
	fill(forward, absent)
	reverse := make([]int, initialCapacity)
	fill(reverse, absent)
	return &SparseSet[K, V]{
		index:   index,
		forward: forward,
		reverse: reverse,
		keys:    make([]K, initialCapacity),
		dense:   make([]V, initialCapacity),
	}
}

// NewIntKeyed creates a set keyed directly by an integer type.
func NewIntKeyed[K constraints.Integer, V any]() *SparseSet[K, V] {
	return New[K, V](func(k K) int { return int(k) })
}

// OnMove registers a hook called with (from, to) whenever Remove relocates a
// value inside the dense slice.
func (s *SparseSet[K, V]) OnMove(fn func(from, to int)) {
	if s == nil {
		return
	}
	s.onMove = fn
}

// Len returns the number of live entries.
func (s *SparseSet[K, V]) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Add inserts value under key and returns its dense index.
func (s *SparseSet[K, V]) Add(key K, value V) (int, error) {
	if s == nil {
		return absent, ErrInvalidKey
	}
	k := s.index(key)
	if k < 0 {
		return absent, ErrInvalidKey
	}
	if _, ok := s.lookup(k); ok {
		return absent, ErrDuplicateKey
	}
	if k >= len(s.forward) {
		s.forward = growFilled(s.forward, k, absent)
	}
	if s.count >= len(s.dense) {
		s.reverse = growFilled(s.reverse, s.count, absent)
		s.keys = resize(s.keys, len(s.reverse))
		s.dense = resize(s.dense, len(s.reverse))
	}

	i := s.count
	s.keys[i] = key
	s.dense[i] = value
	s.reverse[i] = k
	s.forward[k] = i
	s.count++
	return i, nil
}

// Set stores value under key, adding the key if needed.
func (s *SparseSet[K, V]) Set(key K, value V) int {
	if s == nil {
		return absent
	}
	i := s.GetOrAdd(key)
	if i != absent {
		s.dense[i] = value
	}
	return i
}

// GetOrAdd returns the dense index for key, adding a zero value first if the
// key is absent. Negative key indices yield -1.
func (s *SparseSet[K, V]) GetOrAdd(key K) int {
	if s == nil {
		return absent
	}
	if i, ok := s.Index(key); ok {
		return i
	}
	var zero V
	i, err := s.Add(key, zero)
	if err != nil {
		return absent
	}
	return i
}

// Remove deletes key, moving the last dense entry into the freed slot.
// It reports whether key was present.
func (s *SparseSet[K, V]) Remove(key K) bool {
	if s == nil {
		return false
	}
	k := s.index(key)
	i, ok := s.lookup(k)
	if !ok {
		return false
	}

	last := s.count - 1
	if i != last {
		s.keys[i] = s.keys[last]
		s.dense[i] = s.dense[last]
		s.reverse[i] = s.reverse[last]
		s.forward[s.reverse[i]] = i
		if s.onMove != nil {
			s.onMove(last, i)
		}
	}

	var zeroK K
	var zeroV V
	s.keys[last] = zeroK
	s.dense[last] = zeroV
	s.reverse[last] = absent
	s.forward[k] = absent
	s.count--
	return true
}

// Has reports whether key is present.
func (s *SparseSet[K, V]) Has(key K) bool {
	_, ok := s.Index(key)
	return ok
}

// Index returns the dense index of key.
func (s *SparseSet[K, V]) Index(key K) (int, bool) {
	if s == nil {
		return absent, false
	}
	return s.lookup(s.index(key))
}

// Get returns the value stored under key.
func (s *SparseSet[K, V]) Get(key K) (V, error) {
	i, ok := s.Index(key)
	if !ok {
		var zero V
		return zero, ErrKeyNotFound
	}
	return s.dense[i], nil
}

// At returns the key stored at dense index i.
func (s *SparseSet[K, V]) At(i int) (K, error) {
	if !s.inRange(i) {
		var zero K
		return zero, ErrIndexOutOfRange
	}
	return s.keys[i], nil
}

// GetAt returns the value stored at dense index i.
func (s *SparseSet[K, V]) GetAt(i int) (V, error) {
	if !s.inRange(i) {
		var zero V
		return zero, ErrIndexOutOfRange
	}
	return s.dense[i], nil
}

// Update mutates the value at dense index i in place.
func (s *SparseSet[K, V]) Update(i int, fn func(v *V)) error {
	if !s.inRange(i) {
		return ErrIndexOutOfRange
	}
	fn(&s.dense[i])
	return nil
}

// Keys returns the live dense keys. The slice is only valid until the next
// mutation and must not be modified.
func (s *SparseSet[K, V]) Keys() []K {
	if s == nil {
		return nil
	}
	return s.keys[:s.count]
}

// Values returns the live dense values. The slice is only valid until the
// next mutation.
func (s *SparseSet[K, V]) Values() []V {
	if s == nil {
		return nil
	}
	return s.dense[:s.count]
}

// Clear removes every entry. Every forward slot is invalidated so that a
// stale slot never aliases a key that has not been re-added. Capacity is kept.
func (s *SparseSet[K, V]) Clear() {
	if s == nil {
		return
	}
	clear(s.keys[:s.count])
	clear(s.dense[:s.count])
	fill(s.reverse[:s.count], absent)
	fill(s.forward, absent)
	s.count = 0
}

func (s *SparseSet[K, V]) lookup(k int) (int, bool) {
	if k < 0 || k >= len(s.forward) {
		return absent, false
	}
	i := s.forward[k]
	if i < 0 || i >= s.count {
		return absent, false
	}
	return i, true
}

func (s *SparseSet[K, V]) inRange(i int) bool {
	return s != nil && i >= 0 && i < s.count
}

// growFilled doubles the length of a until index fits and fills the new
// tail with value.
func growFilled(a []int, index int, value int) []int {
	n := max(len(a), 1)
	for n <= index {
		n *= 2
	}
	out := make([]int, n)
	copy(out, a)
	fill(out[len(a):], value)
	return out
}

func resize[T any](a []T, n int) []T {
	if n <= len(a) {
		return a
	}
	out := make([]T, n)
	copy(out, a)
	return out
}

func fill(a []int, value int) {
	for i := range a {
		a[i] = value
	}
}
