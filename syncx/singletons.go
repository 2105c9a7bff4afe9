package syncx

import "sync"

// Singletons lazily constructs at most one value per key, and returns the same value for every later request with that key.
// The zero value is not usable, use [NewSingletons] instead.
type Singletons[K comparable, V any] struct {
	factory func(key K) V

	mux    sync.Mutex
	values map[K]V
	order  []K
}

// NewSingletons creates a [Singletons] that uses factory to construct the value for a key on first use.
//
// Passing a nil factory will panic.
func NewSingletons[K comparable, V any](factory func(key K) V) *Singletons[K, V] {
	if factory == nil {
		panic("nil factory function")
	}
	return &Singletons[K, V]{
		factory: factory,
		values:  map[K]V{},
	}
}

// Get returns the value for key, constructing it if this is the first request for key.
// The factory is called while holding the lock, so it must not call back into the same [Singletons].
func (s *Singletons[K, V]) Get(key K) V {
	return LockFuncT(&s.mux, func() V {
		if val, ok := s.values[key]; ok {
			return val
		}
		val := s.factory(key)
		s.values[key] = val
		s.order = append(s.order, key)
		return val
	})
}

// Peek returns the value for key only if it's already been constructed.
func (s *Singletons[K, V]) Peek(key K) (V, bool) {
	return LockFuncTOk(&s.mux, func() (V, bool) {
		val, ok := s.values[key]
		return val, ok
	})
}

// Each calls fn for every constructed value, in construction order.
// A snapshot of the values is taken first, so fn may safely call [Singletons.Get].
func (s *Singletons[K, V]) Each(fn func(key K, val V)) {
	var (
		keys []K
		vals []V
	)
	LockFunc(&s.mux, func() {
		keys = make([]K, len(s.order))
		vals = make([]V, len(s.order))
		for i, key := range s.order {
			keys[i] = key
			vals[i] = s.values[key]
		}
	})
	for i := range keys {
		fn(keys[i], vals[i])
	}
}

// Len returns the number of values constructed so far.
func (s *Singletons[K, V]) Len() int {
	return LockFuncT(&s.mux, func() int {
		return len(s.values)
	})
}
