package syncx

import (
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
)

func TestSingletons_Get(t *testing.T) {
	var calls int
	s := NewSingletons(func(key string) *int {
		calls++
		val := len(key)
		return &val
	})
	a := s.Get("abc")
	b := s.Get("abc")
	assert.Same(t, a, b, "Same key should return the same value")
	assert.Equal(t, 1, calls)

	c := s.Get("de")
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, *c)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, s.Len())
}

func TestSingletons_Get_Concurrent(t *testing.T) {
	var (
		calls int
		wg    sync.WaitGroup
	)
	s := NewSingletons(func(key int) int {
		calls++
		return key * 2
	})
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 10, s.Get(5))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls, "Factory should only run once per key")
}

func TestSingletons_Peek(t *testing.T) {
	s := NewSingletons(func(key string) string {
		return key + "!"
	})
	_, ok := s.Peek("a")
	assert.False(t, ok, "Peek shouldn't construct a value")
	assert.Equal(t, 0, s.Len())
	s.Get("a")
	val, ok := s.Peek("a")
	assert.True(t, ok)
	assert.Equal(t, "a!", val)
}

func TestSingletons_Each(t *testing.T) {
	s := NewSingletons(func(key string) string {
		return key
	})
	s.Get("c")
	s.Get("a")
	s.Get("b")
	var seen []string
	s.Each(func(key string, val string) {
		assert.Equal(t, key, val)
		seen = append(seen, key)
		s.Get(key)
	})
	assert.Equal(t, []string{"c", "a", "b"}, seen, "Should iterate in construction order")
}

func TestNewSingletons_NilFactory(t *testing.T) {
	assert.Panics(t, func() {
		NewSingletons[string, int](nil)
	})
}
