// Package memkv provides an in-memory [kv.KV] that keeps keys in insertion order.
// It's mostly useful for tests, and for short-lived processes that share one registry.
package memkv

import (
	"context"
	"fmt"
	"github.com/saylorsolutions/eventx/kv"
	"github.com/saylorsolutions/eventx/syncx"
	"slices"
	"strconv"
	"sync"
)

var _ kv.KV = (*Store)(nil)

// Store is a concurrency-safe, insertion-ordered map of strings.
// Overwriting a key keeps its original position.
type Store struct {
	mux    sync.RWMutex
	values map[string]string
	keys   []string
}

func New() *Store {
	return &Store{
		values: map[string]string{},
	}
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	syncx.LockFunc(&s.mux, func() {
		s.set(key, value)
	})
	return nil
}

func (s *Store) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	syncx.LockFunc(&s.mux, func() {
		s.remove(func(k string) bool {
			return k == key
		})
	})
	return nil
}

func (s *Store) remove(matches func(key string) bool) int {
	var removed int
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool {
		if !matches(k) {
			return false
		}
		delete(s.values, k)
		removed++
		return true
	})
	return removed
}

func (s *Store) MultiGet(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return syncx.RLockFuncT(&s.mux, func() []string {
		var vals []string
		for _, key := range s.keys {
			if kv.Match(pattern, key) {
				vals = append(vals, s.values[key])
			}
		}
		return vals
	}), nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mux.RLock()
	defer s.mux.RUnlock()
	val, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", kv.ErrNotFound, key)
	}
	return val, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return syncx.RLockFuncT(&s.mux, func() bool {
		_, ok := s.values[key]
		return ok
	}), nil
}

func (s *Store) MultiDelete(ctx context.Context, pattern string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return syncx.LockFuncT(&s.mux, func() int {
		return s.remove(func(k string) bool {
			return kv.Match(pattern, k)
		})
	}), nil
}

func (s *Store) Increment(ctx context.Context, key string, by int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return syncx.LockFuncTErr(&s.mux, func() (int64, error) {
		var cur int64
		if val, ok := s.values[key]; ok {
			parsed, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %s", kv.ErrNotInteger, key)
			}
			cur = parsed
		}
		cur += by
		s.set(key, strconv.FormatInt(cur, 10))
		return cur, nil
	})
}

func (s *Store) Decrement(ctx context.Context, key string, by int64) (int64, error) {
	return s.Increment(ctx, key, -by)
}

func (s *Store) Append(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	syncx.LockFunc(&s.mux, func() {
		s.set(key, s.values[key]+value)
	})
	return nil
}

// Len returns the number of keys currently stored.
func (s *Store) Len() int {
	return syncx.RLockFuncT(&s.mux, func() int {
		return len(s.keys)
	})
}
