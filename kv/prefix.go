package kv

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/eventx/syncx"
	"sync"
)

var (
	ErrPrefixLocked  = errors.New("key prefix is locked")
	ErrInvalidPrefix = errors.New("invalid key prefix")
)

var _ KV = (*Prefixed)(nil)

// Prefixed namespaces every key and pattern of an underlying [KV] with a prefix.
// The prefix may be changed until [Prefixed.Lock] is called, after which it's fixed for the life of the value.
type Prefixed struct {
	impl KV

	mux    sync.RWMutex
	prefix string
	locked bool
}

// WithPrefix wraps impl so that all keys are namespaced with prefix.
// Passing a nil impl, or a prefix rejected by [ValidatePrefix], will panic.
func WithPrefix(impl KV, prefix string) *Prefixed {
	if impl == nil {
		panic("nil KV implementation")
	}
	if err := ValidatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Prefixed{impl: impl, prefix: prefix}
}

// ValidatePrefix returns an error wrapping [ErrInvalidPrefix] if prefix contains any of [GlobMeta].
// The prefix is placed in front of every pattern, so a metacharacter would match keys under other prefixes.
func ValidatePrefix(prefix string) error {
	if HasGlobMeta(prefix) {
		return fmt.Errorf("%w: '%s' contains one of '%s'", ErrInvalidPrefix, prefix, GlobMeta)
	}
	return nil
}

func (p *Prefixed) Prefix() string {
	return syncx.RLockFuncT(&p.mux, func() string {
		return p.prefix
	})
}

// SetPrefix changes the prefix used for subsequent operations.
// Returns [ErrPrefixLocked] if [Prefixed.Lock] has been called, or an error from [ValidatePrefix].
func (p *Prefixed) SetPrefix(prefix string) error {
	if err := ValidatePrefix(prefix); err != nil {
		return err
	}
	return syncx.LockFuncT(&p.mux, func() error {
		if p.locked {
			return fmt.Errorf("%w: can't change to '%s'", ErrPrefixLocked, prefix)
		}
		p.prefix = prefix
		return nil
	})
}

// Lock prevents further changes to the prefix. This is safe to call more than once.
func (p *Prefixed) Lock() {
	syncx.LockFunc(&p.mux, func() {
		p.locked = true
	})
}

func (p *Prefixed) key(key string) string {
	return p.Prefix() + key
}

func (p *Prefixed) Set(ctx context.Context, key, value string) error {
	return p.impl.Set(ctx, p.key(key), value)
}

func (p *Prefixed) Delete(ctx context.Context, key string) error {
	return p.impl.Delete(ctx, p.key(key))
}

func (p *Prefixed) MultiGet(ctx context.Context, pattern string) ([]string, error) {
	return p.impl.MultiGet(ctx, p.key(pattern))
}

func (p *Prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.impl.Get(ctx, p.key(key))
}

func (p *Prefixed) Exists(ctx context.Context, key string) (bool, error) {
	return p.impl.Exists(ctx, p.key(key))
}

func (p *Prefixed) MultiDelete(ctx context.Context, pattern string) (int, error) {
	return p.impl.MultiDelete(ctx, p.key(pattern))
}

func (p *Prefixed) Increment(ctx context.Context, key string, by int64) (int64, error) {
	return p.impl.Increment(ctx, p.key(key), by)
}

func (p *Prefixed) Decrement(ctx context.Context, key string, by int64) (int64, error) {
	return p.impl.Decrement(ctx, p.key(key), by)
}

func (p *Prefixed) Append(ctx context.Context, key, value string) error {
	return p.impl.Append(ctx, p.key(key), value)
}
