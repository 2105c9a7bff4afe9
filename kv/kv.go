/*
Package kv describes the namespaced string-to-string store that persisted event bindings live in.

The event package only needs [Store], which is the minimal capability for writing, deleting, and pattern-reading keys.
Backends in the sub-packages implement the fuller [KV] capability, which adds point reads, counters, and appends.

Patterns are glob-style, where '*' matches any run of characters and '?' matches exactly one character.
Keys that contain glob metacharacters can't be reliably matched, so callers should avoid them.
*/
package kv

import (
	"context"
	"errors"
	"github.com/tidwall/match"
	"strings"
)

// GlobMeta holds the characters with special meaning in a pattern.
const GlobMeta = "*?[]\\"

var (
	ErrNotFound   = errors.New("key not found")
	ErrNotInteger = errors.New("value is not an integer")
)

// Store is the capability required to persist and load event bindings.
type Store interface {
	// Set writes value at key, replacing any existing value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// MultiGet returns the values of all keys matching pattern, in the backend's stable order.
	MultiGet(ctx context.Context, pattern string) ([]string, error)
}

// KV is the full key-value capability offered by the backends.
type KV interface {
	Store
	// Get returns the value at key, or an error wrapping [ErrNotFound].
	Get(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	// MultiDelete removes all keys matching pattern and reports how many were removed.
	MultiDelete(ctx context.Context, pattern string) (int, error)
	// Increment adds by to the integer stored at key, treating a missing key as 0.
	// An error wrapping [ErrNotInteger] is returned if the existing value can't be parsed.
	Increment(ctx context.Context, key string, by int64) (int64, error)
	// Decrement is the same as Increment with the sign of by flipped.
	Decrement(ctx context.Context, key string, by int64) (int64, error)
	// Append concatenates value to the existing value at key, creating it if needed.
	Append(ctx context.Context, key, value string) error
}

// HasGlobMeta reports whether s contains any of [GlobMeta].
func HasGlobMeta(s string) bool {
	return strings.ContainsAny(s, GlobMeta)
}

// Match reports whether key matches the glob pattern.
func Match(pattern, key string) bool {
	return match.Match(key, pattern)
}
