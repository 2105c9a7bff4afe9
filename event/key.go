package event

import (
	"fmt"
	"sync/atomic"
)

var scopeSeq atomic.Uint64

// Scope is an opaque handle for an object that owns instance events.
// Each call to [NewScope] returns a distinct Scope for the life of the process.
// The zero Scope is the global scope.
//
// Scopes are meaningless outside the process that created them, so nothing bound to a Scope is ever persisted.
type Scope struct {
	id uint64
}

func NewScope() Scope {
	return Scope{id: scopeSeq.Add(1)}
}

func (s Scope) IsGlobal() bool {
	return s.id == 0
}

// Key returns the [Key] for the named event within this Scope.
func (s Scope) Key(name string) Key {
	return Key{scope: s, name: name}
}

func (s Scope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return fmt.Sprintf("scope-%d", s.id)
}

// Key identifies the list of bindings that an event dispatches to.
type Key struct {
	scope Scope
	name  string
}

// Global returns the [Key] of a process-independent event.
func Global(name string) Key {
	return Key{name: name}
}

func (k Key) Name() string {
	return k.name
}

func (k Key) Scope() Scope {
	return k.scope
}

func (k Key) Scoped() bool {
	return !k.scope.IsGlobal()
}

// String renders the key as "<name>" for global events, and "<scopeID>#<name>" for instance events.
func (k Key) String() string {
	if k.Scoped() {
		return fmt.Sprintf("%d#%s", k.scope.id, k.name)
	}
	return k.name
}
