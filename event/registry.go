package event

import (
	"context"
	"github.com/saylorsolutions/eventx/kv"
	"github.com/saylorsolutions/eventx/kv/memkv"
	"github.com/saylorsolutions/eventx/slogx"
	"github.com/saylorsolutions/eventx/structures/set"
	"github.com/saylorsolutions/eventx/syncx"
	"log/slog"
	"slices"
	"sync"
)

// ErrorPolicy decides what happens when a handler returns an error other than [ErrHalt].
type ErrorPolicy int

const (
	HaltOnError     ErrorPolicy = iota // HaltOnError stops dispatch and returns the first handler error.
	ContinueOnError                    // ContinueOnError logs the error, keeps dispatching, and returns all errors joined.
)

// Option configures a [Registry].
type Option func(r *Registry)

// WithFunctions sets the table used to resolve named bindings.
func WithFunctions(fns *Functions) Option {
	return func(r *Registry) {
		if fns != nil {
			r.fns = fns
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(r *Registry) {
		r.policy = policy
	}
}

// WithoutStore creates a memory-only [Registry], where persisting returns [ErrNoStore].
func WithoutStore() Option {
	return func(r *Registry) {
		r.store = nil
	}
}

// Registry holds the bindings for a namespace of events.
//
// Global events lazily pull their persisted bindings from the store the first time they're triggered, and only once per Registry.
// A fresh Registry is the in-process equivalent of a new process run.
//
// All methods are safe for concurrent use.
// Handlers run without the internal lock held, so they may bind, unbind, and trigger other events.
type Registry struct {
	store  kv.Store
	fns    *Functions
	log    *slog.Logger
	policy ErrorPolicy

	mux      sync.Mutex
	bindings map[Key][]Binding
	loaded   set.Set[string]
}

// NewRegistry creates a [Registry] that persists bindings to store.
// A nil store is replaced with a new in-memory store, so persisted bindings last as long as the Registry.
// Use [WithoutStore] to disable persistence entirely.
func NewRegistry(store kv.Store, opts ...Option) *Registry {
	if store == nil {
		store = memkv.New()
	}
	r := &Registry{
		store:    store,
		fns:      NewFunctions(),
		log:      slogx.Nop(),
		bindings: map[Key][]Binding{},
		loaded:   set.New[string](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Functions returns the table used to resolve named bindings.
func (r *Registry) Functions() *Functions {
	return r.fns
}

// Load merges the persisted bindings of the global event name into memory, if it hasn't been done already.
// Persisted bindings are placed ahead of bindings registered in memory before the load, in the order the store returns them.
//
// A store failure leaves the event unloaded so that a later call can try again.
func (r *Registry) Load(ctx context.Context, name string) error {
	return syncx.LockFuncT(&r.mux, func() error {
		return r.load(ctx, name)
	})
}

// IsLoaded reports whether the persisted bindings of name have been merged into memory.
func (r *Registry) IsLoaded(name string) bool {
	return syncx.LockFuncT(&r.mux, func() bool {
		return r.loaded.Has(name)
	})
}

func (r *Registry) load(ctx context.Context, name string) error {
	if r.loaded.Has(name) {
		return nil
	}
	// Nothing can have been persisted for names that can't be stored.
	if r.store == nil || ValidateEventName(name) != nil {
		r.loaded.Add(name)
		return nil
	}
	vals, err := r.store.MultiGet(ctx, StoragePattern(name))
	if err != nil {
		return &storeError{op: "load", event: name, err: err}
	}
	persisted := make([]Binding, 0, len(vals))
	for _, val := range vals {
		if len(val) == 0 {
			r.log.Warn("Skipping empty persisted binding", "event", name)
			continue
		}
		persisted = append(persisted, Deserialize(val))
	}
	key := Global(name)
	if len(persisted) > 0 {
		r.bindings[key] = append(persisted, r.bindings[key]...)
	}
	r.loaded.Add(name)
	r.log.Debug("Loaded persisted bindings", "event", name, "count", len(persisted))
	return nil
}

// persistBlocker returns the reason that b can't be persisted for key, if any.
func (r *Registry) persistBlocker(key Key, b Binding) error {
	if _, ok := b.(*ClosureBinding); ok {
		return ErrCannotPersistClosure
	}
	if key.Scoped() {
		return ErrCannotPersistInstanceEvent
	}
	if _, err := b.persisted(); err != nil {
		return err
	}
	if err := ValidateEventName(key.Name()); err != nil {
		return err
	}
	if r.store == nil {
		return ErrNoStore
	}
	return nil
}

// Bind appends b to the bindings of key. Binding the same handler twice causes it to run twice.
//
// If persist is true, b is also written to the store so that later registries load it.
// When b or key can't be persisted, b is still bound in memory and the reason is returned, which is one of
// [ErrCannotPersistClosure], [ErrCannotPersistInstanceEvent], [ErrCannotPersistInstanceBinding], [ErrInvalidBindingName], [ErrInvalidEventName], or [ErrNoStore].
// Store failures wrap [ErrStore].
//
// Panics if b is nil.
func (r *Registry) Bind(ctx context.Context, key Key, b Binding, persist bool) error {
	if b == nil {
		panic("nil binding")
	}
	if !persist {
		r.bindMemory(key, b)
		return nil
	}
	return syncx.LockFuncT(&r.mux, func() error {
		if blocked := r.persistBlocker(key, b); blocked != nil {
			r.bindings[key] = append(r.bindings[key], b)
			return blocked
		}
		// Loading first keeps the new binding from being loaded a second time by a later trigger.
		if err := r.load(ctx, key.Name()); err != nil {
			return err
		}
		r.bindings[key] = append(r.bindings[key], b)
		serialized, _ := b.persisted()
		if err := r.store.Set(ctx, StorageKey(key.Name(), serialized), serialized); err != nil {
			return &storeError{op: "persist binding for", event: key.Name(), err: err}
		}
		r.log.Debug("Persisted binding", "event", key.Name(), "binding", serialized)
		return nil
	})
}

// BindGlobal binds b to the global event name. See [Registry.Bind].
func (r *Registry) BindGlobal(ctx context.Context, name string, b Binding, persist bool) error {
	return r.Bind(ctx, Global(name), b, persist)
}

// BindScoped binds b to the event name of the object identified by scope.
// Instance events are never persisted.
//
// Panics if b is nil.
func (r *Registry) BindScoped(scope Scope, name string, b Binding) {
	if b == nil {
		panic("nil binding")
	}
	r.bindMemory(scope.Key(name), b)
}

func (r *Registry) bindMemory(key Key, b Binding) {
	syncx.LockFunc(&r.mux, func() {
		r.bindings[key] = append(r.bindings[key], b)
	})
}

// Unbind removes every binding of key that is the same as b. Missing keys and bindings are ignored.
//
// If persist is true and b could have been persisted for key, the stored record is deleted as well.
// Bindings that could never have been persisted skip the store without an error.
func (r *Registry) Unbind(ctx context.Context, key Key, b Binding, persist bool) error {
	return syncx.LockFuncT(&r.mux, func() error {
		r.unbindMemory(key, b)
		if !persist || b == nil || r.persistBlocker(key, b) != nil {
			return nil
		}
		serialized, _ := b.persisted()
		if err := r.store.Delete(ctx, StorageKey(key.Name(), serialized)); err != nil {
			return &storeError{op: "delete binding for", event: key.Name(), err: err}
		}
		r.log.Debug("Deleted persisted binding", "event", key.Name(), "binding", serialized)
		return nil
	})
}

// UnbindGlobal removes b from the global event name. See [Registry.Unbind].
func (r *Registry) UnbindGlobal(ctx context.Context, name string, b Binding, persist bool) error {
	return r.Unbind(ctx, Global(name), b, persist)
}

// UnbindScoped removes b from the event name of the object identified by scope.
func (r *Registry) UnbindScoped(scope Scope, name string, b Binding) {
	syncx.LockFunc(&r.mux, func() {
		r.unbindMemory(scope.Key(name), b)
	})
}

// unbindMemory must be called with the lock held.
func (r *Registry) unbindMemory(key Key, b Binding) {
	list, ok := r.bindings[key]
	if !ok {
		return
	}
	list = slices.DeleteFunc(list, func(bound Binding) bool {
		return bound == b
	})
	if len(list) == 0 {
		delete(r.bindings, key)
		return
	}
	r.bindings[key] = list
}

// Bindings returns a copy of the bindings currently held in memory for key, in dispatch order.
func (r *Registry) Bindings(key Key) []Binding {
	return syncx.LockFuncT(&r.mux, func() []Binding {
		return slices.Clone(r.bindings[key])
	})
}

// Persisted reads the bindings stored for the global event name without changing the in-memory state.
func (r *Registry) Persisted(ctx context.Context, name string) ([]Binding, error) {
	if r.store == nil {
		return nil, ErrNoStore
	}
	if err := ValidateEventName(name); err != nil {
		return nil, err
	}
	vals, err := r.store.MultiGet(ctx, StoragePattern(name))
	if err != nil {
		return nil, &storeError{op: "read", event: name, err: err}
	}
	bindings := make([]Binding, 0, len(vals))
	for _, val := range vals {
		if len(val) == 0 {
			continue
		}
		bindings = append(bindings, Deserialize(val))
	}
	return bindings, nil
}

// Flush forgets all in-memory bindings and loaded state, so the next trigger of a global event loads it again.
// The store isn't changed.
func (r *Registry) Flush() {
	syncx.LockFunc(&r.mux, func() {
		r.bindings = map[Key][]Binding{}
		r.loaded = set.New[string]()
	})
}
