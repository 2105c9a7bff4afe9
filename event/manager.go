package event

import (
	"github.com/saylorsolutions/eventx/kv"
	"github.com/saylorsolutions/eventx/kv/memkv"
	"github.com/saylorsolutions/eventx/syncx"
)

const defaultRegistry = ""

// Manager hands out a default [Registry] and any number of named registries, each constructed once on first use.
// It's intended to be created once at an application's composition root and passed to the subsystems that need events.
//
// Every registry shares the same store and options, but has its own bindings and loaded state.
// Persisted keys are namespaced by event name rather than registry name, so subsystems that need isolation in the store should use distinct event names.
type Manager struct {
	registries *syncx.Singletons[string, *Registry]
}

// NewManager creates a [Manager] whose registries persist to store.
// A nil store is replaced with one in-memory store that all of the Manager's registries share.
func NewManager(store kv.Store, opts ...Option) *Manager {
	if store == nil {
		store = memkv.New()
	}
	return &Manager{
		registries: syncx.NewSingletons(func(string) *Registry {
			return NewRegistry(store, opts...)
		}),
	}
}

// Default returns the default [Registry]. The empty name refers to the same Registry in [Manager.Named].
func (m *Manager) Default() *Registry {
	return m.registries.Get(defaultRegistry)
}

// Named returns the [Registry] for name, constructing it if this is the first request.
func (m *Manager) Named(name string) *Registry {
	return m.registries.Get(name)
}

// Flush calls [Registry.Flush] on every registry constructed so far. Stored bindings are untouched.
func (m *Manager) Flush() {
	m.registries.Each(func(_ string, r *Registry) {
		r.Flush()
	})
}
