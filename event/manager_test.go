package event

import (
	"context"
	"github.com/saylorsolutions/eventx/kv/memkv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestManager_Default(t *testing.T) {
	m := NewManager(nil)
	assert.Same(t, m.Default(), m.Default())
	assert.Same(t, m.Default(), m.Named(""))
}

func TestManager_DefaultStore(t *testing.T) {
	ctx := context.Background()
	var calls []string
	fns := NewFunctions().Register("audit", recordCall(&calls, "audit"))
	m := NewManager(nil, WithFunctions(fns))
	require.NoError(t, m.Default().BindGlobal(ctx, "save", Func("audit"), true), "A default store should accept persisted bindings")

	persisted, err := m.Named("reader").Persisted(ctx, "save")
	require.NoError(t, err)
	assert.Equal(t, []Binding{Func("audit")}, persisted, "Registries of one Manager share the default store")

	_, err = m.Named("reader").Trigger(ctx, "save", nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"audit"}, calls)
}

func TestManager_Named(t *testing.T) {
	ctx := context.Background()
	var calls []string
	m := NewManager(memkv.New())
	billing, shipping := m.Named("billing"), m.Named("shipping")
	assert.Same(t, billing, m.Named("billing"))
	assert.NotSame(t, billing, shipping)
	assert.NotSame(t, billing, m.Default())

	require.NoError(t, billing.BindGlobal(ctx, "paid", Closure(recordCall(&calls, "billing")), false))
	_, err := shipping.Trigger(ctx, "paid", nil)
	assert.NoError(t, err)
	assert.Empty(t, calls, "Named registries should have independent bindings")
}

func TestManager_SharedStore(t *testing.T) {
	ctx := context.Background()
	var calls []string
	fns := NewFunctions().Register("audit", recordCall(&calls, "audit"))
	m := NewManager(memkv.New(), WithFunctions(fns))
	require.NoError(t, m.Named("writer").BindGlobal(ctx, "save", Func("audit"), true))
	_, err := m.Named("reader").Trigger(ctx, "save", nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"audit"}, calls, "Registries share persisted bindings through the store")
}

func TestManager_Flush(t *testing.T) {
	ctx := context.Background()
	store := memkv.New()
	m := NewManager(store)
	require.NoError(t, m.Default().BindGlobal(ctx, "save", Func("audit"), true))
	m.Named("other").BindScoped(NewScope(), "click", Func("audit"))
	m.Flush()
	assert.False(t, m.Default().IsLoaded("save"))
	assert.Empty(t, m.Default().Bindings(Global("save")))
	assert.Equal(t, 1, store.Len(), "Flush must not touch the store")
}
