package event

import (
	"context"
	"github.com/saylorsolutions/eventx/kv/sqlitekv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func TestFunctions_Lookup(t *testing.T) {
	fns := NewFunctions().
		Register("audit", func(*Event) error { return nil }).
		RegisterStatic("Mailer", "notify", func(*Event) error { return ErrHalt })

	_, ok := fns.Lookup("audit")
	assert.True(t, ok)
	fn, ok := fns.Lookup("Mailer::notify")
	assert.True(t, ok)
	assert.ErrorIs(t, fn(NewEvent("save", nil)), ErrHalt)
	_, ok = fns.Lookup("missing")
	assert.False(t, ok)

	var nilFns *Functions
	_, ok = nilFns.Lookup("audit")
	assert.False(t, ok)
}

func TestFunctions_Register_Invalid(t *testing.T) {
	fns := NewFunctions()
	assert.Panics(t, func() {
		fns.Register("Type::method", func(*Event) error { return nil })
	}, "Static names must go through RegisterStatic")
	assert.Panics(t, func() {
		fns.Register("audit", nil)
	})
	assert.Panics(t, func() {
		Closure(nil)
	})
}

func TestRegistry_SQLiteAcrossRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")
	var calls []string
	fns := NewFunctions().Register("audit", recordCall(&calls, "audit"))

	store, err := sqlitekv.Open(path)
	require.NoError(t, err)
	r := NewRegistry(store, WithFunctions(fns))
	require.NoError(t, r.BindGlobal(ctx, "save", Func("audit"), true))
	require.NoError(t, r.BindGlobal(ctx, "save", Func("audit"), true))
	require.NoError(t, store.Close())

	store, err = sqlitekv.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	r = NewRegistry(store, WithFunctions(fns))
	_, err = r.Trigger(ctx, "save", nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"audit"}, calls, "The binding should be stored exactly once")
}
