package event

import (
	"fmt"
	"github.com/saylorsolutions/eventx/syncx"
	"strings"
	"sync"
)

// Functions maps the names used by [FuncBinding] and [StaticBinding] to the code that runs for them.
// Persisted bindings only store names, so every process that triggers them needs the same names registered.
type Functions struct {
	mux sync.RWMutex
	fns map[string]HandlerFunc
}

func NewFunctions() *Functions {
	return &Functions{fns: map[string]HandlerFunc{}}
}

// Register associates fn with name, replacing any previous registration.
// Panics if fn is nil, or if name contains "::", which is reserved for [Functions.RegisterStatic].
func (f *Functions) Register(name string, fn HandlerFunc) *Functions {
	if strings.Contains(name, staticSeparator) {
		panic(fmt.Sprintf("function name '%s' contains '%s'", name, staticSeparator))
	}
	f.set(name, fn)
	return f
}

// RegisterStatic associates fn with the "typeName::method" pair referenced by [Static].
// Panics if fn is nil.
func (f *Functions) RegisterStatic(typeName, method string, fn HandlerFunc) *Functions {
	f.set(Static(typeName, method).String(), fn)
	return f
}

func (f *Functions) set(name string, fn HandlerFunc) {
	if fn == nil {
		panic("nil handler function")
	}
	syncx.LockFunc(&f.mux, func() {
		f.fns[name] = fn
	})
}

// Lookup returns the function registered for a serialized binding name.
func (f *Functions) Lookup(name string) (HandlerFunc, bool) {
	if f == nil {
		return nil, false
	}
	f.mux.RLock()
	defer f.mux.RUnlock()
	fn, ok := f.fns[name]
	return fn, ok
}

func (f *Functions) resolve(name string) (HandlerFunc, error) {
	fn, ok := f.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnresolved, name)
	}
	return fn, nil
}
