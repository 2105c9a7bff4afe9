// Package syncx provides small helpers for scoping locks to a function, and for lazily constructed keyed singletons.
package syncx

import "sync"

// LockFunc holds mux for the duration of fn.
func LockFunc(mux sync.Locker, fn func()) {
	mux.Lock()
	defer mux.Unlock()
	fn()
}

func LockFuncT[T any](mux sync.Locker, fn func() T) T {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

func LockFuncTErr[T any](mux sync.Locker, fn func() (T, error)) (T, error) {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

// LockFuncTOk is the comma-ok variant of [LockFuncT], which is convenient for guarded map lookups.
func LockFuncTOk[T any](mux sync.Locker, fn func() (T, bool)) (T, bool) {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

type RLocker interface {
	RLock()
	RUnlock()
}

func RLockFuncT[T any](mux RLocker, fn func() T) T {
	mux.RLock()
	defer mux.RUnlock()
	return fn()
}
