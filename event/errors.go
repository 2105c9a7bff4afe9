package event

import (
	"errors"
	"fmt"
)

var (
	ErrCannotPersistClosure         = errors.New("closure bindings cannot be persisted")
	ErrCannotPersistInstanceEvent   = errors.New("instance-scoped events cannot be persisted")
	ErrCannotPersistInstanceBinding = errors.New("instance-bound bindings cannot be persisted")
	ErrInvalidEventName             = errors.New("invalid event name for persistence")
	ErrInvalidBindingName           = errors.New("invalid binding name for persistence")
	ErrNoStore                      = errors.New("registry has no store")
	ErrStore                        = errors.New("store failure")
	ErrUnresolved                   = errors.New("no function registered for binding")

	// ErrHalt may be returned from a [HandlerFunc] to stop propagation and prevent the default action in one step.
	// It's never returned from [Registry.Trigger].
	ErrHalt = errors.New("halt event")
)

type storeError struct {
	op    string
	event string
	err   error
}

func (e *storeError) Error() string {
	return fmt.Sprintf("%v: failed to %s event '%s': %v", ErrStore, e.op, e.event, e.err)
}

func (e *storeError) Unwrap() []error {
	return []error{ErrStore, e.err}
}

// HandlerError reports a failure from a single binding during dispatch.
type HandlerError struct {
	Event   string // Event is the dispatch key, including the scope for instance events.
	Binding string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler '%s' failed to handle event '%s': %v", e.Binding, e.Event, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
