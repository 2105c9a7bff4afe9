package event

import (
	"context"
	"errors"
)

// Trigger dispatches the global event name to its bindings, loading persisted bindings first if needed.
//
// The returned [Event] reports whether a handler stopped propagation or prevented the default action.
// Triggering an event with no bindings is not an error.
// An error is returned if loading from the store fails, or if a handler fails according to the [ErrorPolicy].
// The [Event] is returned in every case.
func (r *Registry) Trigger(ctx context.Context, name string, data any) (*Event, error) {
	key := Global(name)
	if err := r.Load(ctx, name); err != nil {
		return newEvent(ctx, key, data).finish(), err
	}
	return r.dispatch(ctx, key, data)
}

// TriggerScoped dispatches the event name of the object identified by scope.
// The store is never consulted for instance events.
func (r *Registry) TriggerScoped(ctx context.Context, scope Scope, name string, data any) (*Event, error) {
	return r.dispatch(ctx, scope.Key(name), data)
}

func (r *Registry) dispatch(ctx context.Context, key Key, data any) (*Event, error) {
	evt := newEvent(ctx, key, data)
	// Iterating over a copy lets handlers change bindings without affecting this dispatch.
	handlers := r.Bindings(key)
	defer evt.finish()
	if len(handlers) == 0 {
		return evt, nil
	}
	var errs []error
	for _, b := range handlers {
		err := r.invoke(b, evt)
		if errors.Is(err, ErrHalt) {
			evt.StopPropagation()
			evt.PreventDefault()
			break
		}
		if err != nil {
			herr := &HandlerError{Event: key.String(), Binding: b.String(), Err: err}
			if r.policy != ContinueOnError {
				return evt, herr
			}
			r.log.Warn("Handler failed, continuing dispatch", "event", key.String(), "binding", b.String(), "error", err)
			errs = append(errs, herr)
		}
		if evt.IsPropagationStopped() {
			break
		}
	}
	return evt, errors.Join(errs...)
}

func (r *Registry) invoke(b Binding, evt *Event) error {
	fn, err := b.resolve(r.fns)
	if err != nil {
		return err
	}
	return fn(evt)
}
