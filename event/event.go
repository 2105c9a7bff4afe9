package event

import "context"

// Event is passed to every handler of a single trigger, and returned to the caller when dispatch finishes.
// Handlers communicate with dispatch and with later handlers through its flags and Data.
//
// Both flags start false and can only be set, never cleared.
// Once dispatch returns the Event, its flags and type are fixed, and calls that would change them do nothing.
// Data remains a plain field, so it's up to the caller to treat it as read-only.
type Event struct {
	// Data is the payload given to the trigger. Handlers may replace it to pass results along.
	Data any

	ctx                context.Context
	key                Key
	typ                string
	propagationStopped bool
	defaultPrevented   bool
	done               bool
}

// NewEvent creates an [Event] outside of dispatch, which is mostly useful for testing handlers directly.
func NewEvent(name string, data any) *Event {
	return newEvent(context.Background(), Global(name), data)
}

func newEvent(ctx context.Context, key Key, data any) *Event {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Event{
		Data: data,
		ctx:  ctx,
		key:  key,
		typ:  key.Name(),
	}
}

// Type returns the event name.
func (e *Event) Type() string {
	return e.typ
}

// WithType overrides the event type and returns the same [Event] for chaining.
// This doesn't change which bindings the Event is dispatched to, and has no effect after dispatch finishes.
func (e *Event) WithType(typ string) *Event {
	if !e.done {
		e.typ = typ
	}
	return e
}

// Key returns the key the Event was dispatched with.
func (e *Event) Key() Key {
	return e.key
}

// Context returns the context given to the trigger.
func (e *Event) Context() context.Context {
	return e.ctx
}

// StopPropagation prevents handlers after the current one from running.
// It has no effect after dispatch finishes.
func (e *Event) StopPropagation() {
	if !e.done {
		e.propagationStopped = true
	}
}

// PreventDefault signals to the triggering code that it should skip whatever it would normally do after the event.
// It has no effect after dispatch finishes.
func (e *Event) PreventDefault() {
	if !e.done {
		e.defaultPrevented = true
	}
}

// finish fixes the state of the Event before it's returned from dispatch.
func (e *Event) finish() *Event {
	e.done = true
	return e
}

func (e *Event) IsPropagationStopped() bool {
	return e.propagationStopped
}

func (e *Event) IsDefaultPrevented() bool {
	return e.defaultPrevented
}
