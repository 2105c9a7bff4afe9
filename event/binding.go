package event

import (
	"fmt"
	"strings"
)

// HandlerFunc handles a triggered [Event].
//
// Returning [ErrHalt] stops propagation and prevents the default action.
// Calling [Event.StopPropagation] and returning nil only stops propagation.
// Any other error is handled according to the registry's [ErrorPolicy].
type HandlerFunc func(evt *Event) error

// Binding is a reference to something that handles an event.
// The set of implementations is closed: [FuncBinding], [StaticBinding], [*ClosureBinding], and [*MethodBinding].
//
// Two bindings are the same binding if they're == to each other.
// Named bindings compare by name, while closures and methods compare by reference.
type Binding interface {
	fmt.Stringer
	// persisted returns the serialized form of the binding, or the reason it can't be persisted.
	persisted() (string, error)
	resolve(fns *Functions) (HandlerFunc, error)
}

var (
	_ Binding = FuncBinding{}
	_ Binding = StaticBinding{}
	_ Binding = (*ClosureBinding)(nil)
	_ Binding = (*MethodBinding)(nil)
)

// FuncBinding refers to a function by the name it was registered with in [Functions].
type FuncBinding struct {
	Name string
}

// Func creates a persistable [Binding] to the named function.
// Panics if name contains "::", since that form always loads back as a [StaticBinding]. Use [Static] instead.
func Func(name string) FuncBinding {
	if strings.Contains(name, staticSeparator) {
		panic(fmt.Sprintf("function name '%s' contains '%s'", name, staticSeparator))
	}
	return FuncBinding{Name: name}
}

func (b FuncBinding) String() string {
	return b.Name
}

func (b FuncBinding) persisted() (string, error) {
	if strings.Contains(b.Name, staticSeparator) {
		return "", fmt.Errorf("%w: '%s' contains '%s'", ErrInvalidBindingName, b.Name, staticSeparator)
	}
	return b.Name, nil
}

func (b FuncBinding) resolve(fns *Functions) (HandlerFunc, error) {
	return fns.resolve(b.Name)
}

// StaticBinding refers to a method that belongs to a type rather than a value, written as "Type::method".
type StaticBinding struct {
	Type   string
	Method string
}

// Static creates a persistable [Binding] to a type-level method registered with [Functions.RegisterStatic].
func Static(typeName, method string) StaticBinding {
	return StaticBinding{Type: typeName, Method: method}
}

func (b StaticBinding) String() string {
	return b.Type + staticSeparator + b.Method
}

func (b StaticBinding) persisted() (string, error) {
	return b.String(), nil
}

func (b StaticBinding) resolve(fns *Functions) (HandlerFunc, error) {
	return fns.resolve(b.String())
}

// ClosureBinding wraps an arbitrary function value.
// Since function values aren't comparable, the returned pointer is the identity used to unbind it later.
type ClosureBinding struct {
	fn HandlerFunc
}

// Closure creates a process-local [Binding] for fn.
// Passing a nil fn will panic.
func Closure(fn HandlerFunc) *ClosureBinding {
	if fn == nil {
		panic("nil handler function")
	}
	return &ClosureBinding{fn: fn}
}

func (b *ClosureBinding) String() string {
	return fmt.Sprintf("closure(%p)", b)
}

func (b *ClosureBinding) persisted() (string, error) {
	return "", ErrCannotPersistClosure
}

func (b *ClosureBinding) resolve(*Functions) (HandlerFunc, error) {
	return b.fn, nil
}

// MethodBinding is a handler tied to a live object, identified by its [Scope].
type MethodBinding struct {
	receiver Scope
	name     string
	fn       HandlerFunc
}

// Method creates a process-local [Binding] for a method of the object identified by receiver.
// The name is informational.
// Passing a nil fn will panic.
func Method(receiver Scope, name string, fn HandlerFunc) *MethodBinding {
	if fn == nil {
		panic("nil handler function")
	}
	return &MethodBinding{receiver: receiver, name: name, fn: fn}
}

func (b *MethodBinding) Receiver() Scope {
	return b.receiver
}

func (b *MethodBinding) String() string {
	return fmt.Sprintf("%s->%s", b.receiver, b.name)
}

func (b *MethodBinding) persisted() (string, error) {
	return "", ErrCannotPersistInstanceBinding
}

func (b *MethodBinding) resolve(*Functions) (HandlerFunc, error) {
	return b.fn, nil
}
