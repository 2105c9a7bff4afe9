/*
Package event provides a synchronous, in-process event registry where handlers for global events can be persisted, so that they're bound again automatically in later runs of the program.

# Design Priorities

  - Dispatch should be predictable: handlers run one at a time, in the order they were bound, on the triggering goroutine.
  - Persistence should be safe by construction: only bindings that can be named across processes may be stored.
  - Missing things should be boring: unbinding something that isn't bound, or triggering an event nobody listens to, is never an error.

# Bindings

A [Binding] refers to a handler in one of four ways:

  - [Func] names a function registered with [Functions.Register].
  - [Static] names a type-level method registered with [Functions.RegisterStatic], written as "Type::method".
  - [Closure] wraps any [HandlerFunc].
  - [Method] wraps a [HandlerFunc] that belongs to a live object, identified by its [Scope].

Only [Func] and [Static] bindings on global events can be persisted, since names are the only thing that mean the same in a different process.
Each [Registry] needs a [Functions] table (see [WithFunctions]) that maps those names back to code.

# Keys and Scopes

Events are identified by a [Key].
A global key is created with [Global], and refers to the same event everywhere.
An instance key is created with [Scope.Key], where each [Scope] from [NewScope] is an opaque handle for one object.
Instance keys are never written to or read from the store.

# Persistence

Persisted bindings are stored with [kv.Store] under the key "Gwilym_Event,bind,<event>,<md5 of binding>", so persisting the same binding again overwrites the same record.
The first time a global event is triggered (or persisted to) in a [Registry], its stored bindings are loaded once and placed ahead of any bindings made in memory.
Later writes from other processes aren't seen until a new [Registry] loads the event again.

Event names used with persistence can't contain the key delimiter ',' or glob metacharacters, see [ValidateEventName].

# Dispatch

[Registry.Trigger] and [Registry.TriggerScoped] create an [Event] and pass it to each handler in turn.

  - A handler that calls [Event.StopPropagation] ends dispatch after it returns.
  - A handler that returns [ErrHalt] stops propagation and prevents the default action, like returning false from a DOM event listener.
  - A handler that returns any other error is handled by the [ErrorPolicy], which defaults to [HaltOnError].

The returned [Event] tells the triggering code whether it should go on to do its default action.

# Registries

Applications that need more than one namespace of events can create a [Manager] at their composition root, which constructs a default [Registry] and named registries on demand.
*/
package event
