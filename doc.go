/*
Package eventx is a synchronous, in-process event bus whose global bindings can be persisted to a key-value store and picked up again by later, unrelated runs of a program.

  - event holds the registry, bindings, dispatch, and the Manager used at composition roots.
  - kv describes the store capability, with in-memory (kv/memkv) and SQLite (kv/sqlitekv) backends.
  - config, slogx, and syncx are the supporting pieces, and cmd/eventctl manages persisted bindings from a shell.
*/
package eventx
