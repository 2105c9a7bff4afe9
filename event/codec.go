package event

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"github.com/saylorsolutions/eventx/kv"
	"strings"
)

const (
	keyNamespace    = "Gwilym_Event"
	keyKind         = "bind"
	keyDelimiter    = ","
	staticSeparator = "::"
	invalidNameRune = keyDelimiter + kv.GlobMeta
)

// Serialize returns the persisted form of b: the function name for a [FuncBinding], or "Type::method" for a [StaticBinding].
// Other bindings return [ErrCannotPersistClosure] or [ErrCannotPersistInstanceBinding].
func Serialize(b Binding) (string, error) {
	if b == nil {
		return "", fmt.Errorf("%w: nil binding", ErrCannotPersistClosure)
	}
	return b.persisted()
}

// Deserialize is the inverse of [Serialize].
// A value containing "::" is split on the first separator into a [StaticBinding], anything else is a [FuncBinding].
func Deserialize(serialized string) Binding {
	if typeName, method, found := strings.Cut(serialized, staticSeparator); found {
		return Static(typeName, method)
	}
	return Func(serialized)
}

// Persistable reports whether b can be written to a store.
func Persistable(b Binding) bool {
	_, err := Serialize(b)
	return err == nil
}

// StorageKey returns the content-addressed store key for a serialized binding of eventName.
// The same inputs always produce the same key, so persisting a binding twice overwrites one record.
func StorageKey(eventName, serialized string) string {
	sum := md5.Sum([]byte(serialized))
	return strings.Join([]string{keyNamespace, keyKind, eventName, hex.EncodeToString(sum[:])}, keyDelimiter)
}

// StoragePattern returns the glob pattern matching every persisted binding of eventName.
func StoragePattern(eventName string) string {
	return strings.Join([]string{keyNamespace, keyKind, eventName, "*"}, keyDelimiter)
}

// ValidateEventName checks that name can be embedded in a storage key and pattern.
// The key delimiter and glob metacharacters are rejected.
func ValidateEventName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("%w: empty name", ErrInvalidEventName)
	}
	if strings.ContainsAny(name, invalidNameRune) {
		return fmt.Errorf("%w: '%s' contains one of '%s'", ErrInvalidEventName, name, invalidNameRune)
	}
	return nil
}
