package cli

import (
	"errors"
	"fmt"
)

// MustGet is used with a [pflag.FlagSet] getter to panic if the flag is not defined, or is not the right type.
// The developer usually knows whether a get call will fail, so this function makes it easier to avoid global flag state.
func MustGet[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

var (
	ErrArgMap = errors.New("failed to map argument(s)")
)

// MapArgs maps arguments to variables (targets), and requires between minArgs and len(targets) of them.
// Targets elements should not be nil.
func MapArgs(args []string, minArgs int, targets ...*string) error {
	if len(args) < minArgs {
		return fmt.Errorf("%w: not enough arguments (%d) to satisfy minArgs (%d)", ErrArgMap, len(args), minArgs)
	}
	if len(args) > len(targets) {
		return fmt.Errorf("%w: too many arguments (%d), expected at most %d", ErrArgMap, len(args), len(targets))
	}
	for i := range args {
		if targets[i] == nil {
			return fmt.Errorf("%w: target %d is nil", ErrArgMap, i)
		}
		*targets[i] = args[i]
	}
	return nil
}
