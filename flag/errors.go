package flag

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUsage is wrapped by every error that points at a programming mistake
	// or a malformed command line rather than a missing value.
	ErrUsage = errors.New("usage error")

	// ErrMissing is wrapped by errors for required flags or keys that were not
	// supplied.
	ErrMissing = errors.New("missing required value")

	ErrNotSet = fmt.Errorf("%w: arguments not set, build them with flag.New(os.Args)", ErrUsage)

	ErrNilMap = fmt.Errorf("%w: map not built, use flag.NewMap or flag.NewDispatcher", ErrUsage)
)

type IllegalCommandLineError struct {
	Index int
	Token string
}

func (e *IllegalCommandLineError) Error() string {
	return fmt.Sprintf("illegal command line (argument %d: %q)", e.Index, e.Token)
}

func (e *IllegalCommandLineError) Unwrap() error { return ErrUsage }

type UnsupportedKindError struct {
	Kind Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("not yet supported: %s", e.Kind)
}

func (e *UnsupportedKindError) Unwrap() error { return ErrUsage }

// SwitchKindError is returned when a --name switch satisfies a request for a
// value that is not a boolean.
type SwitchKindError struct {
	Name string
	Kind Kind
}

func (e *SwitchKindError) Error() string {
	return fmt.Sprintf("--%s is a switch, cannot be read as %s", e.Name, e.Kind)
}

func (e *SwitchKindError) Unwrap() error { return ErrUsage }

type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return "missing command line argument " + e.Name
}

func (e *MissingArgumentError) Unwrap() error { return ErrMissing }

// NotFoundError reports a key, read from -Parameter, that has no entry in a
// Map. Valid is sorted.
type NotFoundError struct {
	Parameter string
	Key       string
	Valid     []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Not found: -%s %s\nValid arguments are: %s", e.Parameter, e.Key, strings.Join(e.Valid, " "))
}

func (e *NotFoundError) Unwrap() error { return ErrMissing }

// NilActionError is returned by Dispatch when the selected key was inserted
// with a nil Action.
type NilActionError struct {
	Parameter string
	Key       string
}

func (e *NilActionError) Error() string {
	return fmt.Sprintf("no action for -%s %s", e.Parameter, e.Key)
}

func (e *NilActionError) Unwrap() error { return ErrUsage }
