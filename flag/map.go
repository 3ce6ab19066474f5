package flag

import "sort"

// Map is a string-keyed table whose key is usually chosen on the command
// line, e.g. "-algo fast". Build it with Insert, then query it; it is not
// safe to Insert concurrently with queries.
type Map[T any] struct {
	m map[string]T
}

func NewMap[T any]() *Map[T] {
	return &Map[T]{m: make(map[string]T)}
}

// Insert replaces any value already stored under key. Inserting into a nil
// *Map panics, like writing to a nil map.
func (t *Map[T]) Insert(key string, value T) {
	if t.m == nil {
		t.m = make(map[string]T)
	}
	t.m[key] = value
}

// A nil *Map reads as empty.
func (t *Map[T]) entries() map[string]T {
	if t == nil {
		return nil
	}
	return t.m
}

func (t *Map[T]) Len() int {
	return len(t.entries())
}

func (t *Map[T]) Keys() []string {
	keys := make([]string, 0, len(t.entries()))
	for k := range t.entries() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ForEach calls f for every entry in key order.
func (t *Map[T]) ForEach(f func(key string, value T)) {
	for _, k := range t.Keys() {
		f(k, t.entries()[k])
	}
}

// Find returns the value under key. parameter is the flag the key came from
// and only appears in the *NotFoundError.
func (t *Map[T]) Find(key, parameter string) (T, error) {
	if t == nil {
		var zero T
		return zero, ErrNilMap
	}
	v, ok := t.m[key]
	if !ok {
		return v, &NotFoundError{Parameter: parameter, Key: key, Valid: t.Keys()}
	}
	return v, nil
}

// FindByParameter uses the value of -parameter as the key. An absent flag
// reads as the empty key.
func (t *Map[T]) FindByParameter(args *Args, parameter string) (T, error) {
	if t == nil {
		var zero T
		return zero, ErrNilMap
	}
	key, err := args.StringOr(parameter, "")
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Find(key, parameter)
}

// FindByParameterOrDefault is FindByParameter returning dflt instead of a
// *NotFoundError.
func (t *Map[T]) FindByParameterOrDefault(args *Args, parameter string, dflt T) (T, error) {
	if t == nil {
		return dflt, ErrNilMap
	}
	key, err := args.StringOr(parameter, "")
	if err != nil {
		return dflt, err
	}
	if v, ok := t.m[key]; ok {
		return v, nil
	}
	return dflt, nil
}

// FindByParameterOrDefaultKey uses dfltKey when -parameter is absent. The
// resulting key must still be in the table.
func (t *Map[T]) FindByParameterOrDefaultKey(args *Args, parameter, dfltKey string) (T, error) {
	if t == nil {
		var zero T
		return zero, ErrNilMap
	}
	key, err := args.StringOr(parameter, dfltKey)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Find(key, parameter)
}
