package flag

import "fmt"

type scalar interface {
	Value
	IntValue | LongValue | FloatValue | DoubleValue | StringValue | BoolValue
}

func lookup[V scalar](a *Args, kind Kind, name string) (V, bool, error) {
	var zero V
	v, ok, err := a.Parse(kind, name)
	if err != nil || !ok {
		return zero, ok, err
	}
	// Parse only ever returns the variant matching kind.
	return v.(V), true, nil
}

func required[V scalar](a *Args, kind Kind, name string) (V, error) {
	v, ok, err := lookup[V](a, kind, name)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, &MissingArgumentError{Name: name}
	}
	return v, nil
}

func orDefault[V scalar](a *Args, kind Kind, name string, dflt V) (V, error) {
	v, ok, err := lookup[V](a, kind, name)
	if err != nil {
		return v, err
	}
	if !ok {
		a.defaulted(name, dflt)
		return dflt, nil
	}
	return v, nil
}

func (a *Args) defaulted(name string, dflt Value) {
	if a.silent || !a.warnOnDefault {
		return
	}
	a.logger.Warnf("Warning: using default for %s %s", name, defaultText(dflt))
}

// defaultText writes bools as 1 or 0, the way they are given on the command
// line.
func defaultText(v Value) string {
	if b, ok := v.(BoolValue); ok {
		if b {
			return "1"
		}
		return "0"
	}
	return v.String()
}

// Required is Parse with a *MissingArgumentError when name is absent.
func (a *Args) Required(kind Kind, name string) (Value, error) {
	v, ok, err := a.Parse(kind, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingArgumentError{Name: name}
	}
	return v, nil
}

// ParseOr is Parse falling back to dflt, which must be of the requested kind.
func (a *Args) ParseOr(kind Kind, name string, dflt Value) (Value, error) {
	if dflt == nil || dflt.Kind() != kind {
		return nil, fmt.Errorf("%w: default for -%s must be a %s value", ErrUsage, name, kind)
	}
	v, ok, err := a.Parse(kind, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		a.defaulted(name, dflt)
		return dflt, nil
	}
	return v, nil
}

func (a *Args) Int(name string) (int32, error) {
	v, err := required[IntValue](a, Int, name)
	return int32(v), err
}

func (a *Args) Long(name string) (int64, error) {
	v, err := required[LongValue](a, Long, name)
	return int64(v), err
}

func (a *Args) Float(name string) (float32, error) {
	v, err := required[FloatValue](a, Float, name)
	return float32(v), err
}

func (a *Args) Double(name string) (float64, error) {
	v, err := required[DoubleValue](a, Double, name)
	return float64(v), err
}

func (a *Args) String(name string) (string, error) {
	v, err := required[StringValue](a, String, name)
	return string(v), err
}

// Bool is true for a "--name" switch, or for "-name v" where v reads as a
// non-zero integer.
func (a *Args) Bool(name string) (bool, error) {
	v, err := required[BoolValue](a, Bool, name)
	return bool(v), err
}

func (a *Args) IntOr(name string, dflt int32) (int32, error) {
	v, err := orDefault(a, Int, name, IntValue(dflt))
	return int32(v), err
}

func (a *Args) LongOr(name string, dflt int64) (int64, error) {
	v, err := orDefault(a, Long, name, LongValue(dflt))
	return int64(v), err
}

func (a *Args) FloatOr(name string, dflt float32) (float32, error) {
	v, err := orDefault(a, Float, name, FloatValue(dflt))
	return float32(v), err
}

func (a *Args) DoubleOr(name string, dflt float64) (float64, error) {
	v, err := orDefault(a, Double, name, DoubleValue(dflt))
	return float64(v), err
}

func (a *Args) StringOr(name string, dflt string) (string, error) {
	v, err := orDefault(a, String, name, StringValue(dflt))
	return string(v), err
}

func (a *Args) BoolOr(name string, dflt bool) (bool, error) {
	v, err := orDefault(a, Bool, name, BoolValue(dflt))
	return bool(v), err
}
