package flag

import "fmt"

type Kind int

const (
	Int Kind = iota
	Long
	Float
	Double
	String
	Bool
)

var kindNames = [...]string{
	Int:    "int",
	Long:   "long",
	Float:  "float",
	Double: "double",
	String: "string",
	Bool:   "bool",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) valid() bool {
	return k >= Int && k <= Bool
}

// ParseKind maps a kind name ("int", "long", "float", "double", "string",
// "bool") back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrUsage, name)
}

// Value is the result of a successful Parse. It is always one of IntValue,
// LongValue, FloatValue, DoubleValue, StringValue or BoolValue, and its Kind
// matches the Kind that was requested.
type Value interface {
	Kind() Kind
	String() string
	sealed()
}

type (
	IntValue    int32
	LongValue   int64
	FloatValue  float32
	DoubleValue float64
	StringValue string
	BoolValue   bool
)

func (IntValue) Kind() Kind    { return Int }
func (LongValue) Kind() Kind   { return Long }
func (FloatValue) Kind() Kind  { return Float }
func (DoubleValue) Kind() Kind { return Double }
func (StringValue) Kind() Kind { return String }
func (BoolValue) Kind() Kind   { return Bool }

func (v IntValue) String() string    { return fmt.Sprint(int32(v)) }
func (v LongValue) String() string   { return fmt.Sprint(int64(v)) }
func (v FloatValue) String() string  { return fmt.Sprint(float32(v)) }
func (v DoubleValue) String() string { return fmt.Sprint(float64(v)) }
func (v StringValue) String() string { return string(v) }
func (v BoolValue) String() string   { return fmt.Sprint(bool(v)) }

func (IntValue) sealed()    {}
func (LongValue) sealed()   {}
func (FloatValue) sealed()  {}
func (DoubleValue) sealed() {}
func (StringValue) sealed() {}
func (BoolValue) sealed()   {}

// Convert reads token as a value of kind, the same way Parse reads the token
// following a flag.
func Convert(kind Kind, token string) (Value, error) {
	switch kind {
	case Int:
		return IntValue(int32(atoi(token))), nil
	case Long:
		return LongValue(atoi(token)), nil
	case Float:
		return FloatValue(float32(atof(token))), nil
	case Double:
		return DoubleValue(atof(token)), nil
	case String:
		return StringValue(token), nil
	case Bool:
		return BoolValue(atoi(token) != 0), nil
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
}
