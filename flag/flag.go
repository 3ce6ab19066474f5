// Typed lookups over a flat command line of "-name value" pairs and "--name"
// switches, plus a string-keyed table for picking an action by flag value.
//
//	args := flag.New(os.Args)
//	n, err := args.Int("n")               // -n 42
//	verbose, err := args.BoolOr("verbose", false) // --verbose
//
// Every token after the program name must start with '-'. There are no
// positional arguments, subcommands or help text.
package flag

import (
	"github.com/guardian/cmdline/log"
)

// Args is an immutable command line. It is safe for concurrent use.
type Args struct {
	argv          []string
	logger        log.Logger
	warnOnDefault bool
	silent        bool
}

type Option func(*Args)

// WithLogger sets where default-value warnings go. Defaults to log.New(false).
func WithLogger(logger log.Logger) Option {
	return func(a *Args) {
		a.logger = logger
	}
}

// WarnOnDefault makes the *Or accessors log a warning whenever they fall back
// to the caller's default.
func WarnOnDefault(warn bool) Option {
	return func(a *Args) {
		a.warnOnDefault = warn
	}
}

// New records argv, which is laid out like os.Args: argv[0] is the program
// name and is never scanned. argv is copied.
func New(argv []string, opts ...Option) *Args {
	a := &Args{
		argv:   append([]string(nil), argv...),
		logger: log.New(false),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Silently returns a view of the same command line whose *Or accessors never
// warn, for defaults the caller considers normal.
func (a *Args) Silently() *Args {
	if a == nil {
		return nil
	}
	quiet := *a
	quiet.silent = true
	return &quiet
}

func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.argv)
}

func (a *Args) Argv() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.argv...)
}

// Parse scans for name and converts its value to kind. The bool result is
// false, with a nil error, when name does not appear.
//
// A "--name" switch matches only Bool requests and yields true. A "-name"
// flag takes the next token as its value, whatever that token looks like.
// The scan stops with an *IllegalCommandLineError at the first token not
// starting with '-', or at a "-name" flag with nothing after it, even if that
// token is not the one being looked for.
func (a *Args) Parse(kind Kind, name string) (Value, bool, error) {
	if a == nil {
		return nil, false, ErrNotSet
	}
	if !kind.valid() {
		return nil, false, &UnsupportedKindError{Kind: kind}
	}

	for i := 1; i < len(a.argv); i++ {
		token := a.argv[i]
		if len(token) == 0 || token[0] != '-' {
			return nil, false, &IllegalCommandLineError{Index: i, Token: token}
		}

		flagName := token[1:]
		if len(flagName) > 0 && flagName[0] == '-' {
			if flagName[1:] != name {
				continue
			}
			if kind != Bool {
				return nil, false, &SwitchKindError{Name: name, Kind: kind}
			}
			return BoolValue(true), true, nil
		}

		i++
		if i >= len(a.argv) {
			return nil, false, &IllegalCommandLineError{Index: i - 1, Token: token}
		}
		if flagName != name {
			continue
		}
		v, err := Convert(kind, a.argv[i])
		if err != nil {
			return nil, false, err
		}
		a.logger.Debugf("flag: -%s %q read as %s %s", name, a.argv[i], kind, v)
		return v, true, nil
	}

	return nil, false, nil
}
