package flag

type Action func() error

// Dispatcher maps flag values to actions:
//
//	d := flag.NewDispatcher()
//	d.Insert("serve", serve)
//	d.Insert("migrate", migrate)
//	err := flag.Dispatch(args, d, "cmd") // -cmd serve
type Dispatcher = Map[Action]

func NewDispatcher() *Dispatcher {
	return NewMap[Action]()
}

// Dispatch runs the action named by -parameter and returns its error.
func Dispatch(args *Args, d *Dispatcher, parameter string) error {
	return dispatch(args, d, parameter, "")
}

// DispatchOrDefault runs the action under dfltKey when -parameter is absent.
func DispatchOrDefault(args *Args, d *Dispatcher, parameter, dfltKey string) error {
	return dispatch(args, d, parameter, dfltKey)
}

func dispatch(args *Args, d *Dispatcher, parameter, dfltKey string) error {
	if d == nil {
		return ErrNilMap
	}
	key, err := args.StringOr(parameter, dfltKey)
	if err != nil {
		return err
	}
	action, err := d.Find(key, parameter)
	if err != nil {
		return err
	}
	if action == nil {
		return &NilActionError{Parameter: parameter, Key: key}
	}
	return action()
}
