package slc

import (
	"fmt"

	"i4.energy/across/hfpag/at"
)

// intArg returns argument i as an integer within [lo, hi].
func intArg(cmd at.Command, i, lo, hi int) (int, error) {
	arg, ok := cmd.Arg(i)
	if !ok {
		return 0, fmt.Errorf("%w: argument %d missing", ErrInvalidArgument, i+1)
	}
	n, err := arg.Int()
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d: %v", ErrInvalidArgument, i+1, err)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: argument %d is %d, want %d..%d", ErrInvalidArgument, i+1, n, lo, hi)
	}
	return n, nil
}

// boolArg returns argument i, which must be 0 or 1.
func boolArg(cmd at.Command, i int) (bool, error) {
	n, err := intArg(cmd, i, 0, 1)
	return n == 1, err
}

// argCount checks that the command carries between lo and hi arguments.
func argCount(cmd at.Command, lo, hi int) error {
	if n := len(cmd.Args.List); n < lo || n > hi {
		return fmt.Errorf("%w: %d arguments, want %d..%d", ErrInvalidArgument, n, lo, hi)
	}
	return nil
}

// is reports whether cmd is the named extended command of the given kind.
func is(cmd at.Command, name string, kind at.Kind) bool {
	return cmd.Extension && cmd.Name == name && cmd.Kind == kind
}

func wrongCommand(cmd at.Command) error {
	return fmt.Errorf("%w: %s not valid here", ErrInvalidArgument, cmd.String())
}

func wrongUpdate(u Update) error {
	return fmt.Errorf("%w: %T not valid here", ErrInvalidArgument, u)
}

func onOff(b bool) int {
	if b {
		return 1
	}
	return 0
}
