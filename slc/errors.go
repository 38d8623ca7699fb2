package slc

import "errors"

var (
	// ErrUnexpectedHf is returned when a hands-free command arrives that
	// the procedure cannot accept in its current state.
	ErrUnexpectedHf = errors.New("unexpected hands-free command")

	// ErrUnexpectedAg is returned when a local update arrives that the
	// procedure cannot accept in its current state.
	ErrUnexpectedAg = errors.New("unexpected audio gateway update")

	// ErrInvalidArgument is returned when a command carries missing or
	// out of range arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFeatureNotSupported is returned when a procedure needs a feature
	// that one of the two sides did not advertise.
	ErrFeatureNotSupported = errors.New("feature not supported")

	// ErrUnknownIndicator is returned for indicator indices outside 1..7.
	ErrUnknownIndicator = errors.New("unknown indicator")

	// ErrOutOfRange is returned when a value does not fit its indicator or gain.
	ErrOutOfRange = errors.New("value out of range")
)
