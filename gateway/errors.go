package gateway

import "errors"

var (
	// ErrNoDialer is returned when a Connection is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// reach the hands-free unit.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNoBackend is returned when a Connection is constructed without a
	// Backend to carry out telephony requests.
	ErrNoBackend = errors.New("no backend configured")

	// ErrInvalidCodecs is returned when the configured codecs lack CVSD or
	// name an unknown codec.
	ErrInvalidCodecs = errors.New("invalid codec list")

	// ErrNotInitialized is returned when an operation is attempted on a
	// Connection that was not created via New.
	ErrNotInitialized = errors.New("connection not initialized")

	// ErrAlreadyClosed is returned when Close is called on a Connection that
	// has already been closed, or when events are submitted after Close.
	ErrAlreadyClosed = errors.New("connection already closed")

	// ErrLoopRunning is returned when Loop is started a second time.
	ErrLoopRunning = errors.New("loop already running")

	// ErrNotEstablished is returned when a notification is submitted before
	// the service level connection is up.
	ErrNotEstablished = errors.New("service level connection not established")

	// ErrDesynchronized is returned by Loop when the peer produced too many
	// consecutive errors to keep the two sides in step.
	//
	// The connection is closed; callers may dial again.
	ErrDesynchronized = errors.New("peer desynchronized")
)
