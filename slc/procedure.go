package slc

import (
	"fmt"
	"strings"

	"i4.energy/across/hfpag/at"
)

// Procedure is one feature exchange between the hands-free unit and the
// audio gateway. The connection keeps at most one live Procedure per Marker
// and drops it once Terminated reports true.
//
// Input that is not valid in the current state yields a *ProcedureError and
// leaves both the procedure and the State untouched.
type Procedure interface {
	Marker() Marker
	HfCommand(cmd at.Command, s *State) ProcedureRequest
	AgUpdate(u Update, s *State) ProcedureRequest
	Terminated() bool
}

// ProcedureRequest is the outcome of one procedure step. It is one of
// SendMessages, a BackendRequest, a *ProcedureError, or nil when the step
// produced nothing to do.
type ProcedureRequest interface {
	procedureRequest()
}

// SendMessages holds response lines to write to the peer, in order.
type SendMessages []at.Response

func (SendMessages) procedureRequest() {}

// ProcedureError reports input that arrived out of order or could not be
// accepted by a procedure.
type ProcedureError struct {
	Marker Marker
	// Command is set when the offending input came from the peer.
	Command *at.Command
	// Update is set when the offending input was a local update.
	Update Update
	// Reason is optional detail, such as ErrInvalidArgument.
	Reason error
}

func (*ProcedureError) procedureRequest() {}

func (e *ProcedureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "slc: %s: ", e.Marker)
	if e.Command != nil {
		fmt.Fprintf(&b, "%v %q", ErrUnexpectedHf, e.Command.String())
	} else {
		fmt.Fprintf(&b, "%v %T", ErrUnexpectedAg, e.Update)
	}
	if e.Reason != nil {
		fmt.Fprintf(&b, ": %v", e.Reason)
	}
	return b.String()
}

func (e *ProcedureError) Unwrap() []error {
	kind := ErrUnexpectedAg
	if e.Command != nil {
		kind = ErrUnexpectedHf
	}
	if e.Reason == nil {
		return []error{kind}
	}
	return []error{kind, e.Reason}
}

// FromPeer reports whether the error was caused by a hands-free command.
func (e *ProcedureError) FromPeer() bool {
	return e.Command != nil
}

func unexpectedHf(m Marker, cmd at.Command, reason error) *ProcedureError {
	return &ProcedureError{Marker: m, Command: &cmd, Reason: reason}
}

func unexpectedAg(m Marker, u Update, reason error) *ProcedureError {
	return &ProcedureError{Marker: m, Update: u, Reason: reason}
}

// step is the phase of a procedure built on exchange.
type step int

const (
	stepStart step = iota
	stepAwaitingBackend
	stepTerminated
)

// exchange holds the per-kind behaviour of a procedure with at most one
// backend round trip: a peer command or a local notification starts it, and
// a backend reply, if one was requested, finishes it.
type exchange interface {
	command(cmd at.Command, s *State) (ProcedureRequest, error)
	notification(u Update, s *State) (ProcedureRequest, error)
	completion(u Update, s *State) (ProcedureRequest, error)
}

// exchangeProcedure drives an exchange and enforces its ordering.
type exchangeProcedure struct {
	marker Marker
	step   step
	steps  exchange
}

func newExchange(m Marker, e exchange) *exchangeProcedure {
	return &exchangeProcedure{marker: m, steps: e}
}

func (p *exchangeProcedure) Marker() Marker {
	return p.marker
}

func (p *exchangeProcedure) Terminated() bool {
	return p.step == stepTerminated
}

func (p *exchangeProcedure) HfCommand(cmd at.Command, s *State) ProcedureRequest {
	if p.step != stepStart {
		return unexpectedHf(p.marker, cmd, nil)
	}
	req, err := p.steps.command(cmd, s)
	if err != nil {
		return unexpectedHf(p.marker, cmd, err)
	}
	p.advance(req)
	return req
}

func (p *exchangeProcedure) AgUpdate(u Update, s *State) ProcedureRequest {
	var (
		req ProcedureRequest
		err error
	)
	switch p.step {
	case stepStart:
		req, err = p.steps.notification(u, s)
	case stepAwaitingBackend:
		req, err = p.steps.completion(u, s)
	default:
		return unexpectedAg(p.marker, u, nil)
	}
	if err != nil {
		return unexpectedAg(p.marker, u, err)
	}
	p.advance(req)
	return req
}

func (p *exchangeProcedure) advance(req ProcedureRequest) {
	if _, ok := req.(BackendRequest); ok {
		p.step = stepAwaitingBackend
		return
	}
	p.step = stepTerminated
}

// peerStarted is embedded by exchanges only the peer can start.
type peerStarted struct{}

func (peerStarted) notification(Update, *State) (ProcedureRequest, error) {
	return nil, errNotStarter
}

// gatewayStarted is embedded by exchanges only a local notification can start.
type gatewayStarted struct{}

func (gatewayStarted) command(at.Command, *State) (ProcedureRequest, error) {
	return nil, errNotStarter
}

// synchronous is embedded by exchanges that never call the backend.
type synchronous struct{}

func (synchronous) completion(Update, *State) (ProcedureRequest, error) {
	return nil, errNotAwaiting
}

var (
	errNotStarter  = fmt.Errorf("%w: input cannot start this procedure", ErrInvalidArgument)
	errNotAwaiting = fmt.Errorf("%w: no backend request outstanding", ErrInvalidArgument)
)

// okOrError maps a backend Result to OK or the procedure's negative result.
func okOrError(u Update, s *State, onSuccess func(*State)) (ProcedureRequest, error) {
	r, ok := u.(Result)
	if !ok {
		return nil, fmt.Errorf("%w: want Result, got %T", ErrInvalidArgument, u)
	}
	if r.Err != nil {
		return SendMessages{s.ErrorResponse(at.CmeAgFailure)}, nil
	}
	if onSuccess != nil {
		onSuccess(s)
	}
	return SendMessages{at.Ok()}, nil
}
