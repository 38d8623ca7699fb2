package gateway

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"i4.energy/across/hfpag/at"
	"i4.energy/across/hfpag/slc"
)

// Phase is the life cycle stage of a service level connection.
type Phase int

const (
	// PhaseAwaitingFirstExchange is the state before the peer sent anything.
	PhaseAwaitingFirstExchange Phase = iota
	// PhaseNegotiating covers the capability exchange. Only its commands
	// are accepted.
	PhaseNegotiating
	// PhaseEstablished is steady state: any procedure may run.
	PhaseEstablished
	// PhaseClosed is final.
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingFirstExchange:
		return "awaiting-first-exchange"
	case PhaseNegotiating:
		return "negotiating"
	case PhaseEstablished:
		return "established"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Token correlates a backend completion with the procedure instance that
// asked for it. Generation is never reused on a connection.
type Token struct {
	Marker     slc.Marker
	Generation uint64
}

// dispatch is a backend request to run on behalf of a procedure.
type dispatch struct {
	token   Token
	request slc.BackendRequest
}

// effects is what one coordinator step asks the connection to do.
type effects struct {
	lines      []string
	dispatches []dispatch
}

type inflight struct {
	procedure slc.Procedure
	// awaiting is the generation of the outstanding backend request, or 0.
	awaiting uint64
}

// coordinator routes commands, notifications and backend completions to
// procedures. It performs no I/O and is driven by a single goroutine.
type coordinator struct {
	state      *slc.State
	phase      Phase
	table      map[slc.Marker]*inflight
	generation uint64

	consecutiveErrors    int
	maxConsecutiveErrors int

	logger *slog.Logger
}

func newCoordinator(features slc.AgFeatures, codecs []slc.Codec, maxErrors int, logger *slog.Logger) *coordinator {
	return &coordinator{
		state:                slc.NewState(features, codecs),
		table:                make(map[slc.Marker]*inflight),
		maxConsecutiveErrors: maxErrors,
		logger:               logger,
	}
}

// receiveLine handles one line read from the transport.
func (c *coordinator) receiveLine(line string) (effects, error) {
	if c.phase == PhaseClosed {
		return effects{}, ErrAlreadyClosed
	}
	if line == at.Overlong {
		c.logger.Warn("dropped overlong line", "limit", at.MaxLineLength)
		return c.rejectPeer(at.Error())
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return effects{}, nil
	}
	// Units with echo enabled loop our own result codes back.
	if kind := at.Classify(line); kind != at.TypeData {
		c.logger.Debug("ignoring echoed result code", "line", line)
		return effects{}, nil
	}

	cmd, err := at.Parse(line)
	if err != nil {
		c.logger.Warn("malformed command", "line", line, "error", err)
		return c.rejectPeer(at.Error())
	}
	return c.receiveCommand(cmd)
}

func (c *coordinator) receiveCommand(cmd at.Command) (effects, error) {
	if c.phase == PhaseAwaitingFirstExchange {
		c.phase = PhaseNegotiating
	}

	marker, ok := slc.MarkerFor(cmd, c.phase == PhaseEstablished)
	if !ok {
		c.logger.Warn("unsupported command", "command", cmd.String(), "phase", c.phase)
		return c.rejectPeer(c.state.ErrorResponse(at.CmeOperationNotSupported))
	}

	entry, fresh := c.lookup(marker)
	req := entry.procedure.HfCommand(cmd, c.state)

	var perr *slc.ProcedureError
	if errors.As(asError(req), &perr) {
		if fresh {
			delete(c.table, marker)
		}
		c.logger.Warn("procedure rejected command", "marker", marker, "error", perr)
		return c.rejectPeer(c.state.ErrorResponse(at.CmeOperationNotAllowed))
	}

	c.consecutiveErrors = 0
	eff := c.apply(marker, entry, req)
	if marker == slc.MarkerAvailableCodecs {
		eff = c.restartCodecSelection(eff)
	}
	return eff, nil
}

// restartCodecSelection proposes a codec again when the peer answered +BCS
// with a new codec list.
func (c *coordinator) restartCodecSelection(eff effects) effects {
	entry := c.table[slc.MarkerCodecConnectionSetup]
	if entry == nil {
		return eff
	}
	req := entry.procedure.AgUpdate(slc.CodecsChanged{}, c.state)
	if err := asError(req); err != nil {
		c.logger.Debug("codec selection not restarted", "error", err)
		return eff
	}
	more := c.apply(slc.MarkerCodecConnectionSetup, entry, req)
	eff.lines = append(eff.lines, more.lines...)
	eff.dispatches = append(eff.dispatches, more.dispatches...)
	return eff
}

// receiveNotification starts or feeds a procedure on behalf of the gateway.
// A rejected notification is reported to the caller and never to the peer.
func (c *coordinator) receiveNotification(n slc.Notification) (effects, error) {
	switch c.phase {
	case PhaseClosed:
		return effects{}, ErrAlreadyClosed
	case PhaseEstablished:
	default:
		return effects{}, ErrNotEstablished
	}

	marker := n.Marker()
	entry, fresh := c.lookup(marker)
	req := entry.procedure.AgUpdate(n, c.state)

	var perr *slc.ProcedureError
	if errors.As(asError(req), &perr) {
		if fresh {
			delete(c.table, marker)
		}
		c.logger.Warn("procedure rejected notification", "marker", marker, "error", perr)
		return effects{}, perr
	}
	return c.apply(marker, entry, req), nil
}

// receiveCompletion feeds a backend result to the instance that asked for
// it. Completions for retired instances, duplicates and anything arriving
// after close are dropped.
func (c *coordinator) receiveCompletion(token Token, u slc.Update) effects {
	if c.phase == PhaseClosed {
		c.logger.Debug("dropping completion after close", "marker", token.Marker)
		return effects{}
	}
	entry := c.table[token.Marker]
	if entry == nil || token.Generation == 0 || entry.awaiting != token.Generation {
		c.logger.Debug("dropping stale completion", "marker", token.Marker, "generation", token.Generation)
		return effects{}
	}
	entry.awaiting = 0

	req := entry.procedure.AgUpdate(u, c.state)

	var perr *slc.ProcedureError
	if errors.As(asError(req), &perr) {
		// The peer still waits for a result code.
		delete(c.table, token.Marker)
		c.logger.Error("procedure rejected backend result", "marker", token.Marker, "error", perr)
		return effects{lines: []string{c.state.ErrorResponse(at.CmeAgFailure).String()}}
	}
	return c.apply(token.Marker, entry, req)
}

// close discards every live procedure. Outstanding completions become no-ops.
func (c *coordinator) close() {
	c.phase = PhaseClosed
	clear(c.table)
}

func (c *coordinator) lookup(marker slc.Marker) (*inflight, bool) {
	if entry, ok := c.table[marker]; ok {
		return entry, false
	}
	entry := &inflight{procedure: slc.New(marker)}
	c.table[marker] = entry
	return entry, true
}

func (c *coordinator) apply(marker slc.Marker, entry *inflight, req slc.ProcedureRequest) effects {
	var eff effects
	switch r := req.(type) {
	case nil:
	case slc.SendMessages:
		eff.lines = at.FormatResponses(r)
	case slc.BackendRequest:
		c.generation++
		entry.awaiting = c.generation
		eff.dispatches = append(eff.dispatches, dispatch{
			token:   Token{Marker: marker, Generation: c.generation},
			request: r,
		})
	default:
		c.logger.Error("unknown procedure request", "marker", marker, "request", fmt.Sprintf("%T", req))
	}

	if entry.procedure.Terminated() {
		delete(c.table, marker)
		if marker == slc.MarkerSlcInitialization && c.phase == PhaseNegotiating {
			c.phase = PhaseEstablished
			c.logger.Info("service level connection established",
				"peer_features", int(c.state.PeerFeatures),
				"codecs", fmt.Sprint(c.state.PeerCodecs),
			)
		}
	}
	return eff
}

// rejectPeer answers a peer error and applies the desynchronization policy.
func (c *coordinator) rejectPeer(r at.Response) (effects, error) {
	eff := effects{lines: []string{r.String()}}
	c.consecutiveErrors++
	if c.maxConsecutiveErrors > 0 && c.consecutiveErrors >= c.maxConsecutiveErrors {
		return eff, fmt.Errorf("%w: %d consecutive errors", ErrDesynchronized, c.consecutiveErrors)
	}
	return eff, nil
}

func asError(req slc.ProcedureRequest) error {
	err, _ := req.(error)
	return err
}
