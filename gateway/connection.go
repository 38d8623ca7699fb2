package gateway

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"i4.energy/across/hfpag/at"
	"i4.energy/across/hfpag/slc"
)

// Connection is the audio gateway side of one service level connection to a
// hands-free unit. All protocol state is owned by the goroutine running Loop;
// other goroutines talk to it through Notify.
type Connection struct {
	id        string
	transport Transport
	config    Config
	logger    *slog.Logger

	// coord is only touched by the Loop goroutine.
	coord *coordinator

	closed      atomic.Bool
	loopRunning atomic.Bool
	done        chan struct{}

	notifications chan *notifyRequest
	completions   chan completion
}

// notifyRequest carries a gateway notification into the Loop.
type notifyRequest struct {
	notification slc.Notification
	respChan     chan error
}

// completion is a backend result on its way back into the Loop.
type completion struct {
	token  Token
	update slc.Update
}

// New dials the hands-free unit and prepares a Connection. The connection
// does nothing until Loop is called.
func New(ctx context.Context, config Config) (*Connection, error) {
	if config.Dialer == nil {
		return nil, ErrNoDialer
	}
	if config.Backend == nil {
		return nil, ErrNoBackend
	}
	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := config.Logger.With("component", "gateway", "conn", id)

	c := &Connection{
		id:            id,
		transport:     transport,
		config:        config,
		logger:        logger,
		coord:         newCoordinator(config.Features, config.Codecs, config.MaxConsecutiveErrors, logger),
		done:          make(chan struct{}),
		notifications: make(chan *notifyRequest),
		completions:   make(chan completion),
	}
	logger.Info("transport connected", "features", int(config.Features), "codecs", fmt.Sprint(config.Codecs))
	return c, nil
}

// ID identifies the connection in logs.
func (c *Connection) ID() string {
	return c.id
}

// Loop reads commands from the transport, runs the matching procedures and
// writes their responses. It returns io.EOF when the peer hangs up, nil
// after Close, ErrDesynchronized when the peer keeps sending garbage, or
// the context error on cancellation. Loop must not be called twice.
//
//	conn, err := gateway.New(ctx, config)
//	if err != nil { return err }
//	go conn.Loop(ctx)
//	err = conn.Notify(ctx, slc.Ring{Number: "+4930123"})
func (c *Connection) Loop(ctx context.Context) error {
	if c.coord == nil || c.transport == nil {
		return ErrNotInitialized
	}
	if !c.loopRunning.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer c.loopRunning.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.coord.close()

	scanner := bufio.NewScanner(c.transport)
	scanner.Buffer(make([]byte, 0, at.MaxLineLength+1), at.MaxLineLength+1)
	scanner.Split(at.LineSplitter(at.MaxLineLength))

	tokens := make(chan string, 10)
	scanErrs := make(chan error, 1)

	go func() {
		defer close(tokens)
		for scanner.Scan() {
			token := scanner.Text()
			if token == "" {
				continue
			}
			select {
			case tokens <- token:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case scanErrs <- err:
			case <-ctx.Done():
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-c.done:
			return nil

		case token, ok := <-tokens:
			if !ok {
				select {
				case err := <-scanErrs:
					return fmt.Errorf("scanner error: %w", err)
				default:
				}
				c.logger.Info("transport closed by peer")
				return io.EOF
			}
			c.logger.Debug("received", "line", token)

			eff, err := c.coord.receiveLine(token)
			if werr := c.perform(ctx, eff); werr != nil {
				return werr
			}
			if err != nil {
				c.logger.Error("closing connection", "error", err)
				return err
			}

		case req := <-c.notifications:
			eff, err := c.coord.receiveNotification(req.notification)
			werr := c.perform(ctx, eff)
			if werr != nil {
				req.respChan <- werr
				return werr
			}
			req.respChan <- err

		case comp := <-c.completions:
			eff := c.coord.receiveCompletion(comp.token, comp.update)
			if err := c.perform(ctx, eff); err != nil {
				return err
			}

		case err := <-scanErrs:
			return fmt.Errorf("scanner error: %w", err)
		}
	}
}

// Notify feeds a gateway-side event to the connection and waits until the
// Loop handled it. It fails with ErrNotEstablished before the service level
// connection is up and with a *slc.ProcedureError when the event does not
// fit the procedure it belongs to.
func (c *Connection) Notify(ctx context.Context, n slc.Notification) error {
	if c.closed.Load() {
		return ErrAlreadyClosed
	}
	if c.coord == nil {
		return ErrNotInitialized
	}

	req := &notifyRequest{
		notification: n,
		respChan:     make(chan error, 1),
	}

	select {
	case c.notifications <- req:
	case <-c.done:
		return ErrAlreadyClosed
	case <-ctx.Done():
		return fmt.Errorf("notification cancelled before delivery: %w", ctx.Err())
	}

	select {
	case err := <-req.respChan:
		return err
	case <-ctx.Done():
		return fmt.Errorf("notification timeout: %w", ctx.Err())
	}
}

// Close stops the Loop and closes the transport. Backend results that are
// still outstanding are dropped.
func (c *Connection) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrAlreadyClosed
	}
	if c.done != nil {
		close(c.done)
	}
	if c.transport != nil {
		return c.transport.Close()
	}
	return nil
}

// perform writes the lines of one step and starts its backend requests.
func (c *Connection) perform(ctx context.Context, eff effects) error {
	if c.closed.Load() {
		return nil
	}
	for _, line := range eff.lines {
		c.logger.Debug("sending", "line", line)
		if _, err := io.WriteString(c.transport, at.Frame(line)); err != nil {
			return fmt.Errorf("write response %q: %w", line, err)
		}
	}
	for _, d := range eff.dispatches {
		go c.dispatch(ctx, d)
	}
	return nil
}

// dispatch runs a backend request and hands its result back to the Loop.
// Results arriving after the Loop returned are dropped.
func (c *Connection) dispatch(ctx context.Context, d dispatch) {
	rctx, cancel := context.WithTimeout(ctx, c.config.BackendTimeout)
	defer cancel()

	c.logger.Debug("backend request", "marker", d.token.Marker, "request", fmt.Sprintf("%T", d.request))
	update := d.request.Run(rctx, c.config.Backend)

	select {
	case c.completions <- completion{token: d.token, update: update}:
	case <-ctx.Done():
	}
}
