package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"go.bug.st/serial"
)

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=gateway
//go:generate go tool mockgen -destination=mock_backend.go -package=gateway i4.energy/across/hfpag/slc Backend

// Transport represents an established, bidirectional byte stream to a
// hands-free unit.
//
// A Transport is assumed to be already connected and ready for use. Typical
// implementations are RFCOMM serial devices (/dev/rfcommN), TCP connections
// to an emulator, or in-memory fakes used for testing. Reads return io.EOF
// once the peer went away.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to a hands-free unit.
//
// Dialer abstracts how the connection is created and is used during
// connection construction only. Once a Transport is obtained, the Dialer is
// no longer needed.
type Dialer interface {
	// Dial is responsible for creating and returning a connected Transport. It may
	// perform blocking operations and should respect cancellation and deadlines
	// provided by the context. Dial returns an error if the transport cannot be
	// established.
	Dial(ctx context.Context) (Transport, error)
}

// DefaultBaudRate is used by SerialDialer when neither Mode nor BaudRate is set.
const DefaultBaudRate = 115200

// SerialDialer opens a bound RFCOMM channel or any other serial device
// using go.bug.st/serial.
type SerialDialer struct {
	PortName string
	BaudRate int
	// Mode overrides BaudRate when set.
	Mode *serial.Mode
}

func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("gateway: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("gateway: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		baud := d.BaudRate
		if baud == 0 {
			baud = DefaultBaudRate
		}
		mode = &serial.Mode{
			BaudRate: baud,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", d.PortName, err)
	}
	return port, nil
}

// NetDialer connects to a hands-free unit emulator over TCP.
type NetDialer struct {
	Address string
	Timeout time.Duration
}

func (d NetDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("gateway: context is nil")
	}
	if d.Address == "" {
		return nil, errors.New("gateway: address is required")
	}
	nd := net.Dialer{Timeout: d.Timeout}
	conn, err := nd.DialContext(ctx, "tcp", d.Address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", d.Address, err)
	}
	return conn, nil
}
