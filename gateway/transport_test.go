package gateway

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"go.bug.st/serial"
)

func TestSerialDialer_Dial_EmptyPortName(t *testing.T) {
	dialer := SerialDialer{}

	transport, err := dialer.Dial(context.Background())

	if err == nil {
		t.Fatal("expected error for empty port name")
	}
	if transport != nil {
		t.Error("expected nil transport for empty port name")
	}
	if err.Error() != "gateway: serial port name is required" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestSerialDialer_Dial_NilContext(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/rfcomm0",
	}

	transport, err := dialer.Dial(nil)

	if err == nil {
		t.Fatal("expected error for nil context")
	}
	if transport != nil {
		t.Error("expected nil transport for nil context")
	}
	if err.Error() != "gateway: context is nil" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestSerialDialer_Dial_ContextCanceled(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent",
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport, err := dialer.Dial(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for canceled context")
	}
}

func TestSerialDialer_Dial_WithMode(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent",
		Mode: &serial.Mode{
			BaudRate: 9600,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		},
	}

	transport, err := dialer.Dial(context.Background())

	if err == nil {
		t.Fatal("expected error for non-existent port")
	}
	if transport != nil {
		t.Error("expected nil transport for non-existent port")
	}
}

func TestSerialDialer_Dial_DefaultMode(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent",
	}

	transport, err := dialer.Dial(context.Background())

	if err == nil {
		t.Error("expected error for non-existent port")
	}
	if transport != nil {
		t.Error("expected nil transport for non-existent port")
	}
}

func TestNetDialer_Dial(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	dialer := NetDialer{Address: ln.Addr().String(), Timeout: time.Second}
	transport, err := dialer.Dial(context.Background())
	if err != nil {
		t.Fatalf("unexpected dial error: %v", err)
	}
	defer transport.Close()

	var peer net.Conn
	select {
	case peer = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for accept")
	}
	defer peer.Close()

	if _, err := io.WriteString(peer, "AT+BRSF=0\r"); err != nil {
		t.Fatalf("peer write: %v", err)
	}
	buf := make([]byte, 32)
	n, err := transport.Read(buf)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if got := string(buf[:n]); got != "AT+BRSF=0\r" {
		t.Errorf("unexpected data %q", got)
	}
}

func TestNetDialer_Dial_EmptyAddress(t *testing.T) {
	transport, err := NetDialer{}.Dial(context.Background())
	if err == nil || err.Error() != "gateway: address is required" {
		t.Errorf("unexpected error: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for empty address")
	}
}

func TestTestTransport(t *testing.T) {
	transport := NewTestTransport()

	if _, err := transport.Write([]byte("\r\nOK\r\n")); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	if got := <-transport.Written(); got != "OK" {
		t.Errorf("expected OK, got %q", got)
	}

	transport.SendData("ATA\r")
	buf := make([]byte, 8)
	n, err := transport.Read(buf)
	if err != nil || string(buf[:n]) != "ATA\r" {
		t.Errorf("unexpected read %q, %v", buf[:n], err)
	}

	// A chunk larger than the read buffer is handed out in pieces.
	transport.SendData("AT+BRSF=959\r")
	var got []byte
	for len(got) < len("AT+BRSF=959\r") {
		n, err := transport.Read(buf[:5])
		if err != nil {
			t.Fatalf("unexpected read error: %v", err)
		}
		got = append(got, buf[:n]...)
	}
	if string(got) != "AT+BRSF=959\r" {
		t.Errorf("expected the whole chunk, got %q", got)
	}

	transport.Close()
	if _, err := transport.Read(buf); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after close, got: %v", err)
	}
	if _, err := transport.Write([]byte("OK")); err == nil {
		t.Error("expected write error after close")
	}
}
