// Package helpers provides common utilities for integration and end-to-end
// tests running against real sockets.
package helpers

import (
	"fmt"
	"io"
	"net"
	"time"

	"dominicbreuker/mocktcp/pkg/config"
	"dominicbreuker/mocktcp/pkg/mockserver"
	"dominicbreuker/mocktcp/pkg/script"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	Cleanup(func())
}

// StartEndpoint runs a scripted endpoint on an ephemeral loopback port.
// The endpoint is closed when the test finishes.
func StartEndpoint(t TB, cfg *config.Shared, scripts ...*script.Script) *mockserver.MockServer {
	t.Helper()

	if cfg == nil {
		cfg = &config.Shared{}
	}
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	s, err := mockserver.Start(cfg, scripts)
	if err != nil {
		t.Fatalf("mockserver.Start(): %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// DialEndpoint opens a plain TCP connection to the endpoint with a test
// deadline applied.
func DialEndpoint(t TB, s *mockserver.MockServer) net.Conn {
	t.Helper()

	conn, err := net.Dial("tcp", s.ConnectString())
	if err != nil {
		t.Fatalf("net.Dial(%s): %v", s.ConnectString(), err)
	}
	t.Cleanup(func() { conn.Close() })

	conn.SetDeadline(time.Now().Add(5 * time.Second))
	return conn
}

// ReadExactly reads exactly n bytes from conn.
func ReadExactly(conn net.Conn, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, fmt.Errorf("reading %d bytes: %w", n, err)
	}
	return buf, nil
}

// ExpectEOF verifies the peer closed the stream cleanly.
func ExpectEOF(conn net.Conn) error {
	if _, err := conn.Read(make([]byte, 1)); err != io.EOF {
		return fmt.Errorf("expected EOF, got %v", err)
	}
	return nil
}
