// Package config holds the configuration shared by the mock endpoint and
// the probe client, plus injectable network dependencies for tests.
package config

import (
	"fmt"
	"net"
	"time"

	"dominicbreuker/mocktcp/pkg/log"
	"dominicbreuker/mocktcp/pkg/script"
)

// Protocol selects the byte-stream transport the endpoint listens on.
type Protocol string

// Supported transports.
const (
	ProtoTCP Protocol = "tcp"
	ProtoTLS Protocol = "tls"
	ProtoWS  Protocol = "ws"
)

// DefaultTimeout is the per-connection idle timeout used when none is set.
const DefaultTimeout = 2 * time.Second

// Shared configures a mock endpoint. It is immutable once the server
// starts. The zero value listens on an ephemeral loopback TCP port with
// the default idle timeout.
type Shared struct {
	Host     string   // bind address, default loopback
	Port     int      // 0 means an OS-assigned ephemeral port
	Protocol Protocol // default tcp

	// Key seeds deterministic TLS certificate generation so clients can
	// pin the CA. Empty means an ephemeral random certificate.
	Key string

	// Timeout is the per-connection idle timeout: the maximum time a
	// connection may wait on its current blocking action.
	Timeout time.Duration

	LogFile string // wire capture file, empty to disable
	Verbose bool

	Logger *log.Logger
	Deps   *Dependencies

	// Reporter receives the outcome of every receive-and-verify check. If
	// nil, outcomes are logged through the endpoint's logger.
	Reporter script.Reporter

	// OnTimeout runs when a connection exceeds the idle timeout. If nil,
	// the whole process is aborted: a stalled connection means the test
	// setup is broken, and hanging silently would hide that.
	OnTimeout func(conn net.Conn)

	// OnError runs on a stream I/O error, before the connection is
	// destroyed. The error is connection-local and never fatal.
	OnError func(conn net.Conn, err error)

	// OnUnexpected runs when a connection is accepted with no script left
	// to assign. If nil, the process is aborted.
	OnUnexpected func(conn net.Conn)

	// OnDone runs once after every script has been assigned and every
	// connection has finished.
	OnDone func()
}

// Validate checks the configuration and returns all problems found.
func (c *Shared) Validate() []error {
	var errors []error

	if c.Port < 0 || c.Port > 65535 {
		errors = append(errors, fmt.Errorf("port must be in [0, 65535], 0 for an ephemeral port"))
	}

	switch c.Protocol {
	case "", ProtoTCP, ProtoTLS, ProtoWS:
	default:
		errors = append(errors, fmt.Errorf("unknown protocol %q, must be one of tcp|tls|ws", c.Protocol))
	}

	if c.Key != "" && c.GetProtocol() != ProtoTLS {
		errors = append(errors, fmt.Errorf("a TLS key requires the tls protocol"))
	}

	if c.Timeout < 0 {
		errors = append(errors, fmt.Errorf("timeout must not be negative"))
	}

	return errors
}

// GetHost returns the bind address, defaulting to loopback.
func (c *Shared) GetHost() string {
	if c.Host == "" {
		return "127.0.0.1"
	}
	return c.Host
}

// GetProtocol returns the transport, defaulting to plain TCP.
func (c *Shared) GetProtocol() Protocol {
	if c.Protocol == "" {
		return ProtoTCP
	}
	return c.Protocol
}

// GetTimeout returns the idle timeout, defaulting to DefaultTimeout.
func (c *Shared) GetTimeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// GetLogger returns the configured logger or a quiet default.
func (c *Shared) GetLogger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.NewLogger(c.Verbose)
}
