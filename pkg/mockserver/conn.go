package mockserver

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"dominicbreuker/mocktcp/pkg/log"
)

// Conn is one accepted stream bound to exactly one script. It implements
// net.Conn so scripted callbacks and policy hooks can use it directly, and
// adds the idle-timeout discipline the action engine runs under.
type Conn struct {
	id     string
	nc     net.Conn
	idle   time.Duration
	logger *log.Logger

	done        chan struct{}
	destroyOnce sync.Once
}

func newConn(nc net.Conn, idle time.Duration, logger *log.Logger) *Conn {
	return &Conn{
		id:     uuid.NewString()[:8],
		nc:     nc,
		idle:   idle,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// ID returns a short identifier correlating log lines of this connection.
func (c *Conn) ID() string {
	return c.id
}

// readExact reads exactly n bytes, failing once the idle timeout passes
// without them arriving in full.
func (c *Conn) readExact(n int) ([]byte, error) {
	if c.idle > 0 {
		if err := c.nc.SetReadDeadline(time.Now().Add(c.idle)); err == nil {
			defer c.nc.SetReadDeadline(time.Time{})
		}
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(c.nc, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// write sends b on the stream under the idle deadline.
func (c *Conn) write(b []byte) error {
	if c.idle > 0 {
		if err := c.nc.SetWriteDeadline(time.Now().Add(c.idle)); err == nil {
			defer c.nc.SetWriteDeadline(time.Time{})
		}
	}

	_, err := c.nc.Write(b)
	return err
}

// sleep pauses for d. It reports false if the connection was destroyed
// before the pause elapsed.
func (c *Conn) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-c.done:
		return false
	}
}

// shutdown ends the connection gracefully after a script ran to
// completion. The write side is half-closed first when the transport
// supports it, so the peer sees a clean EOF.
func (c *Conn) shutdown() {
	type writeCloser interface {
		CloseWrite() error
	}
	if wc, ok := c.nc.(writeCloser); ok {
		wc.CloseWrite()
	}

	c.Destroy()
}

// Destroy closes the connection and cancels any pending read or sleep.
// It is idempotent; destroying a destroyed connection has no effect.
func (c *Conn) Destroy() {
	c.destroyOnce.Do(func() {
		close(c.done)
		c.nc.Close()
		c.logger.VerboseMsg("connection %s destroyed", c.id)
	})
}

// destroyed reports whether Destroy has run.
func (c *Conn) destroyed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// net.Conn implementation, delegating to the underlying stream.

func (c *Conn) Read(b []byte) (int, error)  { return c.nc.Read(b) }
func (c *Conn) Write(b []byte) (int, error) { return c.nc.Write(b) }

// Close destroys the connection. See Destroy.
func (c *Conn) Close() error {
	c.Destroy()
	return nil
}

func (c *Conn) LocalAddr() net.Addr  { return c.nc.LocalAddr() }
func (c *Conn) RemoteAddr() net.Addr { return c.nc.RemoteAddr() }

func (c *Conn) SetDeadline(t time.Time) error      { return c.nc.SetDeadline(t) }
func (c *Conn) SetReadDeadline(t time.Time) error  { return c.nc.SetReadDeadline(t) }
func (c *Conn) SetWriteDeadline(t time.Time) error { return c.nc.SetWriteDeadline(t) }
