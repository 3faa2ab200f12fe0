package log

import (
	"fmt"
	"net"
	"os"
	"time"
)

// captureConn wraps a net.Conn and appends every byte read from or written
// to the stream to a capture file. Reads and writes share one file, in the
// order the endpoint observed them.
type captureConn struct {
	conn net.Conn
	file *os.File
}

// NewCaptureConn wraps conn so that all traffic is also written to the file
// at path. The file is created if missing and appended to otherwise, so
// several connections may share one capture file.
func NewCaptureConn(conn net.Conn, path string) (net.Conn, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile(%s): %w", path, err)
	}

	return &captureConn{conn: conn, file: file}, nil
}

func (c *captureConn) Read(b []byte) (int, error) {
	n, err := c.conn.Read(b)
	if n > 0 {
		if _, werr := c.file.Write(b[:n]); werr != nil {
			return n, fmt.Errorf("capturing read: %w", werr)
		}
	}
	return n, err
}

func (c *captureConn) Write(b []byte) (int, error) {
	n, err := c.conn.Write(b)
	if n > 0 {
		if _, werr := c.file.Write(b[:n]); werr != nil {
			return n, fmt.Errorf("capturing write: %w", werr)
		}
	}
	return n, err
}

func (c *captureConn) Close() error {
	c.file.Close()
	return c.conn.Close()
}

func (c *captureConn) LocalAddr() net.Addr  { return c.conn.LocalAddr() }
func (c *captureConn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

func (c *captureConn) SetDeadline(t time.Time) error      { return c.conn.SetDeadline(t) }
func (c *captureConn) SetReadDeadline(t time.Time) error  { return c.conn.SetReadDeadline(t) }
func (c *captureConn) SetWriteDeadline(t time.Time) error { return c.conn.SetWriteDeadline(t) }
