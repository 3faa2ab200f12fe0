package tcp

import "net"

// Conn is an in-memory connection with TCP-looking addresses. Deadlines
// and close semantics come from the underlying net.Pipe.
type Conn struct {
	net.Conn

	local  *net.TCPAddr
	remote *net.TCPAddr
}

var _ net.Conn = (*Conn)(nil)

// LocalAddr returns the simulated local TCP address.
func (c *Conn) LocalAddr() net.Addr {
	return c.local
}

// RemoteAddr returns the simulated remote TCP address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.remote
}
