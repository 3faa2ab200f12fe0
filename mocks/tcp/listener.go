package tcp

import (
	"net"
	"sync"
)

// Listener is an in-memory net.Listener fed by Network.DialTCP.
type Listener struct {
	addr    *net.TCPAddr
	pending chan *Conn
	network *Network

	closed    chan struct{}
	closeOnce sync.Once
}

var _ net.Listener = (*Listener)(nil)

// Accept returns the next dialed connection.
func (l *Listener) Accept() (net.Conn, error) {
	select {
	case conn := <-l.pending:
		return conn, nil
	case <-l.closed:
		return nil, net.ErrClosed
	}
}

// Close removes the listener from its network. Pending and future dials
// are refused. It is idempotent.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.closed)
		l.network.remove(l.addr.String())
	})
	return nil
}

// Addr returns the listening address, with ephemeral ports resolved.
func (l *Listener) Addr() net.Addr {
	return l.addr
}
