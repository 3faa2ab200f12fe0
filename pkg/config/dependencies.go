package config

import "net"

// Dependencies contains injectable network primitives. All fields are
// optional; nil fields fall back to the real network. Tests substitute the
// in-memory mock TCP network from mocks/tcp.
type Dependencies struct {
	TCPDialer   TCPDialerFunc
	TCPListener TCPListenerFunc
}

// TCPDialerFunc dials a TCP connection. It returns a net.Conn to allow for
// mock implementations.
type TCPDialerFunc func(network string, laddr, raddr *net.TCPAddr) (net.Conn, error)

// TCPListenerFunc creates a TCP listener. It returns a net.Listener to
// allow for mock implementations.
type TCPListenerFunc func(network string, laddr *net.TCPAddr) (net.Listener, error)

// GetTCPDialerFunc returns the dialer from deps, or one backed by
// net.DialTCP.
func GetTCPDialerFunc(deps *Dependencies) TCPDialerFunc {
	if deps != nil && deps.TCPDialer != nil {
		return deps.TCPDialer
	}
	return func(network string, laddr, raddr *net.TCPAddr) (net.Conn, error) {
		return net.DialTCP(network, laddr, raddr)
	}
}

// GetTCPListenerFunc returns the listener func from deps, or one backed by
// net.ListenTCP.
func GetTCPListenerFunc(deps *Dependencies) TCPListenerFunc {
	if deps != nil && deps.TCPListener != nil {
		return deps.TCPListener
	}
	return func(network string, laddr *net.TCPAddr) (net.Listener, error) {
		return net.ListenTCP(network, laddr)
	}
}
