// Package tcp provides an in-memory TCP network for tests. Listeners and
// dialers created on one Network talk through net.Pipe pairs, so unit
// tests of the mock endpoint never touch a real socket.
package tcp

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// Network simulates a TCP network. Its ListenTCP and DialTCP methods match
// the injectable function types in pkg/config.
type Network struct {
	mu        sync.Mutex
	listeners map[string]*Listener
	nextPort  int
}

// NewNetwork creates an empty in-memory network.
func NewNetwork() *Network {
	return &Network{
		listeners: make(map[string]*Listener),
		nextPort:  41000,
	}
}

// ListenTCP creates a listener on laddr. Port 0 is assigned from an
// internal counter, mirroring ephemeral port allocation.
func (n *Network) ListenTCP(network string, laddr *net.TCPAddr) (net.Listener, error) {
	if network != "tcp" {
		return nil, fmt.Errorf("unsupported network type: %s", network)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	addr := *laddr
	if addr.IP == nil {
		addr.IP = net.IPv4(127, 0, 0, 1)
	}
	if addr.Port == 0 {
		addr.Port = n.nextPort
		n.nextPort++
	}

	key := addr.String()
	if _, exists := n.listeners[key]; exists {
		return nil, fmt.Errorf("address already in use: %s", key)
	}

	l := &Listener{
		addr:    &addr,
		pending: make(chan *Conn),
		closed:  make(chan struct{}),
		network: n,
	}
	n.listeners[key] = l

	return l, nil
}

// DialTCP connects to a listener on this network. laddr may be nil, in
// which case a fake ephemeral local address is used.
func (n *Network) DialTCP(network string, laddr, raddr *net.TCPAddr) (net.Conn, error) {
	if network != "tcp" {
		return nil, fmt.Errorf("unsupported network type: %s", network)
	}

	n.mu.Lock()
	l, exists := n.listeners[raddr.String()]
	n.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("connection refused: no listener on %s", raddr)
	}

	if laddr == nil {
		laddr = &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000 + int(time.Now().UnixNano())%10000}
	}

	clientSide, serverSide := net.Pipe()

	client := &Conn{Conn: clientSide, local: laddr, remote: raddr}
	server := &Conn{Conn: serverSide, local: raddr, remote: laddr}

	select {
	case l.pending <- server:
		return client, nil
	case <-l.closed:
		clientSide.Close()
		serverSide.Close()
		return nil, fmt.Errorf("connection refused: listener on %s closed", raddr)
	case <-time.After(time.Second):
		clientSide.Close()
		serverSide.Close()
		return nil, fmt.Errorf("timeout connecting to %s", raddr)
	}
}

func (n *Network) remove(key string) {
	n.mu.Lock()
	delete(n.listeners, key)
	n.mu.Unlock()
}
