// Package tcp provides the plain TCP transport.
package tcp

import (
	"fmt"
	"net"

	"dominicbreuker/mocktcp/pkg/config"
)

// NewListener creates a TCP listener on addr using the listener func from
// deps, so tests can listen on the in-memory mock network instead of a
// real socket.
func NewListener(addr string, deps *config.Dependencies) (net.Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	listen := config.GetTCPListenerFunc(deps)

	nl, err := listen("tcp", tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen(tcp, %s): %w", addr, err)
	}

	return nl, nil
}
