package tcp

import (
	"fmt"
	"net"

	"dominicbreuker/mocktcp/pkg/config"
)

// Dial establishes a TCP connection to addr using the dialer func from
// deps, with keep-alive enabled on real TCP connections.
func Dial(addr string, deps *config.Dependencies) (net.Conn, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	dial := config.GetTCPDialerFunc(deps)

	conn, err := dial("tcp", nil, tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("dial(tcp, %s): %w", addr, err)
	}

	if tc, ok := conn.(*net.TCPConn); ok {
		tc.SetKeepAlive(true)
	}

	return conn, nil
}
