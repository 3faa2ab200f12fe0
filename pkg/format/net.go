// Package format provides helpers for rendering and parsing network addresses.
package format

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Addr joins host and port into a dialable address, bracketing IPv6 hosts.
func Addr(host string, port int) string {
	if strings.ContainsAny(host, ":") { // IPv6
		return fmt.Sprintf("[%s]:%d", host, port)
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// SplitAddr parses an address of the form "host:port" into its components.
// IPv6 brackets are removed from the host.
func SplitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("net.SplitHostPort(%s): %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("parsing port %q: %w", portStr, err)
	}

	return host, port, nil
}
