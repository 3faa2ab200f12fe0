package shared

import (
	"fmt"
	"regexp"
	"strconv"

	"dominicbreuker/mocktcp/pkg/config"
)

// ParseTransport parses a transport string in the format "protocol://host:port"
// where protocol is one of tcp, tls, or ws. The host can be empty to bind to
// the loopback interface, and port 0 asks for an ephemeral port. Returns the
// protocol, host, port, and any parsing error.
func ParseTransport(s string) (proto config.Protocol, host string, port int, err error) {
	re := regexp.MustCompile(`^(tcp|tls|ws)://([^:]*):(\d+)$`)
	matches := re.FindStringSubmatch(s)

	if len(matches) != 4 {
		err = parsingError(s)
		return
	}

	switch matches[1] {
	case "tcp":
		proto = config.ProtoTCP
	case "tls":
		proto = config.ProtoTLS
	case "ws":
		proto = config.ProtoWS
	default:
		err = parsingError(s)
		return
	}
	host = matches[2]

	port, err = strconv.Atoi(matches[3])
	if err != nil || port < 0 || port > 65535 {
		err = parsingError(s)
		return
	}

	return
}

func parsingError(s string) error {
	return fmt.Errorf("parsing %s: format should be 'protocol://host:port', where protocol = tcp|tls|ws", s)
}
