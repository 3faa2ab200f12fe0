// Package transport opens the listener a mock endpoint serves on. Each
// transport yields ordinary net.Conn byte streams, so the scripted engine
// is identical across tcp, tls, and ws.
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"dominicbreuker/mocktcp/pkg/config"
	"dominicbreuker/mocktcp/pkg/crypto"
	"dominicbreuker/mocktcp/pkg/format"
	"dominicbreuker/mocktcp/pkg/transport/tcp"
	"dominicbreuker/mocktcp/pkg/transport/ws"
)

// Listen creates the listener described by cfg. The returned listener's
// Addr() reports the actually bound address, which matters when cfg asks
// for an ephemeral port.
func Listen(ctx context.Context, cfg *config.Shared) (net.Listener, error) {
	addr := format.Addr(cfg.GetHost(), cfg.Port)

	switch cfg.GetProtocol() {
	case config.ProtoWS:
		l, err := ws.NewListener(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("ws.NewListener(%s): %w", addr, err)
		}
		return l, nil

	case config.ProtoTLS:
		inner, err := tcp.NewListener(addr, cfg.Deps)
		if err != nil {
			return nil, fmt.Errorf("tcp.NewListener(%s): %w", addr, err)
		}

		_, cert, err := crypto.GenerateCertificates(cfg.Key)
		if err != nil {
			inner.Close()
			return nil, fmt.Errorf("crypto.GenerateCertificates(): %w", err)
		}

		tlsCfg := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		return tls.NewListener(inner, tlsCfg), nil

	default:
		l, err := tcp.NewListener(addr, cfg.Deps)
		if err != nil {
			return nil, fmt.Errorf("tcp.NewListener(%s): %w", addr, err)
		}
		return l, nil
	}
}
