// Package client dials a scripted endpoint the way a system under test
// would. It backs the probe command and the endpoint's own integration
// tests.
package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"

	"dominicbreuker/mocktcp/pkg/config"
	"dominicbreuker/mocktcp/pkg/crypto"
	"dominicbreuker/mocktcp/pkg/format"
	"dominicbreuker/mocktcp/pkg/transport/tcp"
	"dominicbreuker/mocktcp/pkg/transport/ws"
)

// Client ...
type Client struct {
	ctx context.Context
	cfg *config.Shared

	conn net.Conn
}

// New ...
func New(ctx context.Context, cfg *config.Shared) *Client {
	return &Client{
		ctx: ctx,
		cfg: cfg,
	}
}

// Close ...
func (c *Client) Close() error {
	c.cfg.GetLogger().VerboseMsg("connection to %s closed", c.conn.RemoteAddr())

	return c.conn.Close()
}

// GetConnection ...
func (c *Client) GetConnection() net.Conn {
	return c.conn
}

// Connect dials the endpoint over the configured transport.
func (c *Client) Connect() error {
	addr := format.Addr(c.cfg.GetHost(), c.cfg.Port)

	c.cfg.GetLogger().VerboseMsg("connecting to %s", addr)

	var err error
	switch c.cfg.GetProtocol() {
	case config.ProtoWS:
		c.conn, err = ws.Dial(c.ctx, addr)
		if err != nil {
			return fmt.Errorf("ws.Dial(%s): %w", addr, err)
		}

	case config.ProtoTLS:
		c.conn, err = tcp.Dial(addr, c.cfg.Deps)
		if err != nil {
			return fmt.Errorf("tcp.Dial(%s): %w", addr, err)
		}

		c.conn, err = upgradeToTLS(c.conn, c.cfg.Key)
		if err != nil {
			return fmt.Errorf("upgradeToTLS: %w", err)
		}

	default:
		c.conn, err = tcp.Dial(addr, c.cfg.Deps)
		if err != nil {
			return fmt.Errorf("tcp.Dial(%s): %w", addr, err)
		}
	}

	return nil
}

func upgradeToTLS(conn net.Conn, key string) (net.Conn, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true, // we verify ourselves to skip hostname validation
	}

	if key != "" {
		caCert, cert, err := crypto.GenerateCertificates(key)
		if err != nil {
			return nil, fmt.Errorf("crypto.GenerateCertificates(): %w", err)
		}

		cfg.Certificates = []tls.Certificate{cert}
		cfg.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			return customVerifier(caCert, rawCerts)
		}
	}

	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tlsConn.Handshake(): %w", err)
	}

	return tlsConn, nil
}

// customVerifier verifies the certificate but cares only about the root
// certificate, not SANs.
func customVerifier(caCert *x509.CertPool, rawCerts [][]byte) error {
	if len(rawCerts) != 1 {
		return fmt.Errorf("unexpected number of rawCerts: %d", len(rawCerts))
	}

	cert, err := x509.ParseCertificate(rawCerts[0])
	if err != nil {
		return fmt.Errorf("x509.ParseCertificate(rawCert): %w", err)
	}

	if _, err := cert.Verify(x509.VerifyOptions{
		Roots: caCert,
	}); err != nil {
		return fmt.Errorf("cert.Verify(caCert): %w", err)
	}

	return nil
}
