package tlsmode

import (
	"context"
	"crypto/tls"
	"testing"
	"time"

	"dominicbreuker/mocktcp/pkg/client"
	"dominicbreuker/mocktcp/pkg/config"
	"dominicbreuker/mocktcp/pkg/script"
	"dominicbreuker/mocktcp/test/helpers"
)

// TestScriptedConversationOverTLS drives a scripted exchange through a
// real TLS handshake.
func TestScriptedConversationOverTLS(t *testing.T) {
	t.Parallel()

	reporter := &script.RecordingReporter{}
	cfg := &config.Shared{
		Protocol: config.ProtoTLS,
		Reporter: reporter,
	}

	s := helpers.StartEndpoint(t, cfg, script.New(
		script.Recv([]byte("SECRET"), "wait for password"),
		script.Send([]byte("GRANTED"), "let them in"),
	))

	conn, err := tls.Dial("tcp", s.ConnectString(), &tls.Config{
		InsecureSkipVerify: true,
	})
	if err != nil {
		t.Fatalf("tls.Dial(%s): %v", s.ConnectString(), err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	if _, err := conn.Write([]byte("SECRET")); err != nil {
		t.Fatalf("Write(): %v", err)
	}

	got, err := helpers.ReadExactly(conn, 7)
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}
	if string(got) != "GRANTED" {
		t.Errorf("response = %q, want %q", got, "GRANTED")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait(): %v", err)
	}

	checks := reporter.Checks()
	if len(checks) != 1 || !checks[0].Pass {
		t.Errorf("checks = %+v, want one passing check", checks)
	}
}

// TestClientPinsSeededCertificate verifies the probe client accepts an
// endpoint serving the certificate derived from the shared seed.
func TestClientPinsSeededCertificate(t *testing.T) {
	t.Parallel()

	const seed = "shared test seed"

	cfg := &config.Shared{
		Protocol: config.ProtoTLS,
		Key:      seed,
	}

	s := helpers.StartEndpoint(t, cfg, script.New(
		script.Send([]byte("HI"), "greet"),
	))

	host, port := s.ConnectAddr()
	clientCfg := &config.Shared{
		Host:     host,
		Port:     port,
		Protocol: config.ProtoTLS,
		Key:      seed,
	}

	c := client.New(context.Background(), clientCfg)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect(): %v", err)
	}
	defer c.Close()

	conn := c.GetConnection()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	got, err := helpers.ReadExactly(conn, 2)
	if err != nil {
		t.Fatalf("reading greeting: %v", err)
	}
	if string(got) != "HI" {
		t.Errorf("greeting = %q, want %q", got, "HI")
	}
}
