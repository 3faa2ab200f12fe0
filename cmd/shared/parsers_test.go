package shared

import (
	"testing"

	"dominicbreuker/mocktcp/pkg/config"
)

func TestParseTransport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantProto config.Protocol
		wantHost  string
		wantPort  int
		wantErr   bool
	}{
		{
			name:      "tcp with host and port",
			input:     "tcp://127.0.0.1:4000",
			wantProto: config.ProtoTCP,
			wantHost:  "127.0.0.1",
			wantPort:  4000,
		},
		{
			name:      "tls",
			input:     "tls://localhost:8443",
			wantProto: config.ProtoTLS,
			wantHost:  "localhost",
			wantPort:  8443,
		},
		{
			name:      "ws",
			input:     "ws://127.0.0.1:9000",
			wantProto: config.ProtoWS,
			wantHost:  "127.0.0.1",
			wantPort:  9000,
		},
		{
			name:      "empty host",
			input:     "tcp://:4000",
			wantProto: config.ProtoTCP,
			wantHost:  "",
			wantPort:  4000,
		},
		{
			name:      "ephemeral port",
			input:     "tcp://127.0.0.1:0",
			wantProto: config.ProtoTCP,
			wantHost:  "127.0.0.1",
			wantPort:  0,
		},
		{
			name:    "unknown protocol",
			input:   "udp://127.0.0.1:4000",
			wantErr: true,
		},
		{
			name:    "missing port",
			input:   "tcp://127.0.0.1",
			wantErr: true,
		},
		{
			name:    "port out of range",
			input:   "tcp://127.0.0.1:70000",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not a transport",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			proto, host, port, err := ParseTransport(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTransport(%q) succeeded, want error", tt.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseTransport(%q): %v", tt.input, err)
			}
			if proto != tt.wantProto || host != tt.wantHost || port != tt.wantPort {
				t.Errorf("ParseTransport(%q) = (%s, %s, %d), want (%s, %s, %d)",
					tt.input, proto, host, port, tt.wantProto, tt.wantHost, tt.wantPort)
			}
		})
	}
}
