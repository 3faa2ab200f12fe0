package format

import "testing"

func TestAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{"IPv4", "127.0.0.1", 8080, "127.0.0.1:8080"},
		{"hostname", "localhost", 1234, "localhost:1234"},
		{"empty host", "", 9000, ":9000"},
		{"IPv6", "::1", 8080, "[::1]:8080"},
		{"IPv6 full", "2001:db8::1", 443, "[2001:db8::1]:443"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Addr(tt.host, tt.port); got != tt.want {
				t.Errorf("Addr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
			}
		})
	}
}

func TestSplitAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		addr     string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"IPv4", "127.0.0.1:8080", "127.0.0.1", 8080, false},
		{"IPv6", "[::1]:443", "::1", 443, false},
		{"no port", "127.0.0.1", "", 0, true},
		{"bad port", "127.0.0.1:http", "", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			host, port, err := SplitAddr(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitAddr(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("SplitAddr(%q) = (%q, %d), want (%q, %d)", tt.addr, host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}
