package crypto

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"
)

func TestGenerateCertificates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed string
	}{
		{"with seed", "test-seed-123"},
		{"without seed", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool, cert, err := GenerateCertificates(tt.seed)
			if err != nil {
				t.Fatalf("GenerateCertificates(%q): %v", tt.seed, err)
			}
			if pool == nil {
				t.Error("GenerateCertificates() returned nil CA pool")
			}
			if cert.PrivateKey == nil {
				t.Error("GenerateCertificates() returned leaf with nil private key")
			}
			if len(cert.Certificate) == 0 {
				t.Error("GenerateCertificates() returned leaf with no certificate data")
			}
		})
	}
}

func TestSeededReader_Deterministic(t *testing.T) {
	t.Parallel()

	a := make([]byte, 128)
	b := make([]byte, 128)

	if _, err := io.ReadFull(newSeededReader("seed"), a); err != nil {
		t.Fatalf("ReadFull(): %v", err)
	}
	if _, err := io.ReadFull(newSeededReader("seed"), b); err != nil {
		t.Fatalf("ReadFull(): %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("same seed produced different byte streams")
	}

	c := make([]byte, 128)
	if _, err := io.ReadFull(newSeededReader("other"), c); err != nil {
		t.Fatalf("ReadFull(): %v", err)
	}
	if bytes.Equal(a, c) {
		t.Error("different seeds produced identical byte streams")
	}
}

func TestRandomString(t *testing.T) {
	t.Parallel()

	s, err := randomString(16, rand.Reader)
	if err != nil {
		t.Fatalf("randomString(): %v", err)
	}
	if len(s) != 16 {
		t.Errorf("randomString(16) length = %d, want 16", len(s))
	}
}
