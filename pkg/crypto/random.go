package crypto

import (
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"
)

// randomString draws length characters of URL-safe base64 from rng.
func randomString(length int, rng io.Reader) (string, error) {
	bytes := make([]byte, length)
	if _, err := io.ReadFull(rng, bytes); err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes)[:length], nil
}

// newSeededReader returns a reader producing a byte stream derived only
// from seed, by iterating SHA-512 over its own state. It is not a CSPRNG
// for secrets shared with an adversary; it exists so that both sides of a
// test can derive the same CA from a shared key.
func newSeededReader(seed string) io.Reader {
	return &seededReader{state: []byte(seed)}
}

type seededReader struct {
	state []byte
}

func (r *seededReader) Read(b []byte) (int, error) {
	n := 0
	for n < len(b) {
		sum := sha512.Sum512(r.state)
		r.state = sum[:sha512.Size/2]
		n += copy(b[n:], sum[sha512.Size/2:])
	}
	return n, nil
}
