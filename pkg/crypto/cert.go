// Package crypto generates the ephemeral TLS certificates used by the
// endpoint's tls protocol. With a seed, generation is deterministic so a
// client under test can pin the CA; without one, certificates are random.
package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"time"
)

// GenerateCertificates builds a CA and a leaf certificate signed by it.
// The CA pool is what a pinning client should trust; the leaf is what the
// endpoint serves.
func GenerateCertificates(seed string) (*x509.CertPool, tls.Certificate, error) {
	var pool *x509.CertPool
	var leaf tls.Certificate

	if seed == "" {
		random, err := randomString(32, rand.Reader)
		if err != nil {
			return nil, leaf, fmt.Errorf("randomString(32): %w", err)
		}
		seed = random
	}

	caKey, caCertDER, err := generateCA(seed)
	if err != nil {
		return nil, leaf, fmt.Errorf("generateCA(): %w", err)
	}

	caCert, err := x509.ParseCertificate(caCertDER)
	if err != nil {
		return nil, leaf, fmt.Errorf("x509.ParseCertificate(ca): %w", err)
	}

	pool = x509.NewCertPool()
	pool.AddCert(caCert)

	leaf, err = generateLeaf(caCert, caKey)
	if err != nil {
		return nil, leaf, fmt.Errorf("generateLeaf(): %w", err)
	}

	return pool, leaf, nil
}

// generateCA derives a CA key pair and self-signed certificate from seed.
// The same seed always yields the same CA.
func generateCA(seed string) (*ecdsa.PrivateKey, []byte, error) {
	rng := newSeededReader(seed)

	key, err := ecdsa.GenerateKey(elliptic.P256(), rng)
	if err != nil {
		return nil, nil, fmt.Errorf("ecdsa.GenerateKey(): %w", err)
	}

	cn, err := randomString(8, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("generating common name: %w", err)
	}

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		NotAfter:     time.Date(2063, 4, 5, 11, 0, 0, 0, time.UTC),

		BasicConstraintsValid: true,
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
	}

	der, err := x509.CreateCertificate(rng, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, nil, fmt.Errorf("x509.CreateCertificate(ca): %w", err)
	}

	return key, der, nil
}

// generateLeaf creates a fresh serving certificate signed by the CA. The
// leaf itself is always random; only the CA is seed-derived.
func generateLeaf(caCert *x509.Certificate, caKey *ecdsa.PrivateKey) (tls.Certificate, error) {
	var out tls.Certificate

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return out, fmt.Errorf("ecdsa.GenerateKey(): %w", err)
	}

	cn, err := randomString(8, rand.Reader)
	if err != nil {
		return out, fmt.Errorf("generating common name: %w", err)
	}

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		NotAfter:     time.Date(2063, 4, 5, 11, 0, 0, 0, time.UTC),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, caCert, &key.PublicKey, caKey)
	if err != nil {
		return out, fmt.Errorf("x509.CreateCertificate(leaf): %w", err)
	}

	out = tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
	}
	return out, nil
}
