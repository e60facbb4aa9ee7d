package signing

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"

	"media-scan/internal/logging"
	"media-scan/internal/metrics"
)

// Service signs and verifies media path tokens with a single RSA key.
type Service struct {
	key *rsa.PrivateKey
}

// New returns a Service backed by the given key.
func New(key *rsa.PrivateKey) *Service {
	return &Service{key: key}
}

// LoadKeyFile reads a PEM-encoded RSA private key from disk.
func LoadKeyFile(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	key, err := ParseKey(data)
	if err != nil {
		return nil, err
	}

	logging.Info("Signing key loaded from %s (%d bits)", path, key.N.BitLen())
	return New(key), nil
}

// ParseKey decodes a PEM block holding an RSA private key in either
// PKCS#8 or PKCS#1 form.
func ParseKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("signing key is not PEM encoded")
	}

	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("signing key is not an RSA key")
		}
		return key, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}
	return key, nil
}

// Sign produces an access token for a media path. Tokens are not
// deterministic: signing the same path twice yields different tokens,
// and both verify.
func (s *Service) Sign(path string) (string, error) {
	digest := sha256.Sum256([]byte(path))

	sig, err := rsa.SignPSS(rand.Reader, s.key, crypto.SHA256, digest[:], nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign path: %w", err)
	}

	metrics.SignaturesIssuedTotal.Inc()
	return base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify reports whether token is a valid access token for path. Any
// failure, malformed encoding included, reads as invalid.
func (s *Service) Verify(path, token string) bool {
	sig, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		metrics.SignatureVerificationsTotal.WithLabelValues("invalid").Inc()
		return false
	}

	digest := sha256.Sum256([]byte(path))
	if err := rsa.VerifyPSS(&s.key.PublicKey, crypto.SHA256, digest[:], sig, nil); err != nil {
		metrics.SignatureVerificationsTotal.WithLabelValues("invalid").Inc()
		return false
	}

	metrics.SignatureVerificationsTotal.WithLabelValues("valid").Inc()
	return true
}
