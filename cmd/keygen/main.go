package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
)

const minKeyBits = 2048

func main() {
	bits := flag.Int("bits", 2048, "RSA key size in bits")
	out := flag.String("out", "", "output path for the PEM key (required)")
	force := flag.Bool("force", false, "overwrite an existing key file")
	flag.Parse()

	if err := run(*bits, *out, *force); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(bits int, out string, force bool) error {
	if out == "" {
		return fmt.Errorf("-out is required")
	}
	if bits < minKeyBits {
		return fmt.Errorf("key size %d is below the %d bit minimum", bits, minKeyBits)
	}

	if !force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite; this invalidates all issued tokens)", out)
		}
	}

	fmt.Printf("Generating %d bit RSA key...\n", bits)
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to encode key: %w", err)
	}

	pemData := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(out, pemData, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("Signing key written to %s\n", out)
	return nil
}
