// Command keygen generates the RSA signing key used for media access
// tokens.
//
// Usage:
//
//	keygen [-bits 2048] -out /config/signing.pem
//
// The key is written as a PEM-encoded PKCS#8 private key with 0600
// permissions. Point SIGNING_KEY_FILE at the output path. Rotating the
// key invalidates every previously issued token; tokens carry no state,
// so nothing else needs migrating.
package main
