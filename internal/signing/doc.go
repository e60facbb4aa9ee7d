// Package signing turns media file paths into detached access tokens and
// verifies them on the way back in.
//
// A token is an RSA-PSS signature over the SHA-256 digest of the path
// bytes, encoded with unpadded URL-safe base64 so it can sit directly in
// a URL segment. Verification is stateless: any token the private key
// produced for a path remains valid for that path for the lifetime of
// the key, and nothing else ever verifies.
package signing
