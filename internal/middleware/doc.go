// Package middleware provides HTTP middleware for the scan server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics
//   - Configurable filtering for health check noise
package middleware
