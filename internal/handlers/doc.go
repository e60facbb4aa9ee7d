// Package handlers provides the HTTP request handlers for the scan server.
//
// It includes handlers for:
//   - Signed media file serving
//   - Scan status and indexed event queries
//   - User authentication and sessions
//   - Health checks and version info
package handlers
