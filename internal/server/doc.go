// Package server provides the HTTP server for the XS2A demo app.
//
// the server is configured through environment variables
// (see app/internal/config/config.go for details)
//
// NewServer wires the store (postgres, or in-memory for local development),
// the consent, payment and authorisation services and the ASPSP connector, then registers
//   - the XS2A API under /v1 (handlers in app/internal/api/handlers)
//   - common infrastructure handlers (health, version, docs)
//   - the admin API for checking consent checksums and running the consent expiry job.
//
// middleware is in app/internal/server/middleware
package server
