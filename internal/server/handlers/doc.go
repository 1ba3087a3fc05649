// Package handlers provides general infrastructure HTTP handlers
// (health, version, docs etc).
//
// Admin handlers are also included here as they are not part of the XS2A API.
// admin_consents.go lets the operator check consent checksums and run the expiry job on demand;
// in production these routes must only be reachable from the operator network.
package handlers
