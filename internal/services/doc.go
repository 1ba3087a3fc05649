// Package services provides external service integrations for the XS2A server.
//
// This package abstracts the ASPSP (the bank behind the XS2A interface) so the SCA flow can run
// against the built-in sandbox bank in dev/test or against a remote ASPSP adapter in production.
//
// Each service is defined as an interface with multiple implementations selected via configuration.
package services
