// Package api defines the transport DTOs and read-only services backing
// the HTTP surface and the CLI views.
package api
