// Package server provides an HTTP server for skry applications backed by
// Gin, wired to the dependency injection container.
//
// The Scope middleware opens one DI scope per inbound request before any
// handler runs and closes it exactly once when the request finishes, on every
// exit path including panics. Handler code resolves request-scoped
// dependencies straight from the request context:
//
//	svc, err := server.Resolve[*RequestService](c, container, di.For[*RequestService]())
package server
