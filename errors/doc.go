// Package errors provides unified error handling for skry services.
//
// It implements a structured application error type with machine-readable
// codes and HTTP status mapping, plus translation of dependency-injection
// engine failures into client-facing errors.
package errors
