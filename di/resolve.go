package di

import (
	"context"
	"fmt"
)

// Resolve resolves tok with type safety, returning an error on failure or
// type mismatch.
//
// Example:
//
//	repo, err := di.Resolve[*UserRepository](ctx, c, di.For[*UserRepository]())
func Resolve[T any](ctx context.Context, c *Container, tok Token) (T, error) {
	var zero T
	instance, err := c.Resolve(ctx, tok)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: token %s resolved to %T, expected %T", tok, instance, zero)
	}
	return result, nil
}

// MustResolve resolves tok with type safety and panics on error. Use in
// wiring code where a missing provider is a programming mistake.
func MustResolve[T any](ctx context.Context, c *Container, tok Token) T {
	result, err := Resolve[T](ctx, c, tok)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", tok, err))
	}
	return result
}

// TryResolve resolves tok, returning the zero value and false when the token
// is unregistered, construction fails, or the type does not match. Use when a
// dependency is optional.
func TryResolve[T any](ctx context.Context, c *Container, tok Token) (T, bool) {
	result, err := Resolve[T](ctx, c, tok)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
