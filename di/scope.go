package di

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/skrylabs/skry/logger"
)

// Scope holds the instances resolved with the Scoped lifetime during one
// logical unit of work, e.g. one inbound request. A scope is private to the
// execution path that opened it: it travels in the context returned by
// EnterScope and is invisible to concurrently running units of work, even
// though they share the same container.
//
// The opener owns the scope and must call Close exactly once on every exit
// path (success, error, cancellation). Close is idempotent.
type Scope struct {
	id    string
	cache *instanceCache
	log   *logger.Logger

	mu     sync.Mutex
	hooks  []func() error
	closed bool
}

type scopeContextKey struct{}

// EnterScope opens a new scope and returns a derived context carrying it.
// Resolutions of Scoped tokens made with the returned context are cached in
// this scope. The caller must Close the scope when its unit of work ends.
func (c *Container) EnterScope(ctx context.Context) (context.Context, *Scope) {
	s := &Scope{
		id:    uuid.NewString(),
		cache: newInstanceCache(),
		log:   c.log,
	}
	c.log.Debug("scope opened", map[string]interface{}{"scope_id": s.id})
	return context.WithValue(ctx, scopeContextKey{}, s), s
}

// ScopeFromContext returns the scope active for ctx, if any.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeContextKey{}).(*Scope)
	return s, ok
}

// ID returns the opaque unique identifier of the scope.
func (s *Scope) ID() string { return s.id }

// OnClose registers a disposal hook to run when the scope closes. Hooks run
// in reverse registration order. If the scope is already closed the hook runs
// immediately so the resource cannot leak.
func (s *Scope) OnClose(fn func() error) {
	s.mu.Lock()
	if !s.closed {
		s.hooks = append(s.hooks, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.log.Error("disposal hook failed on closed scope", map[string]interface{}{
			"scope_id": s.id,
			"error":    err.Error(),
		})
	}
}

// Close disposes the scope: it clears the instance cache and runs every
// disposal hook in reverse registration order. A failing hook never prevents
// the remaining hooks from running; all failures are reported together as a
// *ScopeDisposalError. Calling Close again is a no-op.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	s.cache.clear()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](); err != nil {
			errs = append(errs, err)
		}
	}

	s.log.Debug("scope closed", map[string]interface{}{
		"scope_id": s.id,
		"hooks":    len(hooks),
		"failures": len(errs),
	})

	if len(errs) > 0 {
		return &ScopeDisposalError{ScopeID: s.id, Errors: errs}
	}
	return nil
}

func (s *Scope) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
