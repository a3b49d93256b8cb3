package di

import (
	"context"
	"fmt"
	"slices"

	"github.com/skrylabs/skry/logger"
)

// Factory constructs an instance for a token. It receives a resolver bound to
// the current resolution path, so a factory may request its own dependencies
// without losing cycle detection. Factories may perform blocking or
// cancellable work through ctx (e.g. acquiring a connection).
type Factory func(ctx context.Context, r Resolver) (any, error)

// Resolver resolves a token into an instance. Container implements Resolver;
// factories receive a path-bound variant of it.
type Resolver interface {
	Resolve(ctx context.Context, tok Token) (any, error)
}

// Container is the facade composing the provider registry, the singleton
// cache, and scope handling. It is safe for concurrent use by many
// independent units of work.
type Container struct {
	registry   *registry
	singletons *instanceCache
	log        *logger.Logger
}

// Option customizes a container at construction time.
type Option func(*Container)

// WithLogger sets the logger used for registration and scope lifecycle
// events.
func WithLogger(log *logger.Logger) Option {
	return func(c *Container) { c.log = log }
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		registry:   newRegistry(),
		singletons: newInstanceCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.GetGlobalLogger().WithComponent("di")
	}
	return c
}

// RegisterOption customizes a single registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	override bool
}

// Override allows a registration to replace an existing provider for the same
// token. Without it, re-registration fails with *DuplicateRegistrationError.
func Override() RegisterOption {
	return func(o *registerOptions) { o.override = true }
}

// Register binds factory to tok with the given lifetime.
//
// Overriding a token whose singleton was already constructed drops the cached
// instance, so subsequent resolutions use the new provider. The displaced
// instance's disposal hooks are not invoked; the caller doing the override is
// responsible for tearing it down.
func (c *Container) Register(tok Token, factory Factory, lifetime Lifetime, opts ...RegisterOption) error {
	if tok.IsZero() {
		return fmt.Errorf("di: cannot register a zero token")
	}
	if factory == nil {
		return fmt.Errorf("di: nil factory for token %s", tok)
	}

	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := c.registry.put(tok, provider{factory: factory, lifetime: lifetime}, o.override); err != nil {
		return err
	}
	if o.override {
		c.singletons.drop(tok)
	}

	c.log.Debug("provider registered", map[string]interface{}{
		"token":    tok.String(),
		"lifetime": lifetime.String(),
		"override": o.override,
	})
	return nil
}

// Resolve produces the instance for tok, applying its provider's lifetime.
func (c *Container) Resolve(ctx context.Context, tok Token) (any, error) {
	return c.resolve(ctx, tok, nil)
}

// boundResolver is the resolve callback handed to factories. It carries the
// tokens currently under construction on this call chain so that cycles are
// detected explicitly rather than via stack exhaustion.
type boundResolver struct {
	container *Container
	path      []Token
}

func (r boundResolver) Resolve(ctx context.Context, tok Token) (any, error) {
	return r.container.resolve(ctx, tok, r.path)
}

func (c *Container) resolve(ctx context.Context, tok Token, path []Token) (any, error) {
	p, err := c.registry.get(tok)
	if err != nil {
		return nil, err
	}

	if slices.Contains(path, tok) {
		full := append(slices.Clone(path), tok)
		return nil, &CyclicDependencyError{Token: tok, Path: full}
	}

	build := func() (any, error) {
		next := boundResolver{container: c, path: append(slices.Clone(path), tok)}
		instance, err := p.factory(ctx, next)
		if err != nil {
			return nil, &ProviderConstructionError{Token: tok, Cause: err}
		}
		return instance, nil
	}

	switch p.lifetime {
	case Singleton:
		instance, _, err := c.singletons.resolve(tok, build)
		return instance, err

	case Scoped:
		scope, ok := ScopeFromContext(ctx)
		if !ok || scope.isClosed() {
			return nil, &ScopeNotActiveError{Token: tok}
		}
		instance, built, err := scope.cache.resolve(tok, build)
		if err != nil {
			return nil, err
		}
		if built {
			if closer, ok := instance.(interface{ Close() error }); ok {
				scope.OnClose(closer.Close)
			}
		}
		return instance, nil

	default: // Transient
		return build()
	}
}
