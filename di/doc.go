// Package di provides a token-based dependency injection container for skry
// applications.
//
// Providers are registered against explicit tokens and resolved on demand with
// one of three lifetimes: Singleton (one instance per container), Transient
// (one instance per resolution), and Scoped (one instance per open scope,
// typically one scope per inbound request). There is no reflection-based
// constructor wiring: every provider is an explicit factory that receives a
// resolver for its own dependencies.
//
// # Registration
//
//	c := di.New()
//	err := c.Register(di.For[*Settings](), func(ctx context.Context, r di.Resolver) (any, error) {
//	    return LoadSettings()
//	}, di.Singleton)
//
// # Resolution
//
//	settings, err := di.Resolve[*Settings](ctx, c, di.For[*Settings]())
//
// # Scopes
//
//	ctx, scope := c.EnterScope(ctx)
//	defer scope.Close()
//	svc := di.MustResolve[*RequestService](ctx, c, di.For[*RequestService]())
package di
