// Package bootstrap assembles a skry application: configuration, logging,
// the dependency injection container, and the HTTP server, with lifecycle
// hooks and graceful shutdown.
//
//	var cfg MyConfig
//	if err := config.Load("my-service", &cfg); err != nil { ... }
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStart(func(ctx context.Context) error {
//	    return registerProviders(app.Container)
//	})
//	return app.Run(ctx)
package bootstrap
