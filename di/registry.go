package di

import "sync"

// provider is the registered descriptor for one token.
type provider struct {
	factory  Factory
	lifetime Lifetime
}

// registry maps tokens to provider descriptors. It guards the map so that a
// registration racing with in-flight resolutions presents either the full
// pre- or post-registration view, never a torn one.
type registry struct {
	mu        sync.RWMutex
	providers map[Token]provider
}

func newRegistry() *registry {
	return &registry{providers: make(map[Token]provider)}
}

func (r *registry) put(tok Token, p provider, override bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[tok]; exists && !override {
		return &DuplicateRegistrationError{Token: tok}
	}
	r.providers[tok] = p
	return nil
}

func (r *registry) get(tok Token) (provider, error) {
	r.mu.RLock()
	p, exists := r.providers[tok]
	r.mu.RUnlock()
	if !exists {
		return provider{}, &ProviderNotFoundError{Token: tok}
	}
	return p, nil
}
