package di

import "sync"

// instanceCache memoizes at most one instance per token and serializes
// concurrent first constructions of the same token: the losers of a race wait
// for the winner's result instead of constructing duplicates. Constructions
// of unrelated tokens proceed independently. A failed construction leaves no
// entry, so a later resolution retries the factory.
//
// The same structure backs both the container-wide singleton cache and each
// scope's instance cache.
type instanceCache struct {
	mu       sync.Mutex
	done     map[Token]any
	inflight map[Token]*inflightCall
}

type inflightCall struct {
	ready chan struct{}
	val   any
	err   error
}

func newInstanceCache() *instanceCache {
	return &instanceCache{
		done:     make(map[Token]any),
		inflight: make(map[Token]*inflightCall),
	}
}

// resolve returns the cached instance for tok, or invokes build exactly once
// across all concurrent callers to produce it. The built flag reports whether
// this call performed the construction.
func (c *instanceCache) resolve(tok Token, build func() (any, error)) (val any, built bool, err error) {
	c.mu.Lock()
	if v, ok := c.done[tok]; ok {
		c.mu.Unlock()
		return v, false, nil
	}
	if call, ok := c.inflight[tok]; ok {
		c.mu.Unlock()
		<-call.ready
		return call.val, false, call.err
	}
	call := &inflightCall{ready: make(chan struct{})}
	c.inflight[tok] = call
	c.mu.Unlock()

	call.val, call.err = build()

	c.mu.Lock()
	delete(c.inflight, tok)
	if call.err == nil {
		c.done[tok] = call.val
	}
	c.mu.Unlock()
	close(call.ready)

	if call.err != nil {
		return nil, false, call.err
	}
	return call.val, true, nil
}

// drop forgets the cached instance for tok, if any. In-flight constructions
// are unaffected; their result is still delivered to their waiters.
func (c *instanceCache) drop(tok Token) {
	c.mu.Lock()
	delete(c.done, tok)
	c.mu.Unlock()
}

// clear forgets all cached instances.
func (c *instanceCache) clear() {
	c.mu.Lock()
	c.done = make(map[Token]any)
	c.mu.Unlock()
}
