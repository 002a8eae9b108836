package content

import (
	"sync"
)

// Pool hands out one Cache per student.
type Pool struct {
	caches map[string]*Cache
	newFn  func(subject string) *Cache
	mu     sync.Mutex
}

// NewPool creates a pool; newFn builds the cache of a student on first use.
func NewPool(newFn func(subject string) *Cache) *Pool {
	return &Pool{caches: map[string]*Cache{}, newFn: newFn}
}

// For returns the cache of subject.
func (p *Pool) For(subject string) *Cache {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.caches[subject]
	if !ok {
		c = p.newFn(subject)
		p.caches[subject] = c
	}
	return c
}

// Forget drops the cache of subject.
func (p *Pool) Forget(subject string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.caches, subject)
}
