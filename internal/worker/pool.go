// Package worker provides a bounded-concurrency executor for blocking calls,
// keeping slow provider uploads from stalling request handling.
package worker

import "context"

// Pool limits how many submitted functions run at once. Submissions beyond
// the width queue until a slot frees up.
type Pool struct {
	sem chan struct{}
}

// NewPool creates a Pool running at most size functions concurrently.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Size returns the pool width.
func (p *Pool) Size() int {
	return cap(p.sem)
}

// Do runs fn after acquiring a slot, blocking while the pool is full. The
// context only bounds the wait for a slot; once fn has started it runs to
// completion.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.sem }()

	fn()
	return nil
}
