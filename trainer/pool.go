package trainer

import (
	"context"
	"sync"
)

// Pool hands out a fixed set of collectors to concurrent workers, so that
// each collector is owned by one worker at a time.
type Pool struct {
	collectors chan *Collector
	size       int
	mu         sync.Mutex
	closed     bool
}

// NewPool creates a pool of size empty collectors.
func NewPool(cfg Config, size int) *Pool {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		collectors: make(chan *Collector, size),
		size:       size,
	}
	for range size {
		pool.collectors <- NewCollector(cfg)
	}
	return pool
}

// Acquire gets a collector from the pool, blocking if none available.
// Respects context cancellation. Returns error if pool is closed.
func (p *Pool) Acquire(ctx context.Context) (*Collector, error) {
	select {
	case c, ok := <-p.collectors:
		if !ok {
			return nil, ErrPoolClosed
		}
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a collector to the pool. Releasing into a closed pool is
// a no-op; its statistics are not part of the result of Close.
func (p *Pool) Release(c *Collector) {
	if c == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.collectors <- c:
	default:
	}
}

// Close closes the pool and merges every collector into one. Call it only
// after all acquired collectors have been released.
func (p *Pool) Close() (*Collector, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.closed = true
	close(p.collectors)
	p.mu.Unlock()

	var merged *Collector
	for c := range p.collectors {
		if merged == nil {
			merged = c
			continue
		}
		if err := merged.Merge(c); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}
