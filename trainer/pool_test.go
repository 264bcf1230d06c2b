package trainer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		pool := NewPool(DefaultConfig(), size)
		if pool.Size() != 1 {
			t.Errorf("NewPool(%d): expected size 1, got %d", size, pool.Size())
		}
	}
}

func TestPool_AcquireRelease(t *testing.T) {
	pool := NewPool(DefaultConfig(), 2)
	ctx := context.Background()

	c1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 1 failed: %v", err)
	}
	c2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 2 failed: %v", err)
	}

	// Third acquire should block
	ctx3, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(ctx3); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}

	pool.Release(c1)
	c3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 3 failed: %v", err)
	}
	if c3 != c1 {
		t.Error("expected the released collector back")
	}

	pool.Release(c2)
	pool.Release(c3)
	pool.Release(nil)
}

func TestPool_CloseMerges(t *testing.T) {
	pool := NewPool(DefaultConfig(), 3)
	ctx := context.Background()

	var held []*Collector
	for _, doc := range []string{"One two.", "Three.", "Four five six."} {
		c, err := pool.Acquire(ctx)
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		if err := c.Observe(doc); err != nil {
			t.Fatalf("Observe failed: %v", err)
		}
		held = append(held, c)
	}
	for _, c := range held {
		pool.Release(c)
	}

	merged, err := pool.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := merged.counts.Tokens; got != 6 {
		t.Errorf("merged tokens = %d, want 6", got)
	}

	if _, err := pool.Close(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("second Close: expected ErrPoolClosed, got %v", err)
	}
	if _, err := pool.Acquire(ctx); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire after Close: expected ErrPoolClosed, got %v", err)
	}

	// Should not panic
	pool.Release(held[0])
}

func TestPool_AcquireContextCancellation(t *testing.T) {
	pool := NewPool(DefaultConfig(), 1)
	ctx := context.Background()

	c1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 1 failed: %v", err)
	}
	defer pool.Release(c1)

	cancelledCtx, cancel := context.WithCancel(ctx)
	cancel()

	if _, err := pool.Acquire(cancelledCtx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPool_ConcurrentAccess(t *testing.T) {
	pool := NewPool(DefaultConfig(), 3)
	ctx := context.Background()

	numGoroutines := 10
	numIterations := 5

	var wg sync.WaitGroup
	var observed atomic.Int64
	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range numIterations {
				c, err := pool.Acquire(ctx)
				if err != nil {
					t.Errorf("Acquire failed: %v", err)
					return
				}
				if err := c.Observe("a b c."); err != nil {
					t.Errorf("Observe failed: %v", err)
				}
				pool.Release(c)
				observed.Add(1)
			}
		}()
	}
	wg.Wait()

	merged, err := pool.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	want := int(observed.Load()) * 3
	if merged.counts.Tokens != want {
		t.Errorf("merged tokens = %d, want %d", merged.counts.Tokens, want)
	}
}
