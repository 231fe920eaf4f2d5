package counter

import (
	"context"
	"sync"
)

// ViewCounter accumulates view bumps per question on top of the immutable
// seed values. The in-process implementation is the default; Redis takes
// over when REDIS_ADDR is configured.
type ViewCounter interface {
	// Bump records one view and returns the accumulated bump count.
	Bump(ctx context.Context, questionID int64) (int64, error)
	// Peek returns the accumulated bump count without recording a view.
	Peek(ctx context.Context, questionID int64) (int64, error)
}

type memoryViewCounter struct {
	mu    sync.Mutex
	views map[int64]int64
}

func NewMemoryViewCounter() ViewCounter {
	return &memoryViewCounter{views: make(map[int64]int64)}
}

func (c *memoryViewCounter) Bump(_ context.Context, questionID int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[questionID]++
	return c.views[questionID], nil
}

func (c *memoryViewCounter) Peek(_ context.Context, questionID int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.views[questionID], nil
}
