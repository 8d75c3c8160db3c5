package service

import (
	"context"
	"sync"
	"time"
)

// LatestTask runs at most one live unit of work at a time. Scheduling new
// work cancels the previous one, and a result is applied only while its
// generation is still the latest.
type LatestTask struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Schedule supersedes any pending work and runs work after delay. The apply
// function work returns is called, under the task lock, only if nothing was
// scheduled or cancelled since. It must not call back into the task.
func (t *LatestTask) Schedule(parent context.Context, delay time.Duration, work func(ctx context.Context) (apply func())) uint64 {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	gen := t.gen
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		defer cancel()

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		apply := work(ctx)
		if apply == nil {
			return
		}

		t.mu.Lock()
		defer t.mu.Unlock()
		if gen != t.gen || ctx.Err() != nil {
			return
		}
		apply()
	}()
	return gen
}

// Cancel supersedes pending work without scheduling more
func (t *LatestTask) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}

// Generation returns the generation of the latest scheduled work
func (t *LatestTask) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Wait blocks until every scheduled unit of work has returned
func (t *LatestTask) Wait() {
	t.wg.Wait()
}
