// x/sema/sema.go
package sema

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

// Semaphore is a counting semaphore with bounded wait. It is the lock
// primitive the task set expects from its scheduler: acquire within a
// timeout or report expiry, release from any goroutine.
//
// Tokens live in a buffered channel; a full channel means a free
// semaphore. No fairness is guaranteed beyond what the runtime's channel
// wakeup order provides.
type Semaphore struct {
	tokens   chan struct{}
	timeouts atomic.Uint64
}

// New creates a semaphore with the given capacity, fully available.
func New(capacity int) *Semaphore {
	if capacity <= 0 {
		capacity = 1
	}
	s := &Semaphore{tokens: make(chan struct{}, capacity)}
	for i := 0; i < capacity; i++ {
		s.tokens <- struct{}{}
	}
	return s
}

// TryAcquire takes a token without waiting.
func (s *Semaphore) TryAcquire() bool {
	select {
	case <-s.tokens:
		return true
	default:
		return false
	}
}

// AcquireTimeout takes a token, waiting at most d. It reports whether the
// token was taken; expiries are counted for diagnostics.
func (s *Semaphore) AcquireTimeout(d time.Duration) bool {
	select {
	case <-s.tokens:
		return true
	default:
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.tokens:
		return true
	case <-t.C:
		s.timeouts.Inc()
		return false
	}
}

// Acquire takes a token, waiting without bound until ctx is canceled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case <-s.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a token. Releasing above capacity is a caller bug and is
// dropped rather than blocking the releaser.
func (s *Semaphore) Release() {
	select {
	case s.tokens <- struct{}{}:
	default:
	}
}

// Timeouts reports how many bounded acquires have expired.
func (s *Semaphore) Timeouts() uint64 { return s.timeouts.Load() }

// Mutex is a capacity-1 semaphore with mutex naming.
type Mutex struct {
	s *Semaphore
}

func NewMutex() *Mutex { return &Mutex{s: New(1)} }

func (m *Mutex) TryAcquire() bool                    { return m.s.TryAcquire() }
func (m *Mutex) AcquireTimeout(d time.Duration) bool { return m.s.AcquireTimeout(d) }
func (m *Mutex) Acquire(ctx context.Context) error   { return m.s.Acquire(ctx) }
func (m *Mutex) Release()                            { m.s.Release() }
func (m *Mutex) Timeouts() uint64                    { return m.s.Timeouts() }
