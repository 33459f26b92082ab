// events/events.go
package events

import (
	"sync"
	"time"

	"smarthome-go/errcode"
)

// Mask is a set of event flags. Flag values are assigned by the owning
// service; the package only moves bits around.
type Mask uint32

// Group holds the pending event flags for one receiving task and lets that
// task wait for any of a set with a bound. Any goroutine may Set; exactly
// one task is expected to WaitAny on a given group.
type Group struct {
	mu      sync.Mutex
	pending Mask
	wake    chan struct{}
}

func NewGroup() *Group {
	return &Group{wake: make(chan struct{}, 1)}
}

// Set adds flags to the group and nudges the waiter. Setting an
// already-pending flag coalesces; nothing queues.
func (g *Group) Set(m Mask) {
	g.mu.Lock()
	g.pending |= m
	g.mu.Unlock()
	select {
	case g.wake <- struct{}{}:
	default:
	}
}

// WaitAny blocks until at least one flag in m is pending or the timeout
// expires. On success the matched flags are consumed and returned; on
// expiry it returns errcode.Timeout.
func (g *Group) WaitAny(m Mask, timeout time.Duration) (Mask, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	for {
		g.mu.Lock()
		if got := g.pending & m; got != 0 {
			g.pending &^= got
			g.mu.Unlock()
			return got, nil
		}
		g.mu.Unlock()
		select {
		case <-g.wake:
		case <-t.C:
			return 0, errcode.Timeout
		}
	}
}

// Pending reports the currently pending flags without consuming them.
func (g *Group) Pending() Mask {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}
