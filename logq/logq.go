// logq/logq.go
package logq

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"smarthome-go/errcode"
)

const (
	// Slots is the ring depth; EntryLen caps each record.
	Slots    = 5
	EntryLen = 40
)

// Channel is a bounded producer/consumer queue of short status strings.
// Entries live in a fixed ring of backing slots; the queue itself carries
// slot indices. The write cursor advances only on a successful enqueue, so
// a failed enqueue leaves the next cycle's write reusing the same backing
// slot: delivery is lossy under backpressure by design, with no retry and
// no backpressure signal to the producer.
type Channel struct {
	mu    sync.Mutex // serializes producers over slots and the write cursor
	slots [Slots]string
	items chan int

	put atomic.Uint64 // successful enqueues (bookkeeping)
	get atomic.Uint64 // successful dequeues (bookkeeping)
}

func New() *Channel {
	return &Channel{items: make(chan int, Slots)}
}

// TryEnqueue formats the entry into the slot at the write cursor, then
// waits at most timeout for queue room. Only on success does the cursor
// advance. Note the slot is written before the send: when the ring has
// wrapped onto a still-pending slot, the pending entry's text is
// overwritten and the consumer sees the newer record.
func (c *Channel) TryEnqueue(entry string, timeout time.Duration) error {
	if len(entry) > EntryLen {
		entry = entry[:EntryLen]
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := int(c.put.Load() % Slots)
	c.slots[idx] = entry

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case c.items <- idx:
		c.put.Inc()
		return nil
	case <-t.C:
		return errcode.Timeout
	}
}

// TryDequeue waits at most timeout for an entry. The read cursor is
// bookkeeping only; it plays no part in flow control.
func (c *Channel) TryDequeue(timeout time.Duration) (string, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case idx := <-c.items:
		c.get.Inc()
		c.mu.Lock()
		entry := c.slots[idx]
		c.mu.Unlock()
		return entry, nil
	case <-t.C:
		return "", errcode.Timeout
	}
}

// Pending reports how many entries are queued.
func (c *Channel) Pending() int { return len(c.items) }

// Cursors reports the successful enqueue and dequeue counts.
func (c *Channel) Cursors() (put, get uint64) {
	return c.put.Load(), c.get.Load()
}
