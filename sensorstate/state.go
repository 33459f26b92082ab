// sensorstate/state.go
package sensorstate

import (
	"time"

	"smarthome-go/errcode"
	"smarthome-go/x/sema"
)

// Readings is the shared sensor state. All three fields are read and
// written only while the guard is held.
type Readings struct {
	Temperature int  // degrees, simulated
	Light       int  // 0 = bright, 100 = dark
	Motion      bool
}

// State guards the readings behind one capacity-1 counting semaphore with
// bounded wait. Writers and readers that miss the bound skip the cycle:
// no retry, no indefinite blocking.
type State struct {
	guard *sema.Semaphore
	r     Readings
}

// New starts with the same initial readings the tasks assume.
func New() *State {
	return &State{
		guard: sema.New(1),
		r:     Readings{Temperature: 20, Light: 50},
	}
}

// WithLock acquires the guard within timeout, runs f against the protected
// readings and releases on every exit path, including an error from f. On
// expiry it returns errcode.Timeout and mutates nothing.
func (s *State) WithLock(timeout time.Duration, f func(r *Readings) error) error {
	if !s.guard.AcquireTimeout(timeout) {
		return errcode.Timeout
	}
	defer s.guard.Release()
	return f(&s.r)
}

// Snapshot copies all three readings under a single guard acquisition.
func (s *State) Snapshot(timeout time.Duration) (Readings, error) {
	var out Readings
	err := s.WithLock(timeout, func(r *Readings) error {
		out = *r
		return nil
	})
	return out, err
}

// GuardTimeouts reports how many bounded acquires have expired
// (diagnostics).
func (s *State) GuardTimeouts() uint64 { return s.guard.Timeouts() }
