package sensorstate

import (
	"testing"
	"time"

	"smarthome-go/errcode"
)

func TestWithLockMutates(t *testing.T) {
	s := New()
	err := s.WithLock(50*time.Millisecond, func(r *Readings) error {
		r.Temperature = 33
		r.Motion = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithLock: %v", err)
	}
	snap, err := s.Snapshot(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Temperature != 33 || !snap.Motion || snap.Light != 50 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestWithLockTimesOutWhileHeld(t *testing.T) {
	s := New()
	hold := make(chan struct{})
	done := make(chan struct{})
	go func() {
		s.WithLock(time.Second, func(r *Readings) error {
			close(hold)
			<-done
			return nil
		})
	}()
	<-hold

	err := s.WithLock(20*time.Millisecond, func(r *Readings) error {
		t.Error("f must not run on a missed bound")
		return nil
	})
	if errcode.Of(err) != errcode.Timeout {
		t.Fatalf("err = %v, want timeout", err)
	}
	if s.GuardTimeouts() != 1 {
		t.Errorf("guard timeouts = %d, want 1", s.GuardTimeouts())
	}
	close(done)
}

func TestWithLockReleasesOnError(t *testing.T) {
	s := New()
	boom := errcode.Error
	if err := s.WithLock(50*time.Millisecond, func(r *Readings) error {
		return boom
	}); err != boom {
		t.Fatalf("err = %v, want propagated error", err)
	}
	// The guard must be free again.
	if _, err := s.Snapshot(50 * time.Millisecond); err != nil {
		t.Fatalf("guard leaked after error from f: %v", err)
	}
}
