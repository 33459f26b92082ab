package ceiling

import (
	"context"
	"sync"
	"testing"
	"time"

	"smarthome-go/errcode"
	"smarthome-go/types"
)

func newTestManager() (*Manager, *Registry) {
	reg := NewRegistry()
	reg.Register("emergency", 1)
	reg.Register("motion", 2)
	reg.Register("temperature", 3)
	reg.Register("light", 4)
	return NewManager(reg), reg
}

// -----------------------------------------------------------------------------
// ICPP
// -----------------------------------------------------------------------------

func TestICPP_ExclusiveOwnership(t *testing.T) {
	m, _ := newTestManager()

	if !m.TryAcquireICPP("temperature") {
		t.Fatal("acquire of a free resource must succeed")
	}
	if m.TryAcquireICPP("light") {
		t.Fatal("acquire while owned must fail")
	}
	if got := m.OwnerICPP(); got != "temperature" {
		t.Fatalf("owner = %q, want temperature", got)
	}

	// Release by a non-owner changes nothing.
	m.ReleaseICPP("light")
	if got := m.OwnerICPP(); got != "temperature" {
		t.Fatalf("owner after foreign release = %q, want temperature", got)
	}
	icpp, _ := m.MismatchCounts()
	if icpp != 1 {
		t.Errorf("icpp mismatch count = %d, want 1", icpp)
	}

	m.ReleaseICPP("temperature")
	if got := m.OwnerICPP(); got != "" {
		t.Fatalf("owner after release = %q, want free", got)
	}
}

func TestICPP_AtMostOneOwnerUnderContention(t *testing.T) {
	m, _ := newTestManager()

	var wg sync.WaitGroup
	var mu sync.Mutex
	inside := 0
	maxInside := 0

	for _, id := range []types.TaskID{"temperature", "light", "motion", "emergency"} {
		wg.Add(1)
		go func(id types.TaskID) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if !m.TryAcquireICPP(id) {
					continue
				}
				if got := m.OwnerICPP(); got != id {
					t.Errorf("holder observed owner %q, want %q", got, id)
				}
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				m.ReleaseICPP(id)
			}
		}(id)
	}
	wg.Wait()

	if maxInside > 1 {
		t.Fatalf("critical section held by %d tasks at once", maxInside)
	}
}

func TestICPP_BlockingAcquireHandsOffFIFO(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	if err := m.AcquireICPP(ctx, "temperature"); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	order := make(chan types.TaskID, 2)
	var wg sync.WaitGroup
	for _, id := range []types.TaskID{"light", "motion"} {
		wg.Add(1)
		go func(id types.TaskID) {
			defer wg.Done()
			if err := m.AcquireICPP(ctx, id); err != nil {
				t.Errorf("acquire %s: %v", id, err)
				return
			}
			order <- id
			m.ReleaseICPP(id)
		}(id)
		time.Sleep(20 * time.Millisecond) // fix the parking order
	}

	m.ReleaseICPP("temperature")
	wg.Wait()
	close(order)

	var got []types.TaskID
	for id := range order {
		got = append(got, id)
	}
	if len(got) != 2 || got[0] != "light" || got[1] != "motion" {
		t.Fatalf("handoff order = %v, want [light motion]", got)
	}
}

func TestICPP_AcquireTimeoutExpires(t *testing.T) {
	m, _ := newTestManager()
	m.TryAcquireICPP("temperature")

	err := m.AcquireICPPTimeout("light", 30*time.Millisecond)
	if errcode.Of(err) != errcode.Timeout {
		t.Fatalf("err = %v, want timeout", err)
	}

	// The expired waiter must be gone: a later release frees the resource.
	m.ReleaseICPP("temperature")
	if got := m.OwnerICPP(); got != "" {
		t.Fatalf("owner = %q, want free (stale waiter left behind?)", got)
	}
}

func TestICPP_AcquireCanceled(t *testing.T) {
	m, _ := newTestManager()
	m.TryAcquireICPP("temperature")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- m.AcquireICPP(ctx, "light") }()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if errcode.Of(err) != errcode.Canceled {
			t.Fatalf("err = %v, want canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("acquire ignored cancellation")
	}
}

func TestICPP_AcquireRetryEventuallySucceeds(t *testing.T) {
	m, _ := newTestManager()
	m.TryAcquireICPP("temperature")

	done := make(chan error, 1)
	go func() { done <- m.AcquireRetry(context.Background(), "light", time.Millisecond) }()

	time.Sleep(20 * time.Millisecond)
	m.ReleaseICPP("temperature")

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("retry acquire: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("retry loop never acquired")
	}
	if got := m.OwnerICPP(); got != "light" {
		t.Fatalf("owner = %q, want light", got)
	}
}

// -----------------------------------------------------------------------------
// OCPP
// -----------------------------------------------------------------------------

func TestOCPP_AdmissionRule(t *testing.T) {
	m, _ := newTestManager()

	// light (prio 4) is not urgent enough for a ceiling of 2.
	if m.TryAcquireOCPP("light", 2) {
		t.Fatal("prio 4 must be refused by ceiling 2")
	}
	if _, set := m.SystemCeiling(); set {
		t.Fatal("refused acquire must not set the system ceiling")
	}

	// motion (prio 2) ties the ceiling and is admitted.
	if !m.TryAcquireOCPP("motion", 2) {
		t.Fatal("prio 2 must be admitted by ceiling 2")
	}
	c, set := m.SystemCeiling()
	if !set || c != 2 {
		t.Fatalf("system ceiling = (%v,%v), want (2,true)", c, set)
	}

	// With the ceiling at 2, temperature (prio 3) is shut out even from a
	// resource whose own ceiling would admit it.
	if m.TryAcquireOCPP("temperature", 3) {
		t.Fatal("active system ceiling must gate admission")
	}
	// emergency (prio 1) still dominates.
	if !m.TryAcquireOCPP("emergency", 1) {
		t.Fatal("prio 1 must pass both checks")
	}
}

func TestOCPP_UnknownTaskRefused(t *testing.T) {
	m, _ := newTestManager()
	if m.TryAcquireOCPP("ghost", 7) {
		t.Fatal("unregistered task must be refused")
	}
}

// TestOCPP_ReleaseByOtherTask pins the identity-unchecked release: taskB
// clears a ceiling it never acquired by presenting the same ceiling value.
func TestOCPP_ReleaseByOtherTask(t *testing.T) {
	m, _ := newTestManager()

	if !m.TryAcquireOCPP("motion", 2) { // prio 2, ceiling 2
		t.Fatal("setup acquire failed")
	}
	if c, set := m.SystemCeiling(); !set || c != 2 {
		t.Fatalf("ceiling = (%v,%v), want (2,true)", c, set)
	}

	m.ReleaseOCPP("temperature", 2) // different, non-owning task

	if _, set := m.SystemCeiling(); set {
		t.Fatal("cross-task release with a matching ceiling must clear it")
	}
}

func TestOCPP_MismatchedReleaseIgnored(t *testing.T) {
	m, _ := newTestManager()
	m.TryAcquireOCPP("motion", 2)

	m.ReleaseOCPP("motion", 3) // wrong ceiling value

	c, set := m.SystemCeiling()
	if !set || c != 2 {
		t.Fatalf("ceiling = (%v,%v), want (2,true) after mismatched release", c, set)
	}
	if _, ocpp := m.MismatchCounts(); ocpp != 1 {
		t.Errorf("ocpp mismatch count = %d, want 1", ocpp)
	}
}
