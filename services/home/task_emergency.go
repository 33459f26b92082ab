// services/home/task_emergency.go
package home

import (
	"context"

	"smarthome-go/sensorstate"
)

// emergencyTask polls the temperature every cycle and, while it exceeds
// the overheat threshold, takes over the display and strobes the LED bank.
func (s *service) emergencyTask(ctx context.Context) {
	for {
		var temp int
		if err := s.deps.State.WithLock(s.cfg.GuardWait, func(r *sensorstate.Readings) error {
			temp = r.Temperature
			return nil
		}); err == nil {
			s.overheat.Store(temp > s.cfg.OverheatAbove)
		}

		if s.overheat.Load() {
			// Unbounded wait by design: the overheat banner outranks the
			// bounded-wait discipline every other display user follows.
			// The known cost is indefinite blocking if a holder never
			// releases.
			if err := s.deps.DisplayMu.Acquire(ctx); err != nil {
				return
			}
			s.deps.Display.Clear()
			s.deps.Display.Print("!!! OVERHEAT !!!")
			s.deps.DisplayMu.Release()

			s.deps.LEDs.OverrideAll(true)
			if !sleepCtx(ctx, s.cfg.EmergencyStrobe) {
				return
			}
			s.deps.LEDs.OverrideAll(false)
			if !sleepCtx(ctx, s.cfg.EmergencyStrobe) {
				return
			}
		}
		if !sleepCtx(ctx, s.cfg.EmergencyPeriod) {
			return
		}
	}
}
