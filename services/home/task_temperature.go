// services/home/task_temperature.go
package home

import (
	"context"
	"fmt"

	"smarthome-go/sensorstate"
	"smarthome-go/x/mathx"
)

// temperatureTask simulates a rising/falling temperature, publishes it
// through the sensor guard and drives the fan LEDs under ICPP ownership.
func (s *service) temperatureTask(ctx context.Context) {
	osc := mathx.NewOscillator(tempMin, tempMin, tempMax, 1)
	for {
		if !s.tempCycle(ctx, osc.Next()) {
			return
		}
	}
}

// tempCycle runs one period for the given reading and reports whether the
// loop should continue.
func (s *service) tempCycle(ctx context.Context, temp int) bool {
	if err := s.deps.State.WithLock(s.cfg.GuardWait, func(r *sensorstate.Readings) error {
		r.Temperature = temp
		return nil
	}); err != nil {
		// Guard contended: skip this cycle's update, no retry.
		s.log.WithField("task", TaskTemperature).Debug("guard busy, reading skipped")
	}
	level := FanLevel(temp)

	// The fan bank is ICPP-protected. The blocking acquire parks until the
	// holder releases; only cancellation gets us out early.
	if err := s.deps.Ceiling.AcquireICPP(ctx, TaskTemperature); err != nil {
		return false
	}
	s.deps.LEDs.SetFanLevel(level)
	s.deps.Ceiling.ReleaseICPP(TaskTemperature)

	s.emitLog(fmt.Sprintf("Temp:%dC Fan:%d", temp, level))
	s.displayEv.Set(EvTempUpdate)
	return sleepCtx(ctx, s.cfg.TempPeriod)
}
