// services/home/task_light.go
package home

import (
	"context"
	"fmt"

	"smarthome-go/sensorstate"
	"smarthome-go/x/mathx"
)

// lightTask simulates a day/night cycle and drives the room-light bank
// under the OCPP discipline, except while motion is asserted.
func (s *service) lightTask(ctx context.Context) {
	osc := mathx.NewOscillator(50, lightMin, lightMax, lightStep)
	for {
		if !s.lightCycle(ctx, osc.Next()) {
			return
		}
	}
}

func (s *service) lightCycle(ctx context.Context, light int) bool {
	motion := false
	if err := s.deps.State.WithLock(s.cfg.GuardWait, func(r *sensorstate.Readings) error {
		r.Light = light
		motion = r.Motion
		return nil
	}); err != nil {
		s.log.WithField("task", TaskLight).Debug("guard busy, reading skipped")
	}
	level := RoomLevel(light)

	switch {
	case motion:
		// Safety override: full intensity with no arbitration at all.
		// Motion outranks the logical locking discipline; normal
		// protocol-guarded behavior resumes the moment the flag drops.
		s.deps.LEDs.OverrideAll(true)
		if !sleepCtx(ctx, s.cfg.OverrideHold) {
			return false
		}
		s.deps.LEDs.OverrideAll(false)
	case s.deps.Ceiling.TryAcquireOCPP(TaskLight, s.cfg.LightCeiling):
		s.deps.LEDs.SetRoomLevel(level)
		s.deps.Ceiling.ReleaseOCPP(TaskLight, s.cfg.LightCeiling)
	default:
		// Refused by the ceiling: update anyway, trading mutual exclusion
		// for liveness on a non-critical surface.
		s.deps.LEDs.SetRoomLevel(level)
	}

	s.emitLog(fmt.Sprintf("Light:%d Level:%d", light, level))
	s.displayEv.Set(EvLightUpdate)
	return sleepCtx(ctx, s.cfg.LightPeriod)
}
