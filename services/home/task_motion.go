// services/home/task_motion.go
package home

import (
	"context"

	"smarthome-go/sensorstate"
)

// motionTask runs an independent duty cycle: assert the flag, hold,
// deassert, repeat. It takes part in neither ceiling protocol.
func (s *service) motionTask(ctx context.Context) {
	for {
		if !sleepCtx(ctx, s.cfg.MotionIdle) {
			return
		}
		s.setMotion(true)
		s.displayEv.Set(EvMotion)
		if !sleepCtx(ctx, s.cfg.MotionHold) {
			return
		}
		s.setMotion(false)
	}
}

func (s *service) setMotion(on bool) {
	if err := s.deps.State.WithLock(s.cfg.GuardWait, func(r *sensorstate.Readings) error {
		r.Motion = on
		return nil
	}); err != nil {
		s.log.WithField("task", TaskMotion).Debug("guard busy, motion flag skipped")
	}
}
