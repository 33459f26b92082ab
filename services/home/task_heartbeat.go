// services/home/task_heartbeat.go
package home

import "context"

// heartbeatTask blinks the heartbeat LED: a short pulse every period.
func (s *service) heartbeatTask(ctx context.Context) {
	for {
		s.deps.LEDs.Heartbeat(true)
		if !sleepCtx(ctx, s.cfg.HeartbeatPulse) {
			return
		}
		s.deps.LEDs.Heartbeat(false)
		if !sleepCtx(ctx, s.cfg.HeartbeatGap) {
			return
		}
	}
}
