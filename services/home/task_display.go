// services/home/task_display.go
package home

import (
	"context"
	"fmt"
)

// displayTask waits for any sensor signal (or the wait bound) and renders
// a consistent snapshot of all three readings taken under one guard
// acquisition.
func (s *service) displayTask(ctx context.Context) {
	for ctx.Err() == nil {
		// Wake on signal or timeout alike; both render.
		s.displayEv.WaitAny(EvTempUpdate|EvLightUpdate|EvMotion, s.cfg.DisplayWait)

		snap, err := s.deps.State.Snapshot(s.cfg.GuardWait)
		if err != nil {
			continue
		}
		if !s.deps.DisplayMu.AcquireTimeout(s.cfg.DisplayLockWait) {
			continue
		}
		s.deps.Display.Clear()
		s.deps.Display.Print(fmt.Sprintf("T:%dC L:%d M:%d",
			snap.Temperature, snap.Light, boolToInt(snap.Motion)))
		s.deps.DisplayMu.Release()
	}
}
