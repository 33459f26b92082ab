// services/home/task_logger.go
package home

import "context"

// loggerTask drains the log channel onto the display's second line. Every
// wait is bounded; an empty queue costs a short nap, never an indefinite
// block.
func (s *service) loggerTask(ctx context.Context) {
	for ctx.Err() == nil {
		entry, err := s.deps.Log.TryDequeue(s.cfg.LoggerWait)
		if err != nil {
			if !sleepCtx(ctx, s.cfg.LoggerIdle) {
				return
			}
			continue
		}
		if !s.deps.DisplayMu.AcquireTimeout(s.cfg.DisplayLockWait) {
			continue
		}
		s.deps.Display.GotoXY(0, 1)
		s.deps.Display.Print("Log:" + entry)
		s.deps.DisplayMu.Release()
	}
}
