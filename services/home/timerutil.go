// services/home/timerutil.go
package home

import (
	"context"
	"time"
)

// sleepCtx blocks for d or until ctx is canceled, reporting whether the
// full period elapsed. Task loops use it for every periodic suspension.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
