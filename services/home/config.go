// services/home/config.go
package home

import (
	"time"

	"smarthome-go/types"
)

// Config centralises every period, wait bound and threshold in the task
// set. Zero values are filled in by DefaultConfig; tests shrink the
// periods to keep runs fast.
type Config struct {
	GuardWait       time.Duration // bounded wait on the sensor guard
	DisplayLockWait time.Duration // bounded wait on the display lock
	LogEnqueueWait  time.Duration // bounded wait enqueueing a log entry

	TempPeriod  time.Duration
	LightPeriod time.Duration

	MotionIdle time.Duration // gap between motion events
	MotionHold time.Duration // how long the flag stays asserted

	DisplayWait time.Duration // bounded wait for wake flags

	LoggerWait time.Duration // bounded wait on the log channel
	LoggerIdle time.Duration // nap after an empty-queue timeout

	EmergencyPeriod time.Duration
	EmergencyStrobe time.Duration
	OverheatAbove   int // degrees; strictly above asserts the flag

	HeartbeatPulse time.Duration
	HeartbeatGap   time.Duration

	OverrideHold time.Duration // full-intensity hold while motion asserted

	LightCeiling types.Priority // OCPP ceiling of the room-light bank
}

func DefaultConfig() Config {
	return Config{
		GuardWait:       50 * time.Millisecond,
		DisplayLockWait: 100 * time.Millisecond,
		LogEnqueueWait:  40 * time.Millisecond,
		TempPeriod:      200 * time.Millisecond,
		LightPeriod:     50 * time.Millisecond,
		MotionIdle:      800 * time.Millisecond,
		MotionHold:      400 * time.Millisecond,
		DisplayWait:     200 * time.Millisecond,
		LoggerWait:      120 * time.Millisecond,
		LoggerIdle:      30 * time.Millisecond,
		EmergencyPeriod: 50 * time.Millisecond,
		EmergencyStrobe: 10 * time.Millisecond,
		OverheatAbove:   45,
		HeartbeatPulse:  5 * time.Millisecond,
		HeartbeatGap:    95 * time.Millisecond,
		OverrideHold:    100 * time.Millisecond,
		LightCeiling:    PrioMotion,
	}
}
