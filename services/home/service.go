// services/home/service.go
package home

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"smarthome-go/ceiling"
	"smarthome-go/drivers/ledbank"
	"smarthome-go/events"
	"smarthome-go/logq"
	"smarthome-go/sensorstate"
	"smarthome-go/types"
	"smarthome-go/x/sema"
)

// Task identities and their static priorities (lower value = more urgent).
const (
	TaskEmergency   types.TaskID = "emergency"
	TaskMotion      types.TaskID = "motion"
	TaskTemperature types.TaskID = "temperature"
	TaskLight       types.TaskID = "light"
	TaskDisplay     types.TaskID = "display"
	TaskLogger      types.TaskID = "logger"
	TaskHeartbeat   types.TaskID = "heartbeat"
)

const (
	PrioEmergency   types.Priority = 1
	PrioMotion      types.Priority = 2
	PrioTemperature types.Priority = 3
	PrioLight       types.Priority = 4
	PrioDisplay     types.Priority = 5
	PrioLogger      types.Priority = 6
	PrioHeartbeat   types.Priority = 7
)

// Wake flags for the display task.
const (
	EvTempUpdate events.Mask = 1 << iota
	EvLightUpdate
	EvMotion
)

// DisplaySink renders short status lines; drivers/charlcd implements it.
type DisplaySink interface {
	Clear() error
	GotoXY(x, y uint8) error
	Print(s string) error
}

// Deps collects the collaborators shared by the task set. All cross-task
// state is passed in here; the package holds no ambient globals.
type Deps struct {
	State     *sensorstate.State
	Registry  *ceiling.Registry
	Ceiling   *ceiling.Manager
	Log       *logq.Channel
	LEDs      *ledbank.Bank
	Display   DisplaySink
	DisplayMu *sema.Mutex
}

type service struct {
	cfg  Config
	deps Deps
	log  *logrus.Logger

	displayEv *events.Group
	overheat  atomic.Bool

	wg sync.WaitGroup
}

func newService(cfg Config, deps Deps, log *logrus.Logger) *service {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	s := &service{
		cfg:       cfg,
		deps:      deps,
		log:       log,
		displayEv: events.NewGroup(),
	}
	deps.Registry.Register(TaskEmergency, PrioEmergency)
	deps.Registry.Register(TaskMotion, PrioMotion)
	deps.Registry.Register(TaskTemperature, PrioTemperature)
	deps.Registry.Register(TaskLight, PrioLight)
	deps.Registry.Register(TaskDisplay, PrioDisplay)
	deps.Registry.Register(TaskLogger, PrioLogger)
	deps.Registry.Register(TaskHeartbeat, PrioHeartbeat)
	return s
}

// Run registers the seven tasks and runs them until ctx is canceled.
func Run(ctx context.Context, cfg Config, deps Deps, log *logrus.Logger) {
	s := newService(cfg, deps, log)
	s.start(ctx)
	s.wg.Wait()
}

func (s *service) start(ctx context.Context) {
	s.spawn(ctx, TaskTemperature, s.temperatureTask)
	s.spawn(ctx, TaskLight, s.lightTask)
	s.spawn(ctx, TaskMotion, s.motionTask)
	s.spawn(ctx, TaskDisplay, s.displayTask)
	s.spawn(ctx, TaskLogger, s.loggerTask)
	s.spawn(ctx, TaskEmergency, s.emergencyTask)
	s.spawn(ctx, TaskHeartbeat, s.heartbeatTask)
}

func (s *service) spawn(ctx context.Context, id types.TaskID, loop func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.log.WithField("task", id).Info("task started")
		loop(ctx)
		s.log.WithField("task", id).Info("task stopped")
	}()
}

// emitLog queues one status entry; a missed bound drops the entry (lossy
// by design, the channel keeps no backpressure signal for producers).
func (s *service) emitLog(entry string) {
	if err := s.deps.Log.TryEnqueue(entry, s.cfg.LogEnqueueWait); err != nil {
		s.log.WithField("entry", entry).Debug("log channel full, entry dropped")
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
