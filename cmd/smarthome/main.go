// cmd/smarthome/main.go
//
// Host simulator for the smart-home task set: fake LED bank, in-memory
// character LCD, and a small stdin console for poking the shared state.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/google/shlex"
	"github.com/sirupsen/logrus"

	"smarthome-go/ceiling"
	"smarthome-go/drivers/charlcd"
	"smarthome-go/drivers/ledbank"
	"smarthome-go/logq"
	"smarthome-go/sensorstate"
	"smarthome-go/services/home"
	"smarthome-go/x/sema"
)

// simPort is an in-memory LED bank that logs transitions.
type simPort struct {
	mu   sync.Mutex
	bits uint8
	log  *logrus.Logger
}

func (p *simPort) SetBits(b uint8) {
	p.mu.Lock()
	old := p.bits
	p.bits |= b
	cur := p.bits
	p.mu.Unlock()
	if cur != old {
		p.log.WithField("bits", fmt.Sprintf("%08b", cur)).Debug("led bank")
	}
}

func (p *simPort) ClearBits(b uint8) {
	p.mu.Lock()
	old := p.bits
	p.bits &^= b
	cur := p.bits
	p.mu.Unlock()
	if cur != old {
		p.log.WithField("bits", fmt.Sprintf("%08b", cur)).Debug("led bank")
	}
}

func (p *simPort) render() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("%08b", p.bits)
}

// lcdBus is an in-memory I2C endpoint decoding the charlcd wire protocol
// into a 2x16 panel.
type lcdBus struct {
	mu   sync.Mutex
	rows [2][16]byte
	cur  int
}

func newLCDBus() *lcdBus {
	b := &lcdBus{}
	b.clearLocked()
	return b
}

func (b *lcdBus) clearLocked() {
	for r := range b.rows {
		for c := range b.rows[r] {
			b.rows[r][c] = ' '
		}
	}
	b.cur = 0
}

func (b *lcdBus) Tx(addr uint16, w, r []byte) error {
	if len(w) < 2 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	switch w[0] {
	case 0x00: // command
		switch c := w[1]; {
		case c == 0x01:
			b.clearLocked()
		case c&0x80 != 0:
			b.cur = int(c &^ 0x80)
		}
	case 0x40: // data
		for _, ch := range w[1:] {
			row, col := b.cur/0x40, b.cur%0x40
			if row < 2 && col < 16 {
				b.rows[row][col] = ch
			}
			b.cur++
		}
	}
	return nil
}

func (b *lcdBus) render() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.rows[0][:]) + " | " + string(b.rows[1][:])
}

func main() {
	debug := flag.Bool("debug", false, "log LED bank transitions and dropped entries")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	port := &simPort{log: log}
	bus := newLCDBus()
	lcd := charlcd.New(bus, 0)
	if err := lcd.Configure(); err != nil {
		log.WithError(err).Fatal("lcd configure")
	}

	reg := ceiling.NewRegistry()
	deps := home.Deps{
		State:     sensorstate.New(),
		Registry:  reg,
		Ceiling:   ceiling.NewManager(reg),
		Log:       logq.New(),
		LEDs:      ledbank.New(port),
		Display:   lcd,
		DisplayMu: sema.NewMutex(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	done := make(chan struct{})
	go func() {
		home.Run(ctx, home.DefaultConfig(), deps, log)
		close(done)
	}()

	log.Info("smart home up; commands: status, inject temp|light N, inject motion on|off, quit")
	console(ctx, cancel, log, deps, port, bus)

	cancel()
	<-done
	log.Info("all tasks stopped")
}

func console(ctx context.Context, cancel context.CancelFunc, log *logrus.Logger, deps home.Deps, port *simPort, bus *lcdBus) {
	cfg := home.DefaultConfig()
	sc := bufio.NewScanner(os.Stdin)
	for ctx.Err() == nil && sc.Scan() {
		args, err := shlex.Split(sc.Text())
		if err != nil {
			log.WithError(err).Warn("bad command line")
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "status":
			snap, err := deps.State.Snapshot(cfg.GuardWait)
			if err != nil {
				log.Warn("state guard busy")
				continue
			}
			put, get := deps.Log.Cursors()
			owner := deps.Ceiling.OwnerICPP()
			sysC, set := deps.Ceiling.SystemCeiling()
			fmt.Printf("state: %+v\n", snap)
			fmt.Printf("lcd:   [%s]\n", bus.render())
			fmt.Printf("leds:  %s\n", port.render())
			fmt.Printf("log:   put=%d get=%d pending=%d\n", put, get, deps.Log.Pending())
			fmt.Printf("icpp:  owner=%q\n", owner)
			fmt.Printf("ocpp:  ceiling=%v set=%v\n", sysC, set)
		case "inject":
			if len(args) != 3 {
				log.Warn("usage: inject temp|light|motion VALUE")
				continue
			}
			injectErr := deps.State.WithLock(cfg.GuardWait, func(r *sensorstate.Readings) error {
				switch args[1] {
				case "temp":
					v, err := strconv.Atoi(args[2])
					if err != nil {
						return err
					}
					r.Temperature = v
				case "light":
					v, err := strconv.Atoi(args[2])
					if err != nil {
						return err
					}
					r.Light = v
				case "motion":
					r.Motion = strings.EqualFold(args[2], "on")
				default:
					return fmt.Errorf("unknown field %q", args[1])
				}
				return nil
			})
			if injectErr != nil {
				log.WithError(injectErr).Warn("inject failed")
			}
		case "quit", "exit":
			cancel()
			return
		default:
			log.WithField("cmd", args[0]).Warn("unknown command")
		}
	}
}
