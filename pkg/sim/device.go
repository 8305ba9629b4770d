package sim

import (
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/uart.go/pkg/framework"
)

const maxLag = time.Second

// Device runs a Bench in the loop, following wall-clock time.
type Device struct {
	Name    string
	ClockHz int
	// MaxCyclesPerIteration caps the cycles executed in one iteration,
	// the remaining time is dropped when the loop falls behind.
	MaxCyclesPerIteration uint64

	Bench *Bench

	EventCaster

	last    time.Time
	pending time.Duration
}

// NewDevice creates a Device.
func NewDevice(name string, clockHz int, bench *Bench) *Device {
	return &Device{
		Name:                  name,
		ClockHz:               clockHz,
		MaxCyclesPerIteration: DefaultMaxCyclesPerIteration,
		Bench:                 bench,
	}
}

// AddToLoop implements LoopAdder.
func (d *Device) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvSample, fx.ControlFunc(d.HandleCommand))
	l.AddController(fx.PrLvStep, fx.ControlFunc(d.Execute))
	l.AddController(fx.PrLvReport, fx.ControlFunc(d.NotifyChanges))
}

// HandleCommand is a controller processing messages.
func (d *Device) HandleCommand(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		switch m := mctx.CurrentMessage().(type) {
		case *SendBytes:
			mctx.MessageTaken()
			glog.V(3).Infof("%s: queue %d bytes", d.Name, len(m.Data))
			d.Bench.Queue(m.Data...)
		case *ResetLine:
			mctx.MessageTaken()
			glog.V(1).Infof("%s: reset", d.Name)
			d.Bench.Reset()
		}
	}))
	return nil
}

// Execute is a controller advancing the bench.
func (d *Device) Execute(cc fx.ControlContext) error {
	d.Advance(cc.Time())
	return nil
}

// Advance executes the cycles elapsed since last call.
// The first call only records the time.
func (d *Device) Advance(now time.Time) uint64 {
	if d.last.IsZero() || d.ClockHz <= 0 {
		d.last = now
		return 0
	}
	if now.After(d.last) {
		d.pending += now.Sub(d.last)
	}
	d.last = now
	if d.pending > maxLag {
		glog.V(1).Infof("%s: lagging %v", d.Name, d.pending)
		d.pending = maxLag
	}
	cycles := uint64(d.pending.Nanoseconds()) * uint64(d.ClockHz) / uint64(time.Second)
	d.pending -= time.Duration(cycles * uint64(time.Second) / uint64(d.ClockHz))
	if max := d.MaxCyclesPerIteration; max > 0 && cycles > max {
		glog.V(1).Infof("%s: falling behind, %d cycles dropped", d.Name, cycles-max)
		cycles, d.pending = max, 0
	}
	d.Bench.Run(cycles)
	return cycles
}

// NotifyChanges notifies events collected in this iteration.
func (d *Device) NotifyChanges(cc fx.ControlContext) error {
	if events := d.Bench.Events(); len(events) > 0 {
		if glog.V(2) {
			for _, ev := range events {
				glog.Infof("%s: %s", d.Name, ev)
			}
		}
		d.EventsHappened(cc, events...)
	}
	return nil
}
