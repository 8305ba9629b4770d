package sim

import (
	"github.com/robotalks/uart.go/pkg/uart"
)

// Bench cross-wires a host UART with the device under test, which
// echoes every byte back. Both ends share the bit period and are
// always reset together, so their bit-ticks are aligned.
type Bench struct {
	Host   uart.Core
	Device uart.Core
	Probe  Probe

	queue       []byte
	breakCycles int
	events      []Event
}

// NewBench creates a Bench.
func NewBench(period int) (*Bench, error) {
	cfg := uart.Config{Period: period}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	devCfg := cfg
	devCfg.Loopback = true
	return &Bench{
		Host:   uart.New(cfg),
		Device: uart.New(devCfg),
	}, nil
}

// Period is the bit period in base-clock cycles.
func (b *Bench) Period() int {
	return b.Device.Period
}

// Cycle is the number of cycles executed.
func (b *Bench) Cycle() uint64 {
	return b.Device.Cycle
}

// Queue appends bytes to be sent by the host.
func (b *Bench) Queue(data ...byte) {
	b.queue = append(b.queue, data...)
}

// Pending is the number of bytes not yet started by the host.
func (b *Bench) Pending() int {
	return len(b.queue)
}

// Break holds the host line low for the duration of bits.
func (b *Bench) Break(bits int) {
	b.breakCycles = bits * b.Period()
}

// Idle indicates nothing is in flight on either line.
func (b *Bench) Idle() bool {
	return len(b.queue) == 0 && b.breakCycles == 0 &&
		!b.Host.Busy() && !b.Device.Busy() &&
		b.Host.Rx.Phase == uart.RxIdle && b.Device.Rx.Phase == uart.RxIdle &&
		!b.Device.Rx.Done && !b.Device.Echo.Start
}

// Stats gets the statistics of host and device.
func (b *Bench) Stats() (host, device uart.Stats) {
	return b.Host.Stats, b.Device.Stats
}

// HostLine is the level of the line from host to device.
func (b *Bench) HostLine() bool {
	return b.Host.TX() && b.breakCycles == 0
}

// Step executes one cycle.
func (b *Bench) Step() {
	var send uart.Request
	// the host only requests while idle, so nothing is lost on its side
	if len(b.queue) > 0 && !b.Host.Busy() && b.breakCycles == 0 {
		send = uart.SendRequest(b.queue[0])
		b.queue = b.queue[1:]
	}
	hostIn := uart.Inputs{RX: b.Device.TX(), Send: send}
	devIn := uart.Inputs{RX: b.HostLine()}
	if b.breakCycles > 0 {
		b.breakCycles--
	}
	tick := b.Device.Tick.Due()
	prev := b.Device.Stats
	b.Host, b.Device = b.Host.Step(hostIn), b.Device.Step(devIn)
	b.collect(prev)
	if p := b.Probe; p != nil {
		p.Sample(Sample{
			Cycle:    b.Device.Cycle,
			Tick:     tick,
			HostTX:   b.HostLine(),
			DeviceTX: b.Device.TX(),
		})
	}
}

func (b *Bench) collect(prev uart.Stats) {
	cycle := b.Device.Cycle
	if v, ok := b.Device.Received(); ok {
		b.events = append(b.events, Event{Kind: EventReceived, Value: v, Cycle: cycle})
	}
	if b.Device.Stats.FramingErrors > prev.FramingErrors {
		b.events = append(b.events, Event{Kind: EventFramingError, Cycle: cycle})
	}
	if b.Device.Stats.Overruns > prev.Overruns {
		b.events = append(b.events, Event{Kind: EventOverrun, Cycle: cycle})
	}
	if v, ok := b.Host.Received(); ok {
		b.events = append(b.events, Event{Kind: EventEchoed, Value: v, Cycle: cycle})
	}
}

// Run executes cycles.
func (b *Bench) Run(cycles uint64) {
	for ; cycles > 0; cycles-- {
		b.Step()
	}
}

// RunBits executes cycles for the duration of bits.
func (b *Bench) RunBits(bits int) {
	b.Run(uint64(bits * b.Period()))
}

// Drain runs until nothing is in flight, or maxCycles is reached.
// It returns the number of cycles executed.
func (b *Bench) Drain(maxCycles uint64) (n uint64) {
	for ; n < maxCycles && !b.Idle(); n++ {
		b.Step()
	}
	return
}

// Reset resets both ends in the same cycle and drops queued bytes.
func (b *Bench) Reset() {
	b.queue, b.breakCycles = nil, 0
	reset := uart.Inputs{RX: true, Reset: true}
	b.Host, b.Device = b.Host.Step(reset), b.Device.Step(reset)
}

// Events retrieves and clears collected events.
func (b *Bench) Events() []Event {
	events := b.events
	b.events = nil
	return events
}
