package sim

import (
	"fmt"

	fx "github.com/robotalks/uart.go/pkg/framework"
)

// EventKind classifies events observed on the bench.
type EventKind int

// Event kinds
const (
	// EventReceived means the device decoded a byte sent by the host.
	EventReceived EventKind = iota
	// EventEchoed means the host decoded a byte sent by the device.
	EventEchoed
	// EventFramingError means the device sampled a low stop bit.
	EventFramingError
	// EventOverrun means the device dropped a byte as the transmitter was busy.
	EventOverrun
)

var eventKindNames = map[EventKind]string{
	EventReceived:     "received",
	EventEchoed:       "echoed",
	EventFramingError: "framing-error",
	EventOverrun:      "overrun",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is observed on the bench in a specific cycle.
type Event struct {
	Kind  EventKind
	Value byte
	Cycle uint64
}

func (e Event) String() string {
	switch e.Kind {
	case EventReceived, EventEchoed:
		return fmt.Sprintf("%d %s %02x", e.Cycle, e.Kind, e.Value)
	}
	return fmt.Sprintf("%d %s", e.Cycle, e.Kind)
}

// Sample is the state of both lines after a cycle.
type Sample struct {
	Cycle uint64
	// Tick indicates a bit-tick fired in this cycle.
	Tick bool
	// HostTX is the line from host to device.
	HostTX bool
	// DeviceTX is the line from device to host.
	DeviceTX bool
}

// Probe receives a Sample every cycle.
type Probe interface {
	Sample(Sample)
}

// ProbeFunc is the func form of Probe.
type ProbeFunc func(Sample)

// Sample implements Probe.
func (f ProbeFunc) Sample(s Sample) {
	f(s)
}

// SendBytes is the message asking the host to send bytes to the device.
type SendBytes struct {
	Data []byte
}

// ResetLine is the message resetting both ends of the line.
type ResetLine struct{}

// EventListener listens for events.
type EventListener interface {
	EventsHappened(fx.ControlContext, ...Event)
}

// EventListenerFunc is the func form of EventListener.
type EventListenerFunc func(fx.ControlContext, ...Event)

// EventsHappened implements EventListener.
func (f EventListenerFunc) EventsHappened(cc fx.ControlContext, events ...Event) {
	f(cc, events...)
}

// EventSubscriber subscribes event notifications.
type EventSubscriber interface {
	SubscribeEvents(EventListener)
}
