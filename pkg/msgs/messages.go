package msgs

import (
	"fmt"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/uart"
)

// TypeID Groups
const (
	GroupLine   uint32 = 0x00010000
	GroupCustom uint32 = 0x7f000000 // base group id for custom messages.
)

// TypeIDs
const (
	LineEventTypeID uint32 = TypeIDKindEvent | GroupLine | 0x0001
	StatsTypeID     uint32 = TypeIDKindEvent | GroupLine | 0x0002
)

// LineEvent is published for every sim.Event.
type LineEvent struct {
	LineEventPb
}

// EventFrom creates a LineEvent.
func EventFrom(ev sim.Event) *LineEvent {
	return &LineEvent{LineEventPb: LineEventPb{
		Kind:  int32(ev.Kind),
		Value: uint32(ev.Value),
		Cycle: ev.Cycle,
	}}
}

// Event converts back to sim.Event.
func (m *LineEvent) Event() sim.Event {
	return sim.Event{Kind: sim.EventKind(m.Kind), Value: byte(m.Value), Cycle: m.Cycle}
}

// TypeID implements SerializableMessage.
func (m *LineEvent) TypeID() uint32 { return LineEventTypeID }

// Serializable implements SerializableMessage.
func (m *LineEvent) Serializable() proto.Message { return &m.LineEventPb }

// Stats is published when the counters of the device change.
type Stats struct {
	StatsPb
}

// StatsFrom creates Stats.
func StatsFrom(cycle uint64, s uart.Stats) *Stats {
	return &Stats{StatsPb: StatsPb{
		Received:      s.Received,
		Sent:          s.Sent,
		FramingErrors: s.FramingErrors,
		Overruns:      s.Overruns,
		Cycle:         cycle,
	}}
}

// UARTStats converts back to uart.Stats.
func (m *Stats) UARTStats() uart.Stats {
	return uart.Stats{
		Received:      m.Received,
		Sent:          m.Sent,
		FramingErrors: m.FramingErrors,
		Overruns:      m.Overruns,
	}
}

// TypeID implements SerializableMessage.
func (m *Stats) TypeID() uint32 { return StatsTypeID }

// Serializable implements SerializableMessage.
func (m *Stats) Serializable() proto.Message { return &m.StatsPb }

// Describe formats a message for humans.
func Describe(msg SerializableMessage) string {
	switch m := msg.(type) {
	case *LineEvent:
		return m.Event().String()
	case *Stats:
		return fmt.Sprintf("%d stats rx=%d tx=%d framing=%d overrun=%d",
			m.Cycle, m.Received, m.Sent, m.FramingErrors, m.Overruns)
	}
	return fmt.Sprintf("%T", msg)
}
