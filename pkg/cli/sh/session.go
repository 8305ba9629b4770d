package sh

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/sim/wave"
	"github.com/robotalks/uart.go/pkg/uart"
)

// DefaultMaxDrainBits limits the bits simulated waiting for a send
// to complete.
const DefaultMaxDrainBits = 1 << 16

// Session is a local bench stepped by shell commands.
type Session struct {
	Bench *sim.Bench
	Wave  *wave.Recorder
	// MaxDrainBits limits cycles of a Send in bit periods.
	MaxDrainBits int
}

// Status is the state of the bench.
type Status struct {
	Cycle    uint64 `json:"cycle"`
	Period   int    `json:"period"`
	Pending  int    `json:"pending"`
	HostTX   bool   `json:"host_tx"`
	DeviceTX bool   `json:"device_tx"`
	HostTx   string `json:"host_tx_phase"`
	DeviceRx string `json:"device_rx_phase"`
	DeviceTx string `json:"device_tx_phase"`
}

func (s Status) String() string {
	return fmt.Sprintf("cycle %d period %d pending %d | host tx=%s (%s) | device rx=%s tx=%s (%s)",
		s.Cycle, s.Period, s.Pending,
		level(s.HostTX), s.HostTx, s.DeviceRx, level(s.DeviceTX), s.DeviceTx)
}

func level(high bool) string {
	if high {
		return "1"
	}
	return "0"
}

// EventJSON is the JSON form of sim.Event.
type EventJSON struct {
	Cycle uint64 `json:"cycle"`
	Kind  string `json:"kind"`
	Value *byte  `json:"value,omitempty"`
}

// EventsJSON converts events for JSON output.
func EventsJSON(events []sim.Event) []EventJSON {
	out := make([]EventJSON, 0, len(events))
	for _, ev := range events {
		item := EventJSON{Cycle: ev.Cycle, Kind: ev.Kind.String()}
		if ev.Kind == sim.EventReceived || ev.Kind == sim.EventEchoed {
			val := ev.Value
			item.Value = &val
		}
		out = append(out, item)
	}
	return out
}

// Exchange is the result of a Send.
type Exchange struct {
	Sent     []byte
	Received []byte
	Echoed   []byte
	Cycles   uint64
	Events   []sim.Event
}

// MarshalJSON implements json.Marshaler, bytes are in hex.
func (x *Exchange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sent     string      `json:"sent"`
		Received string      `json:"received"`
		Echoed   string      `json:"echoed"`
		Cycles   uint64      `json:"cycles"`
		Events   []EventJSON `json:"events"`
	}{
		Sent:     FormatBytes(x.Sent),
		Received: FormatBytes(x.Received),
		Echoed:   FormatBytes(x.Echoed),
		Cycles:   x.Cycles,
		Events:   EventsJSON(x.Events),
	})
}

// NewSession creates a Session.
func NewSession(period int, rec *wave.Recorder) (*Session, error) {
	b, err := sim.NewBench(period)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = wave.NewConfig().NewRecorder()
	}
	return &Session{
		Bench:        b,
		Wave:         rec.Attach(b),
		MaxDrainBits: DefaultMaxDrainBits,
	}, nil
}

// Configure replaces the bench with a new bit period.
func (s *Session) Configure(period int) error {
	b, err := sim.NewBench(period)
	if err != nil {
		return err
	}
	s.Bench = b
	s.Wave.Clear()
	s.Wave.Attach(b)
	return nil
}

// Send sends bytes from the host and runs until all echoes are back.
func (s *Session) Send(data []byte) (*Exchange, error) {
	s.Bench.Queue(data...)
	max := uint64(s.MaxDrainBits) * uint64(s.Bench.Period())
	x := &Exchange{Sent: data}
	x.Cycles = s.Bench.Drain(max)
	x.Events = s.Bench.Events()
	for _, ev := range x.Events {
		switch ev.Kind {
		case sim.EventReceived:
			x.Received = append(x.Received, ev.Value)
		case sim.EventEchoed:
			x.Echoed = append(x.Echoed, ev.Value)
		}
	}
	if !s.Bench.Idle() {
		return x, fmt.Errorf("line still busy after %d cycles", x.Cycles)
	}
	return x, nil
}

// Step executes cycles and returns the events.
func (s *Session) Step(cycles uint64) []sim.Event {
	s.Bench.Run(cycles)
	return s.Bench.Events()
}

// RunBits executes cycles for bits and returns the events.
func (s *Session) RunBits(bits int) []sim.Event {
	s.Bench.RunBits(bits)
	return s.Bench.Events()
}

// Break holds the host line low for bits and runs until idle.
func (s *Session) Break(bits int) []sim.Event {
	s.Bench.Break(bits)
	s.Bench.Drain(uint64(bits+2*uart.FrameBits) * uint64(s.Bench.Period()))
	return s.Bench.Events()
}

// Reset resets the bench and the waveform.
func (s *Session) Reset() {
	s.Bench.Reset()
	s.Bench.Events()
	s.Wave.Clear()
}

// Status gets the state of the bench.
func (s *Session) Status() Status {
	b := s.Bench
	return Status{
		Cycle:    b.Cycle(),
		Period:   b.Period(),
		Pending:  b.Pending(),
		HostTX:   b.HostLine(),
		DeviceTX: b.Device.TX(),
		HostTx:   b.Host.Tx.Phase.String(),
		DeviceRx: b.Device.Rx.Phase.String(),
		DeviceTx: b.Device.Tx.Phase.String(),
	}
}

// ParseBytes parses arguments into bytes. An argument quoted with '
// or " is text, otherwise it is hex with optional 0x prefix.
func ParseBytes(args []string) ([]byte, error) {
	var data []byte
	for _, arg := range args {
		if n := len(arg); n >= 2 && (arg[0] == '\'' || arg[0] == '"') && arg[n-1] == arg[0] {
			data = append(data, arg[1:n-1]...)
			continue
		}
		str := strings.TrimPrefix(strings.ToLower(arg), "0x")
		if len(str)%2 != 0 {
			str = "0" + str
		}
		decoded, err := hex.DecodeString(str)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q", arg)
		}
		data = append(data, decoded...)
	}
	return data, nil
}

// FormatBytes formats bytes as hex.
func FormatBytes(data []byte) string {
	items := make([]string, len(data))
	for n, b := range data {
		items[n] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(items, " ")
}
