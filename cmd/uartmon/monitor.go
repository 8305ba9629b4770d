package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/robotalks/uart.go/pkg/link/mqtt"
	"github.com/robotalks/uart.go/pkg/msgs"
	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/uart"
)

const recentEvents = 8

type deviceState struct {
	meta   mqtt.Meta
	online bool
	cycle  uint64
	stats  uart.Stats
	events []sim.Event
}

// monitor keeps the latest state of devices seen on the broker.
type monitor struct {
	lock    sync.Mutex
	devices map[string]*deviceState
}

var (
	metaColor  = color.New(color.FgMagenta)
	errColor   = color.New(color.FgRed, color.Bold)
	echoColor  = color.New(color.FgGreen)
	statsColor = color.New(color.FgBlue)
)

func newMonitor() *monitor {
	return &monitor{devices: make(map[string]*deviceState)}
}

func (m *monitor) device(name string) *deviceState {
	st := m.devices[name]
	if st == nil {
		st = &deviceState{meta: mqtt.Meta{Name: name}}
		m.devices[name] = st
	}
	return st
}

// handle updates the state and returns a line describing the message.
func (m *monitor) handle(topic string, payload []byte) (string, error) {
	pos := strings.LastIndex(topic, "/")
	if pos <= 0 {
		return "", fmt.Errorf("%s: unexpected topic", topic)
	}
	name, suffix := topic[:pos], topic[pos+1:]
	m.lock.Lock()
	defer m.lock.Unlock()
	switch suffix {
	case mqtt.TopicMeta:
		meta, online, err := mqtt.ParseMeta(topic, payload)
		if err != nil {
			return "", fmt.Errorf("%s: bad meta: %v", topic, err)
		}
		st := m.device(name)
		st.meta, st.online = meta, online
		if !online {
			return metaColor.Sprintf("%s: offline", name), nil
		}
		return metaColor.Sprintf("%s: online, period %d", name, meta.Period), nil
	case mqtt.TopicEvents, mqtt.TopicStats:
	default:
		return "", nil
	}

	msg, err := msgs.Decode(payload)
	if err != nil {
		return "", fmt.Errorf("%s: bad message: %v", topic, err)
	}
	st := m.device(name)
	line := name + ": " + msgs.Describe(msg)
	switch v := msg.(type) {
	case *msgs.LineEvent:
		ev := v.Event()
		st.events = append(st.events, ev)
		if n := len(st.events); n > recentEvents {
			st.events = st.events[n-recentEvents:]
		}
		switch ev.Kind {
		case sim.EventFramingError, sim.EventOverrun:
			return errColor.Sprint(line), nil
		case sim.EventEchoed:
			return echoColor.Sprint(line), nil
		}
	case *msgs.Stats:
		st.cycle, st.stats = v.Cycle, v.UARTStats()
		return statsColor.Sprint(line), nil
	}
	return line, nil
}

// render writes a table of all devices.
func (m *monitor) render(w io.Writer, now time.Time) {
	m.lock.Lock()
	defer m.lock.Unlock()
	names := make([]string, 0, len(m.devices))
	for name := range m.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "%s  %d devices\n", now.Format("15:04:05"), len(names))
	fmt.Fprintf(w, "%-20s %6s %12s %8s %8s %8s %8s\n", "NAME", "STATE", "CYCLE", "RX", "TX", "FRAMING", "OVERRUN")
	for _, name := range names {
		st := m.devices[name]
		state := "off"
		if st.online {
			state = "on"
		}
		fmt.Fprintf(w, "%-20s %6s %12d %8d %8d %8d %8d\n", name, state, st.cycle,
			st.stats.Received, st.stats.Sent, st.stats.FramingErrors, st.stats.Overruns)
		for _, ev := range st.events {
			fmt.Fprintf(w, "    %s\n", ev)
		}
	}
}
