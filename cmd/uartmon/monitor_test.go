package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/uart.go/pkg/msgs"
	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/uart"
)

func init() {
	color.NoColor = true
}

func encode(t *testing.T, msg msgs.SerializableMessage) []byte {
	typed, err := msgs.TypedFrom(msg)
	require.NoError(t, err)
	data, err := typed.Encode()
	require.NoError(t, err)
	return data
}

func TestMonitorHandle(t *testing.T) {
	m := newMonitor()
	line, err := m.handle("dev/meta", []byte(`{"name":"dev","period":16}`))
	require.NoError(t, err)
	require.Equal(t, "dev: online, period 16", line)

	line, err = m.handle("dev/events", encode(t, msgs.EventFrom(sim.Event{Kind: sim.EventEchoed, Value: 0x41, Cycle: 320})))
	require.NoError(t, err)
	require.Equal(t, "dev: 320 echoed 41", line)

	line, err = m.handle("dev/stats", encode(t, msgs.StatsFrom(330, uart.Stats{Received: 1, Sent: 1})))
	require.NoError(t, err)
	require.Equal(t, "dev: 330 stats rx=1 tx=1 framing=0 overrun=0", line)

	line, err = m.handle("dev/tx", []byte{0x41})
	require.NoError(t, err)
	require.Empty(t, line)

	_, err = m.handle("dev/events", []byte{0xff})
	require.Error(t, err)
	_, err = m.handle("nodevice", nil)
	require.Error(t, err)

	line, err = m.handle("dev/meta", nil)
	require.NoError(t, err)
	require.Equal(t, "dev: offline", line)
}

func TestMonitorRender(t *testing.T) {
	m := newMonitor()
	m.handle("b/meta", []byte(`{"period":4}`))
	m.handle("a/stats", encode(t, msgs.StatsFrom(99, uart.Stats{Received: 3, Sent: 2, Overruns: 1})))
	for i := 0; i < recentEvents+2; i++ {
		m.handle("a/events", encode(t, msgs.EventFrom(sim.Event{Kind: sim.EventReceived, Value: byte(i), Cycle: uint64(i)})))
	}

	var buf bytes.Buffer
	m.render(&buf, time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "10:00:00  2 devices", lines[0])
	require.True(t, strings.HasPrefix(lines[2], "a "))
	require.Contains(t, lines[2], " off ")
	require.Contains(t, lines[2], "99")
	require.Equal(t, "    2 received 02", lines[3])
	require.True(t, strings.HasPrefix(lines[3+recentEvents], "b "))
	require.Contains(t, lines[3+recentEvents], " on ")
}
