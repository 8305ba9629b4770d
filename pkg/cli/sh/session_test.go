package sh

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/sim/wave"
)

func TestParseBytes(t *testing.T) {
	cases := []struct {
		args []string
		data []byte
	}{
		{[]string{"55"}, []byte{0x55}},
		{[]string{"0x55aa", "f"}, []byte{0x55, 0xaa, 0x0f}},
		{[]string{"'hi'", "0A"}, []byte{'h', 'i', 0x0a}},
		{[]string{`"a b"`}, []byte("a b")},
		{nil, nil},
	}
	for _, c := range cases {
		data, err := ParseBytes(c.args)
		require.NoError(t, err)
		require.Equal(t, c.data, data)
	}
	_, err := ParseBytes([]string{"zz"})
	require.Error(t, err)
	_, err = ParseBytes([]string{"'unterminated"})
	require.Error(t, err)
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "00 7f ff", FormatBytes([]byte{0, 0x7f, 0xff}))
	require.Equal(t, "", FormatBytes(nil))
}

func TestSessionSend(t *testing.T) {
	s, err := NewSession(4, nil)
	require.NoError(t, err)
	x, err := s.Send([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, []byte("ok"), x.Received)
	require.Equal(t, []byte("ok"), x.Echoed)
	require.NotZero(t, x.Cycles)
	require.NotEmpty(t, s.Wave.Transitions())

	encoded, err := json.Marshal(x)
	require.NoError(t, err)
	var out struct {
		Echoed string      `json:"echoed"`
		Events []EventJSON `json:"events"`
	}
	require.NoError(t, json.Unmarshal(encoded, &out))
	require.Equal(t, "6f 6b", out.Echoed)
	require.Len(t, out.Events, 4)

	st := s.Status()
	require.Equal(t, 4, st.Period)
	require.Equal(t, "idle", st.DeviceRx)
	require.True(t, st.HostTX)
}

func TestSessionStepAndReset(t *testing.T) {
	s, err := NewSession(4, wave.NewRecorder(16))
	require.NoError(t, err)
	s.Bench.Queue(0x00)
	events := s.Step(1)
	require.Empty(t, events)
	st := s.Status()
	require.Equal(t, uint64(1), st.Cycle)
	require.False(t, st.HostTX)
	require.Equal(t, "start", st.HostTx)

	events = s.RunBits(12)
	require.Len(t, events, 1)
	require.Equal(t, sim.EventReceived, events[0].Kind)

	s.Reset()
	st = s.Status()
	require.Equal(t, "idle", st.DeviceTx)
	require.Empty(t, s.Wave.Transitions())
}

func TestSessionBreak(t *testing.T) {
	s, err := NewSession(4, nil)
	require.NoError(t, err)
	events := s.Break(10)
	require.Len(t, events, 1)
	require.Equal(t, sim.EventFramingError, events[0].Kind)

	items := EventsJSON(events)
	require.Equal(t, "framing-error", items[0].Kind)
	require.Nil(t, items[0].Value)
}

func TestSessionConfigure(t *testing.T) {
	s, err := NewSession(4, nil)
	require.NoError(t, err)
	require.Error(t, s.Configure(0))
	require.NoError(t, s.Configure(8))
	require.Equal(t, 8, s.Status().Period)
	x, err := s.Send([]byte{0x81})
	require.NoError(t, err)
	require.Equal(t, []byte{0x81}, x.Echoed)
}
