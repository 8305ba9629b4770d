package wave

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/uart.go/pkg/sim"
)

func init() {
	color.NoColor = true
}

func sampleSeries(r *Recorder) {
	levels := []struct{ h, d bool }{
		{true, true},
		{true, true},
		{false, true},
		{false, false},
		{true, false},
		{true, true},
	}
	for n, l := range levels {
		r.Sample(sim.Sample{Cycle: uint64(n + 1), Tick: n%2 == 1, HostTX: l.h, DeviceTX: l.d})
	}
}

func TestRecorderKeepsTransitions(t *testing.T) {
	r := NewRecorder(10)
	sampleSeries(r)
	require.Equal(t, []Transition{
		{Cycle: 1, HostTX: true, DeviceTX: true},
		{Cycle: 3, HostTX: false, DeviceTX: true},
		{Cycle: 4, HostTX: false, DeviceTX: false},
		{Cycle: 5, HostTX: true, DeviceTX: false},
		{Cycle: 6, HostTX: true, DeviceTX: true},
	}, r.Transitions())
	require.Equal(t, uint64(6), r.LastCycle())
	require.Equal(t, uint64(3), r.Ticks())
}

func TestRecorderDepth(t *testing.T) {
	r := NewRecorder(3)
	sampleSeries(r)
	trs := r.Transitions()
	require.Len(t, trs, 3)
	require.Equal(t, uint64(4), trs[0].Cycle)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, 10))
	require.Equal(t, "cycle 6, 1 cycles/column\nhost   _‾‾\ndevice __‾\n", buf.String())
}

func TestRecorderScale(t *testing.T) {
	r := NewRecorder(10)
	r.Scale = 2
	sampleSeries(r)
	host, device := r.Levels(10)
	require.Equal(t, "‾_‾", string(host))
	require.Equal(t, "‾_‾", string(device))

	host, _ = r.Levels(2)
	require.Equal(t, "_‾", string(host))
}

func TestRecorderEmpty(t *testing.T) {
	r := NewRecorder(0)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, 10))
	require.Equal(t, "(no samples)\n", buf.String())

	encoded, err := r.JSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"last_cycle":0,"transitions":[]}`, string(encoded))
}

func TestRecorderJSON(t *testing.T) {
	r := NewRecorder(2)
	sampleSeries(r)
	encoded, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"last_cycle":6,"transitions":[
		{"cycle":5,"host":true,"device":false},
		{"cycle":6,"host":true,"device":true}]}`, string(encoded))
}

func TestRecorderOnBench(t *testing.T) {
	b, err := sim.NewBench(4)
	require.NoError(t, err)
	r := NewConfig().NewRecorder().Attach(b)
	b.Queue(0x0f)
	n := b.Drain(1000)
	require.Equal(t, n, r.LastCycle())
	require.Equal(t, n/4, r.Ticks())

	trs := r.Transitions()
	require.NotEmpty(t, trs)
	// the host starts the frame right away
	require.Equal(t, Transition{Cycle: 1, HostTX: false, DeviceTX: true}, trs[0])
	require.True(t, trs[len(trs)-1].HostTX)
	require.True(t, trs[len(trs)-1].DeviceTX)

	r.Clear()
	require.Empty(t, r.Transitions())
}
