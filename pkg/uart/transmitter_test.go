package uart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// startAligned steps g until the next Step fires a tick, so a request
// presented in that Step yields a full-period start bit.
func startAligned(g TickGenerator) TickGenerator {
	for !g.Due() {
		g, _ = g.Step()
	}
	return g
}

func TestTransmitterWaveform(t *testing.T) {
	const period = 4
	for b := 0; b < 256; b++ {
		g := startAligned(NewTickGenerator(period))
		var tx Transmitter
		var tick bool
		g, tick = g.Step()
		tx = tx.Step(tick, SendRequest(byte(b)))
		require.True(t, tx.Busy())

		expected := Frame(byte(b))
		for i := 0; i < period*FrameBits; i++ {
			require.Equalf(t, expected[i/period], tx.Line(), "byte %02x cycle %d", b, i)
			require.True(t, tx.Busy())
			g, tick = g.Step()
			tx = tx.Step(tick, Request{})
		}
		require.False(t, tx.Busy())
		require.True(t, tx.Line())
	}
}

func TestTransmitterIdle(t *testing.T) {
	var tx Transmitter
	require.False(t, tx.Busy())
	require.True(t, tx.Line())
	for i := 0; i < 10; i++ {
		tx = tx.Step(true, Request{})
	}
	require.Equal(t, TxIdle, tx.Phase)
	require.True(t, tx.Accepts(SendRequest(1)))
	require.False(t, tx.Accepts(Request{}))
}

func TestTransmitterAcceptsWithoutTick(t *testing.T) {
	tx := Transmitter{}.Step(false, SendRequest(0x81))
	require.Equal(t, TxSendingStart, tx.Phase)
	require.Equal(t, byte(0x81), tx.DataBuffer)
	require.Equal(t, 0, tx.BitsSent)
	require.False(t, tx.Line())
	tx = tx.Step(false, Request{})
	require.Equal(t, TxSendingStart, tx.Phase)
	tx = tx.Step(true, Request{})
	require.Equal(t, TxSendingData, tx.Phase)
	require.True(t, tx.Line())
}

func TestTransmitterStartBitLastsUntilTick(t *testing.T) {
	const period = 5
	for offset := 0; offset < period; offset++ {
		g := NewTickGenerator(period)
		for i := 0; i < offset; i++ {
			g, _ = g.Step()
		}
		var tick bool
		g, tick = g.Step()
		tx := Transmitter{}.Step(tick, SendRequest(0xff))
		low := 0
		for tx.Phase == TxSendingStart {
			require.False(t, tx.Line())
			low++
			g, tick = g.Step()
			tx = tx.Step(tick, Request{})
		}
		expected := period - 1 - offset
		if offset == period-1 {
			expected = period
		}
		require.Equalf(t, expected, low, "accepted at counter %d", offset)
	}
}

func TestTransmitterIgnoresRequestsWhileBusy(t *testing.T) {
	g := NewTickGenerator(3)
	ref := Transmitter{}.Step(false, SendRequest(0xa5))
	tx := ref
	for i := 0; i < 3*FrameBits; i++ {
		require.False(t, tx.Accepts(SendRequest(byte(i))))
		var tick bool
		g, tick = g.Step()
		ref = ref.Step(tick, Request{})
		tx = tx.Step(tick, SendRequest(byte(i)))
		require.Equal(t, ref, tx)
	}
	require.False(t, tx.Busy())
}

func TestTxPhaseString(t *testing.T) {
	require.Equal(t, "idle", TxIdle.String())
	require.Equal(t, "start", TxSendingStart.String())
	require.Equal(t, "data", TxSendingData.String())
	require.Equal(t, "stop", TxSendingStop.String())
	require.Equal(t, "unknown", TxPhase(-1).String())
}

func TestRoundTrip(t *testing.T) {
	const period = 3
	for b := 0; b < 256; b++ {
		g := NewTickGenerator(period)
		var tx Transmitter
		var rx Receiver
		var received []byte
		for i := 0; i < period*(FrameBits+2); i++ {
			var req Request
			if i == 0 {
				req = SendRequest(byte(b))
			}
			line := tx.Line()
			var tick bool
			g, tick = g.Step()
			rx = rx.Step(tick, line)
			tx = tx.Step(tick, req)
			if rx.Done {
				received = append(received, rx.OutputByte)
			}
		}
		require.Equalf(t, []byte{byte(b)}, received, "byte %02x", b)
	}
}
