package msgs

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/uart"
)

func TestLineEventWire(t *testing.T) {
	ev := sim.Event{Kind: sim.EventEchoed, Value: 0x55, Cycle: 10}
	typed, err := TypedFrom(EventFrom(ev))
	require.NoError(t, err)
	require.True(t, typed.IsEvent())
	// kind=1 value=0x55 cycle=10
	require.Equal(t, []byte{0x08, 0x01, 0x10, 0x55, 0x18, 0x0a}, typed.Message)

	data, err := typed.Encode()
	require.NoError(t, err)
	msg, err := Decode(data)
	require.NoError(t, err)
	require.IsType(t, &LineEvent{}, msg)
	require.Equal(t, ev, msg.(*LineEvent).Event())
	require.Equal(t, "10 echoed 55", Describe(msg))
}

func TestStatsWire(t *testing.T) {
	stats := uart.Stats{Received: 3, Sent: 2, FramingErrors: 1}
	typed, err := TypedFrom(StatsFrom(99, stats))
	require.NoError(t, err)
	data, err := typed.Encode()
	require.NoError(t, err)

	msg, err := Decode(data)
	require.NoError(t, err)
	decoded := msg.(*Stats)
	require.Equal(t, stats, decoded.UARTStats())
	require.Equal(t, uint64(99), decoded.Cycle)
	require.Equal(t, "99 stats rx=3 tx=2 framing=1 overrun=0", Describe(msg))
}

func TestDecodeErrors(t *testing.T) {
	data, err := proto.Marshal(&TypedPb{TypeId: GroupCustom | 1})
	require.NoError(t, err)
	_, err = Decode(data)
	require.Equal(t, &ErrUnknownType{TypeID: GroupCustom | 1}, err)
	require.Equal(t, "unknown type: 7f000001", err.Error())

	_, err = TypedFrom("not a message")
	require.Equal(t, ErrNotSerializable, err)

	_, err = DecodeTyped([]byte{0xff})
	require.Error(t, err)
}
