package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/uart.go/pkg/framework"
)

func newTestDevice(t *testing.T, clockHz int) *Device {
	b, err := NewBench(4)
	require.NoError(t, err)
	return NewDevice("test", clockHz, b)
}

func TestDeviceAdvance(t *testing.T) {
	d := newTestDevice(t, 1000)
	t0 := time.Unix(1000, 0)
	require.Zero(t, d.Advance(t0))
	require.Equal(t, uint64(10), d.Advance(t0.Add(10*time.Millisecond)))
	require.Equal(t, uint64(10), d.Bench.Cycle())

	// remainders are carried
	require.Zero(t, d.Advance(t0.Add(10500*time.Microsecond)))
	require.Equal(t, uint64(1), d.Advance(t0.Add(11500*time.Microsecond)))
	require.Equal(t, uint64(1), d.Advance(t0.Add(12*time.Millisecond)))

	// time going backwards doesn't execute anything
	require.Zero(t, d.Advance(t0))
	require.Equal(t, uint64(12), d.Bench.Cycle())
}

func TestDeviceAdvanceCapped(t *testing.T) {
	d := newTestDevice(t, 1000)
	d.MaxCyclesPerIteration = 5
	t0 := time.Unix(1000, 0)
	d.Advance(t0)
	require.Equal(t, uint64(5), d.Advance(t0.Add(100*time.Millisecond)))
	require.Equal(t, uint64(1), d.Advance(t0.Add(101*time.Millisecond)))
}

func TestDeviceInLoop(t *testing.T) {
	// no clock, cycles are executed explicitly on the bench
	d := newTestDevice(t, 0)
	var received []Event
	d.SubscribeEvents(EventListenerFunc(func(cc fx.ControlContext, events ...Event) {
		require.Equal(t, fx.PrLvReport, cc.PriorityLevel())
		received = append(received, events...)
	}))
	l := fx.NewLoop().Add(d)
	ctx := context.Background()

	l.PostMessage(&SendBytes{Data: []byte{0x10, 0x20}})
	l.RunOnce(ctx)
	require.Equal(t, 2, d.Bench.Pending())
	require.Empty(t, received)

	d.Bench.Drain(1000)
	l.RunOnce(ctx)
	require.Equal(t, []byte{0x10, 0x20}, eventsOf(received, EventReceived))
	require.Equal(t, []byte{0x10, 0x20}, eventsOf(received, EventEchoed))

	l.PostMessage(&SendBytes{Data: []byte{1, 2, 3}})
	l.PostMessage(&ResetLine{})
	l.RunOnce(ctx)
	require.Zero(t, d.Bench.Pending())
}

func TestConfigDevice(t *testing.T) {
	conf := NewConfig()
	period, err := conf.Period()
	require.NoError(t, err)
	require.Equal(t, 16, period)

	d, err := conf.NewDevice("dev")
	require.NoError(t, err)
	require.Equal(t, 16, d.Bench.Period())
	require.Equal(t, "dev", d.Name)

	conf.Baud = 0
	_, err = conf.NewDevice("dev")
	require.Error(t, err)
}
