package uart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTickGenerator(t *testing.T) {
	g := NewTickGenerator(3)
	var ticks []bool
	for i := 0; i < 7; i++ {
		var tick bool
		g, tick = g.Step()
		require.True(t, g.Counter >= 0 && g.Counter < g.Period)
		ticks = append(ticks, tick)
	}
	require.Equal(t, []bool{false, false, true, false, false, true, false}, ticks)
}

func TestTickGeneratorAdvance(t *testing.T) {
	g := NewTickGenerator(2)
	require.False(t, g.Due())
	require.False(t, g.Advance())
	require.True(t, g.Due())
	require.True(t, g.Advance())
	require.Equal(t, 0, g.Counter)
}

func TestTickGeneratorMinimumPeriod(t *testing.T) {
	g := NewTickGenerator(0)
	require.Equal(t, 1, g.Period)
	for i := 0; i < 4; i++ {
		require.True(t, g.Advance())
	}
}

func TestPeriodFor(t *testing.T) {
	testCases := []struct {
		name   string
		clock  int
		baud   int
		period int
		err    error
	}{
		{"exact", 1843200, 115200, 16, nil},
		{"rounded up", 16000000, 115200, 139, nil},
		{"rounded down", 50000000, 9600, 5208, nil},
		{"single cycle", 5000, 9600, 1, nil},
		{"zero baud", 100, 0, 0, ErrInvalidBaud},
		{"negative clock", -1, 9600, 0, ErrInvalidClock},
		{"too fast", 100, 9600, 0, ErrBaudTooHigh},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			period, err := PeriodFor(tc.clock, tc.baud)
			require.Equal(t, tc.err, err)
			require.Equal(t, tc.period, period)
		})
	}
}
