package uart

// TickGenerator divides the base clock into one bit-tick per bit period.
type TickGenerator struct {
	Period  int
	Counter int
}

// NewTickGenerator creates a TickGenerator with the counter at 0.
func NewTickGenerator(period int) TickGenerator {
	if period < 1 {
		period = 1
	}
	return TickGenerator{Period: period}
}

// PeriodFor calculates the bit period in base-clock cycles, rounded to
// the nearest integer. The remainder is accepted as baud rate error.
func PeriodFor(clockHz, baud int) (int, error) {
	if baud <= 0 {
		return 0, ErrInvalidBaud
	}
	if clockHz <= 0 {
		return 0, ErrInvalidClock
	}
	period := (clockHz + baud/2) / baud
	if period < 1 {
		return 0, ErrBaudTooHigh
	}
	return period, nil
}

// Due indicates the next Step fires a tick.
func (g TickGenerator) Due() bool {
	return g.Counter >= g.Period-1
}

// Step consumes one base-clock cycle.
func (g TickGenerator) Step() (TickGenerator, bool) {
	if g.Due() {
		g.Counter = 0
		return g, true
	}
	g.Counter++
	return g, false
}

// Advance performs Step in-place.
func (g *TickGenerator) Advance() (tick bool) {
	*g, tick = g.Step()
	return
}
