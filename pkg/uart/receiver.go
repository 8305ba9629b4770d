package uart

// RxPhase is the phase of the Receiver.
type RxPhase int

const (
	RxIdle      RxPhase = iota // waiting for a start bit
	RxReceiving                // shifting in data bits
	RxChecking                 // waiting for the stop bit
)

func (p RxPhase) String() string {
	switch p {
	case RxIdle:
		return "idle"
	case RxReceiving:
		return "receiving"
	case RxChecking:
		return "checking"
	}
	return "unknown"
}

// Receiver reconstructs bytes from the RX line.
type Receiver struct {
	Phase        RxPhase
	BitsReceived int
	ShiftBuffer  byte
	// OutputByte is only valid in the cycle Done is set.
	OutputByte byte
	// Done is set for exactly one cycle per framed byte.
	Done bool
	// FramingError is set for one cycle when the stop bit reads low.
	FramingError bool
}

// Step calculates the receiver state of the next cycle.
// The line is only sampled when tick is set.
func (r Receiver) Step(tick, line bool) Receiver {
	r.Done, r.FramingError = false, false
	if !tick {
		return r
	}
	switch r.Phase {
	case RxIdle:
		if !line {
			r.Phase, r.BitsReceived = RxReceiving, 0
		}
	case RxReceiving:
		r.ShiftBuffer >>= 1
		if line {
			r.ShiftBuffer |= 0x80
		}
		if r.BitsReceived == 7 {
			r.Phase = RxChecking
		} else {
			r.BitsReceived++
		}
	case RxChecking:
		if line {
			r.OutputByte, r.Done = r.ShiftBuffer, true
		} else {
			r.FramingError = true
		}
		r.Phase = RxIdle
	}
	return r
}
