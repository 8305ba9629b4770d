package uart

// Loopback registers a received byte into a one-cycle start pulse
// for the Transmitter. Bytes completed while busy are dropped.
type Loopback struct {
	Start bool
	Data  byte
}

// Step registers the receiver and transmitter signals of the current cycle.
func (l Loopback) Step(done bool, data byte, busy bool) Loopback {
	return Loopback{Start: done && !busy, Data: data}
}

// Request is the start-request presented in this cycle.
func (l Loopback) Request() Request {
	return Request{Valid: l.Start, Data: l.Data}
}

// Dropped indicates a completed byte can't be echoed.
func (l Loopback) Dropped(done, busy bool) bool {
	return done && busy
}
