package uart

// TxPhase is the phase of the Transmitter.
type TxPhase int

const (
	TxIdle         TxPhase = iota // line held high, accepting requests
	TxSendingStart                // start bit
	TxSendingData                 // data bits, LSB first
	TxSendingStop                 // stop bit
)

func (p TxPhase) String() string {
	switch p {
	case TxIdle:
		return "idle"
	case TxSendingStart:
		return "start"
	case TxSendingData:
		return "data"
	case TxSendingStop:
		return "stop"
	}
	return "unknown"
}

// Request is a start-request presented to the Transmitter for one cycle.
type Request struct {
	Valid bool
	Data  byte
}

// SendRequest creates a valid Request.
func SendRequest(b byte) Request {
	return Request{Valid: true, Data: b}
}

// Transmitter serializes bytes onto the TX line.
type Transmitter struct {
	Phase      TxPhase
	BitsSent   int
	DataBuffer byte
}

// Busy indicates a frame is being driven.
func (t Transmitter) Busy() bool {
	return t.Phase != TxIdle
}

// Accepts indicates the request will start a transmission.
func (t Transmitter) Accepts(req Request) bool {
	return req.Valid && !t.Busy()
}

// Line is the level currently driven on the TX line.
func (t Transmitter) Line() bool {
	switch t.Phase {
	case TxSendingStart:
		return false
	case TxSendingData:
		return t.DataBuffer&1 != 0
	}
	return true
}

// Step calculates the transmitter state of the next cycle.
// Requests while busy are ignored. A request is accepted on any cycle
// and the start bit lasts until the next tick, so it is shorter than a
// full bit period unless accepted right after a tick. A loopback echo
// drives a start bit of Period-2 cycles.
func (t Transmitter) Step(tick bool, req Request) Transmitter {
	switch t.Phase {
	case TxIdle:
		if req.Valid {
			t.DataBuffer, t.BitsSent = req.Data, 0
			t.Phase = TxSendingStart
		}
	case TxSendingStart:
		if tick {
			t.Phase = TxSendingData
		}
	case TxSendingData:
		if !tick {
			break
		}
		t.DataBuffer >>= 1
		if t.BitsSent == 7 {
			t.Phase = TxSendingStop
		} else {
			t.BitsSent++
		}
	case TxSendingStop:
		if tick {
			t.Phase = TxIdle
		}
	}
	return t
}
