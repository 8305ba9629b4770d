package uart

// DefaultPeriod is the default bit period in base-clock cycles.
const DefaultPeriod = 16

// Config defines the configuration of a Core.
type Config struct {
	// Period is the bit period in base-clock cycles.
	Period int
	// Loopback echoes every received byte on the transmitter.
	Loopback bool
}

// DefaultConfig gets the default configuration.
func DefaultConfig() Config {
	return Config{Period: DefaultPeriod, Loopback: true}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Period < 1 {
		return &ConfigError{Field: "period", Value: c.Period}
	}
	return nil
}

// Inputs are the external signals of one cycle.
type Inputs struct {
	RX    bool
	Reset bool
	// Send requests a transmission from an external producer.
	Send Request
}

// IdleInputs returns inputs with the RX line at rest.
func IdleInputs() Inputs {
	return Inputs{RX: true}
}

// Stats counts events which are otherwise silent.
type Stats struct {
	Received      uint64
	Sent          uint64
	FramingErrors uint64
	Overruns      uint64
}

// Core advances the tick generator, receiver, transmitter and loopback
// controller together, one base-clock cycle per Step.
type Core struct {
	Config
	Cycle uint64
	Tick  TickGenerator
	Rx    Receiver
	Tx    Transmitter
	Echo  Loopback
	Stats Stats
}

// New creates a Core in its initial state.
func New(cfg Config) Core {
	return Core{
		Config: cfg,
		Tick:   NewTickGenerator(cfg.Period),
	}
}

// TX is the level driven on the TX line.
func (c Core) TX() bool {
	return c.Tx.Line()
}

// Busy indicates the transmitter is driving a frame.
func (c Core) Busy() bool {
	return c.Tx.Busy()
}

// Received returns the byte completed in this cycle.
func (c Core) Received() (byte, bool) {
	return c.Rx.OutputByte, c.Rx.Done
}

// Step calculates the state of the next cycle. All signals crossing
// components are taken from c, never from partially updated values.
func (c Core) Step(in Inputs) Core {
	if in.Reset {
		next := New(c.Config)
		next.Cycle, next.Stats = c.Cycle+1, c.Stats
		return next
	}

	next := c
	next.Cycle++
	var tick bool
	next.Tick, tick = c.Tick.Step()
	next.Rx = c.Rx.Step(tick, in.RX)

	var req Request
	if c.Loopback {
		next.Echo = c.Echo.Step(c.Rx.Done, c.Rx.OutputByte, c.Tx.Busy())
		if c.Echo.Dropped(c.Rx.Done, c.Tx.Busy()) {
			next.Stats.Overruns++
		}
		req = c.Echo.Request()
	}
	if in.Send.Valid {
		if req.Valid || c.Tx.Busy() {
			next.Stats.Overruns++
		} else {
			req = in.Send
		}
	}
	next.Tx = c.Tx.Step(tick, req)

	if next.Rx.Done {
		next.Stats.Received++
	}
	if next.Rx.FramingError {
		next.Stats.FramingErrors++
	}
	if c.Tx.Phase == TxSendingStop && next.Tx.Phase == TxIdle {
		next.Stats.Sent++
	}
	return next
}
