// Package uart provides an asynchronous serial framing core.
//
// The core frames bytes as one start bit (low), eight data bits sent least
// significant bit first and one stop bit (high), without parity.
//
// Every component is a plain value with a Step method computing the state
// of the next base-clock cycle from the current one. Core.Step advances all
// of them together, so signals crossing components are always the values of
// the previous cycle.
//
// Framing errors and transmitter overruns never surface as errors. They are
// only counted in Stats.
package uart
