package sim

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/robotalks/uart.go/pkg/uart"
)

// Config defines the configuration of the simulated line.
type Config struct {
	ClockHz               int
	Baud                  int
	MaxCyclesPerIteration uint64
}

// Defaults
const (
	DefaultClockHz               = 153600
	DefaultBaud                  = 9600
	DefaultMaxCyclesPerIteration = 1 << 20
)

var defaultConfig = Config{
	ClockHz:               DefaultClockHz,
	Baud:                  DefaultBaud,
	MaxCyclesPerIteration: DefaultMaxCyclesPerIteration,
}

func init() {
	if val, err := strconv.Atoi(os.Getenv("UART_CLOCK_HZ")); err == nil {
		defaultConfig.ClockHz = val
	}
	if val, err := strconv.Atoi(os.Getenv("UART_BAUD")); err == nil {
		defaultConfig.Baud = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.ClockHz, "clock-hz", defaultConfig.ClockHz, "Base clock frequency (Hz).")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Baud rate (bits/s).")
	flag.Uint64Var(&defaultConfig.MaxCyclesPerIteration, "max-cycles", defaultConfig.MaxCyclesPerIteration, "Maximum base clock cycles simulated per loop iteration.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Period calculates the bit period from clock and baud rate.
func (c *Config) Period() (int, error) {
	return uart.PeriodFor(c.ClockHz, c.Baud)
}

// NewBench creates a Bench using the config.
func (c *Config) NewBench() (*Bench, error) {
	period, err := c.Period()
	if err != nil {
		return nil, fmt.Errorf("clock %d Hz, baud %d: %v", c.ClockHz, c.Baud, err)
	}
	return NewBench(period)
}

// NewDevice creates a Device using the config.
func (c *Config) NewDevice(name string) (*Device, error) {
	bench, err := c.NewBench()
	if err != nil {
		return nil, err
	}
	dev := NewDevice(name, c.ClockHz, bench)
	dev.MaxCyclesPerIteration = c.MaxCyclesPerIteration
	return dev, nil
}

// MustNewDevice creates a Device and fails on error.
func (c *Config) MustNewDevice(name string) *Device {
	dev, err := c.NewDevice(name)
	if err != nil {
		log.Fatalln(err)
	}
	return dev
}
