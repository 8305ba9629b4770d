package sh

import (
	"bytes"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/uart"
)

var (
	// SendCmd sends bytes and waits for the echoes.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "HEX|'text' ...",
		Func: func(c *ishell.Context) {
			data, err := ParseBytes(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if len(data) == 0 {
				c.Err(fmt.Errorf("bytes required"))
				return
			}
			x, err := ShellFrom(c).Session.Send(data)
			Output(c, x, func() {
				PrintEvents(c, x.Events)
				c.Printf("sent %s\necho %s\n", FormatBytes(x.Sent), FormatBytes(x.Echoed))
			})
			if err != nil {
				c.Err(err)
			}
		},
	}

	// StepCmd executes cycles.
	StepCmd = ishell.Cmd{
		Name:    "step",
		Aliases: []string{"n"},
		Help:    "[CYCLES]",
		Func: func(c *ishell.Context) {
			n, ok := argInt(c, 0, "CYCLES", 1)
			if !ok {
				return
			}
			s := ShellFrom(c).Session
			events := s.Step(uint64(n))
			printStepped(c, s, events)
		},
	}

	// RunCmd executes cycles for a number of bits.
	RunCmd = ishell.Cmd{
		Name:    "run",
		Aliases: []string{"r"},
		Help:    "BITS",
		Func: func(c *ishell.Context) {
			n, ok := argInt(c, 0, "BITS", uart.FrameBits)
			if !ok {
				return
			}
			s := ShellFrom(c).Session
			events := s.RunBits(n)
			printStepped(c, s, events)
		},
	}

	// BreakCmd holds the line low.
	BreakCmd = ishell.Cmd{
		Name: "break",
		Help: "[BITS]",
		Func: func(c *ishell.Context) {
			n, ok := argInt(c, 0, "BITS", uart.FrameBits)
			if !ok {
				return
			}
			s := ShellFrom(c).Session
			events := s.Break(n)
			printStepped(c, s, events)
		},
	}

	// ResetCmd resets both ends of the line.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c).Session
			s.Reset()
			st := s.Status()
			Output(c, st, func() { c.Println(st.String()) })
		},
	}

	// StatusCmd prints the state of the bench.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func: func(c *ishell.Context) {
			st := ShellFrom(c).Session.Status()
			Output(c, st, func() { c.Println(st.String()) })
		},
	}

	// StatsCmd prints counters of both ends.
	StatsCmd = ishell.Cmd{
		Name: "stats",
		Help: "",
		Func: func(c *ishell.Context) {
			host, dev := ShellFrom(c).Session.Bench.Stats()
			Output(c, map[string]uart.Stats{"host": host, "device": dev}, func() {
				c.Printf("host   %+v\ndevice %+v\n", host, dev)
			})
		},
	}

	// WaveCmd renders the waveform.
	WaveCmd = ishell.Cmd{
		Name:    "wave",
		Aliases: []string{"w"},
		Help:    "[WIDTH]",
		Func: func(c *ishell.Context) {
			width, ok := argInt(c, 0, "WIDTH", 72)
			if !ok {
				return
			}
			rec := ShellFrom(c).Session.Wave
			if ShellFrom(c).OutputJSON {
				out, err := rec.JSON()
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			var buf bytes.Buffer
			if err := rec.Render(&buf, width); err != nil {
				c.Err(err)
				return
			}
			c.Print(buf.String())
		},
	}

	// ConfigCmd changes the bit period, the bench restarts.
	ConfigCmd = ishell.Cmd{
		Name: "config",
		Help: "PERIOD",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Printf("period %d\n", ShellFrom(c).Session.Bench.Period())
				return
			}
			n, ok := argInt(c, 0, "PERIOD", 0)
			if !ok {
				return
			}
			s := ShellFrom(c).Session
			if err := s.Configure(n); err != nil {
				c.Err(err)
				return
			}
			st := s.Status()
			Output(c, st, func() { c.Println(st.String()) })
		},
	}
)

func printStepped(c *ishell.Context, s *Session, events []sim.Event) {
	st := s.Status()
	out := struct {
		Status Status      `json:"status"`
		Events []EventJSON `json:"events"`
	}{st, EventsJSON(events)}
	Output(c, out, func() {
		PrintEvents(c, events)
		c.Println(st.String())
	})
}
