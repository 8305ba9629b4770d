package main

import (
	"fmt"
	"io/ioutil"

	"github.com/robotalks/uart.go/pkg/host"
)

type TransferCmd struct {
	Image  string `arg:"" name:"image" help:"File to transfer." type:"existingfile"`
	Port   string `arg:"" name:"port" help:"Serial port, e.g. /dev/ttyACM0."`
	Output string `optional:"" short:"o" help:"Output file, defaults to <image>_encoded<ext>."`
	Header int    `optional:"" help:"Leading bytes copied without sending." default:"138"`
	Dump   bool   `optional:"" help:"Print a hexdump of the output, changed bytes marked."`
}

func (t *TransferCmd) Run(c *Context) error {
	out := t.Output
	if out == "" {
		out = host.OutputPath(t.Image)
	}
	fmt.Printf("Output file will be saved as: %q\n", out)

	tr, closePort, err := openPort(t.Port)
	if err != nil {
		return err
	}
	defer closePort()
	tr.HeaderSize = t.Header

	lastPercent := -1
	tr.Progress = func(done, total int) {
		if percent := done * 100 / total; percent != lastPercent {
			lastPercent = percent
			fmt.Printf("\rTransferred %d/%d bytes (%d%%)", done, total, percent)
		}
	}
	n, err := tr.TransferFile(c.ctx, t.Image, out)
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Printf("Transfer complete. Saved %d bytes to %q\n", n, out)

	if t.Dump {
		in, err := ioutil.ReadFile(t.Image)
		if err != nil {
			return err
		}
		encoded, err := ioutil.ReadFile(out)
		if err != nil {
			return err
		}
		fmt.Println(hexdump(0, encoded, diffMarks(in, encoded)))
	}
	return nil
}

type ProbeCmd struct {
	Port  string `arg:"" name:"port" help:"Serial port, e.g. /dev/ttyACM0."`
	Value uint8  `arg:"" optional:"" name:"value" help:"Byte to send in hex." type:"hex" default:"55"`
}

func (p *ProbeCmd) Run(c *Context) error {
	tr, closePort, err := openPort(p.Port)
	if err != nil {
		return err
	}
	defer closePort()
	reply, err := tr.Probe(c.ctx, p.Value)
	if err != nil {
		return err
	}
	fmt.Printf("sent 0x%02x, received 0x%02x\n", p.Value, reply)
	return nil
}
