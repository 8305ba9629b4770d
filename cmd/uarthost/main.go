package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"

	"github.com/robotalks/uart.go/pkg/host"
)

// Context is shared by commands.
type Context struct {
	ctx context.Context
}

var CLI struct {
	Baud    int           `optional:"" help:"Baud rate of the serial port." default:"115200"`
	Timeout time.Duration `optional:"" help:"Time waiting for each echoed byte." default:"1s"`
	Settle  time.Duration `optional:"" help:"Wait after opening the port, boards may reset on connect." default:"2s"`

	Transfer TransferCmd `cmd:"" help:"Send a file byte by byte and save the echoed bytes."`
	Probe    ProbeCmd    `cmd:"" help:"Send a single byte and print the reply."`
}

func openPort(name string) (*host.Transfer, func(), error) {
	port, err := host.OpenSerial(name, CLI.Baud, 100*time.Millisecond)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %v", name, err)
	}
	if CLI.Settle > 0 {
		time.Sleep(CLI.Settle)
	}
	t := host.NewTransfer(port)
	t.Timeout = CLI.Timeout
	return t, func() {
		port.Close()
		t.Close()
	}, nil
}

func main() {
	k, err := kong.New(&CLI,
		kong.NamedMapper("hex", hexMapper{}))
	if err != nil {
		fmt.Println(err)
		return
	}

	kctx, err := k.Parse(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	err = kctx.Run(&Context{ctx: ctx})
	kctx.FatalIfErrorf(err)
}
