package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/robotalks/uart.go/pkg/env"
	fx "github.com/robotalks/uart.go/pkg/framework"
	"github.com/robotalks/uart.go/pkg/host"
	"github.com/robotalks/uart.go/pkg/link"
	"github.com/robotalks/uart.go/pkg/link/mqtt"
	"github.com/robotalks/uart.go/pkg/link/stream"
	"github.com/robotalks/uart.go/pkg/link/websocket"
	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/uart"
)

var (
	useStdio   bool
	wsAddr     string
	serialName string
	serialBaud = host.DefaultBaud
)

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return os.Stdin.Close() }

func init() {
	env.SetupFlags()
	sim.SetupFlags()
	flag.BoolVar(&useStdio, "stdio", useStdio, "Send bytes from stdin, write echoes to stdout.")
	flag.StringVar(&wsAddr, "ws", wsAddr, "Listen address for websocket links, e.g. :8080.")
	flag.StringVar(&serialName, "serial", serialName, "Serial port to serve, e.g. /dev/ttyUSB0.")
	flag.IntVar(&serialBaud, "serial-baud", serialBaud, "Baud rate of the served serial port.")
}

func main() {
	flag.Parse()

	envConf, conf := env.NewConfig(), sim.NewConfig()
	dev := conf.MustNewDevice(envConf.Name)
	loop := fx.NewLoop().Add(dev)

	if useStdio {
		loop.Add(link.NewPipe(stream.New(stdio{})).Subscribe(dev))
	}
	if serialName != "" {
		port, err := host.OpenSerial(serialName, serialBaud, 100*time.Millisecond)
		if err != nil {
			log.Fatalln(err)
		}
		loop.Add(link.NewPipe(stream.New(port)).Subscribe(dev))
	}
	if wsAddr != "" {
		loop.Add(websocket.NewServer(wsAddr).Subscribe(dev))
	}
	if envConf.MQTTBrokerURL != "" {
		rep, err := mqtt.NewReporter(envConf.MQTTBrokerURL, mqtt.Meta{
			Name:    envConf.Name,
			Period:  dev.Bench.Period(),
			ClockHz: conf.ClockHz,
			Baud:    conf.Baud,
		})
		if err != nil {
			log.Fatalln(err)
		}
		rep.Stats = func() (uint64, uart.Stats) {
			_, stats := dev.Bench.Stats()
			return dev.Bench.Cycle(), stats
		}
		loop.Add(rep.Subscribe(dev), link.NewPipe(rep.Link()).Subscribe(dev))
	}

	loop.RunOrFail()
}
