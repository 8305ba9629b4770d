package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/inancgumus/screen"

	"github.com/robotalks/uart.go/pkg/env"
	fx "github.com/robotalks/uart.go/pkg/framework"
	"github.com/robotalks/uart.go/pkg/link/mqtt"
)

var (
	live     bool
	interval = 500 * time.Millisecond
)

func init() {
	env.SetupFlags()
	flag.BoolVar(&live, "live", live, "Show a live table instead of a log.")
	flag.DurationVar(&interval, "interval", interval, "Refresh interval of the live table.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	brokerURL := env.Default().MQTTBrokerURL
	if brokerURL == "" {
		log.Fatalln("MQTT broker URL required, use -mqtt or UART_MQTT_URL")
	}
	q, err := mqtt.NewQueueFromURL(brokerURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	defer q.Close()

	mon := newMonitor()
	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		line, err := mon.handle(topic, payload)
		switch {
		case err != nil:
			log.Println(err)
		case !live && line != "":
			log.Println(line)
		}
	}))

	runner := fx.NewRunner().HandleSignals()
	if live {
		runner.Go(fx.RunFunc(func(ctx context.Context) error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case now := <-ticker.C:
					screen.Clear()
					screen.MoveTopLeft()
					mon.render(os.Stdout, now)
				}
			}
		}))
	} else {
		runner.Go(fx.RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}))
	}
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
