// Package remote adds shell commands talking to a device over MQTT.
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/uart.go/pkg/cli/sh"
	"github.com/robotalks/uart.go/pkg/link"
	"github.com/robotalks/uart.go/pkg/link/mqtt"
)

// DefaultEchoTimeout is the time waiting for all echoes.
const DefaultEchoTimeout = time.Second

// Conn is the connection to a remote device.
type Conn struct {
	Name   string
	Queue  *mqtt.Queue
	Link   *mqtt.ReadWriter
	Echoes *Echoes
	cancel func()
}

const connKey = "$remote"

// ConnFrom gets the current connection.
func ConnFrom(c *ishell.Context) *Conn {
	conn, _ := c.Get(connKey).(*Conn)
	return conn
}

func connectQueue(c *ishell.Context) (*mqtt.Queue, error) {
	brokerURL := sh.ShellFrom(c).Env.MQTTBrokerURL
	if brokerURL == "" {
		return nil, fmt.Errorf("MQTT broker URL required, use -mqtt or UART_MQTT_URL")
	}
	q, err := mqtt.NewQueueFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return q, nil
}

// Connect connects a remote device.
func Connect(c *ishell.Context, name string) (*Conn, error) {
	q, err := connectQueue(c)
	if err != nil {
		return nil, err
	}
	conn := &Conn{Name: name, Queue: q, Link: mqtt.NewReadWriter(q).ForHost(name)}
	var ctx context.Context
	ctx, conn.cancel = context.WithCancel(context.Background())
	go conn.Link.Run(ctx)
	conn.Echoes = NewEchoes(ctx, conn.Link)
	Disconnect(c)
	c.Set(connKey, conn)
	sh.ShellFrom(c).Shell.SetPrompt(name + " > ")
	return conn, nil
}

// Disconnect disconnects current device.
func Disconnect(c *ishell.Context) {
	if conn := ConnFrom(c); conn != nil {
		conn.cancel()
		conn.Queue.Close()
		c.Set(connKey, nil)
		sh.ShellFrom(c).Shell.SetPrompt("uart > ")
	}
}

// Echoes reads a link continuously. Bytes arriving after a collect
// timed out stay for the next collect unless discarded.
type Echoes struct {
	dataCh  chan []byte
	errCh   chan error
	pending []byte
	err     error
}

// NewEchoes starts reading r until it fails or ctx is done.
func NewEchoes(ctx context.Context, r link.ByteReader) *Echoes {
	e := &Echoes{dataCh: make(chan []byte, 16), errCh: make(chan error, 1)}
	go e.readLoop(ctx, r)
	return e
}

func (e *Echoes) readLoop(ctx context.Context, r link.ByteReader) {
	for {
		data, err := r.ReadBytes()
		if err != nil {
			e.errCh <- err
			return
		}
		if len(data) == 0 {
			continue
		}
		select {
		case e.dataCh <- data:
		case <-ctx.Done():
			return
		}
	}
}

func (e *Echoes) receive(data []byte) {
	e.pending = append(e.pending, data...)
}

// Discard drops bytes received so far.
func (e *Echoes) Discard() {
	for {
		select {
		case <-e.dataCh:
		default:
			e.pending = nil
			return
		}
	}
}

// Collect waits until n bytes arrive or timeout. Extra bytes are
// kept for the next Collect.
func (e *Echoes) Collect(n int, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for len(e.pending) < n && e.err == nil {
		select {
		case data := <-e.dataCh:
			e.receive(data)
		case e.err = <-e.errCh:
			// data read before the error is already queued
			for drained := false; !drained; {
				select {
				case data := <-e.dataCh:
					e.receive(data)
				default:
					drained = true
				}
			}
		case <-timer.C:
			return nil, fmt.Errorf("echo timeout")
		}
	}
	if len(e.pending) < n {
		echoed := e.pending
		e.pending = nil
		return echoed, e.err
	}
	echoed := append([]byte(nil), e.pending[:n]...)
	e.pending = e.pending[n:]
	return echoed, nil
}

var (
	// DiscoverCmd lists devices announced on the broker.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "list devices on the broker",
		Func: func(c *ishell.Context) {
			q, err := connectQueue(c)
			if err != nil {
				c.Err(err)
				return
			}
			defer q.Close()
			found, err := mqtt.Discover(context.Background(), q, mqtt.DefaultDiscoverTimeout)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, found, func() {
				if len(found) == 0 {
					c.Println("No devices found")
					return
				}
				for _, meta := range found {
					c.Printf("%s: period %d, %d baud\n", meta.Name, meta.Period, meta.Baud)
				}
			})
		},
	}

	// ConnectCmd connects a remote device.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "NAME",
		Func: func(c *ishell.Context) {
			name := sh.ShellFrom(c).Env.Name
			if len(c.Args) > 0 {
				name = c.Args[0]
			}
			if _, err := Connect(c, name); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current device.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "disconnect current device",
		Func: func(c *ishell.Context) {
			Disconnect(c)
		},
	}

	// RemoteSendCmd sends bytes to the remote device.
	RemoteSendCmd = ishell.Cmd{
		Name:    "rsend",
		Aliases: []string{"rs"},
		Help:    "HEX|'text' ...",
		Func: func(c *ishell.Context) {
			conn := ConnFrom(c)
			if conn == nil {
				c.Err(fmt.Errorf("not connected"))
				return
			}
			data, err := sh.ParseBytes(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			conn.Echoes.Discard()
			if err = conn.Link.WriteBytes(data); err != nil {
				c.Err(err)
				return
			}
			echoed, err := conn.Echoes.Collect(len(data), DefaultEchoTimeout)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Output(c, map[string]string{"sent": sh.FormatBytes(data), "echoed": sh.FormatBytes(echoed)}, func() {
				c.Printf("sent %s\necho %s\n", sh.FormatBytes(data), sh.FormatBytes(echoed))
			})
		},
	}
)

func init() {
	sh.AddCmds(
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
		&RemoteSendCmd,
	)
}
