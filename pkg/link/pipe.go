package link

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/uart.go/pkg/framework"
	"github.com/robotalks/uart.go/pkg/sim"
)

// Pipe moves bytes between a ByteReadWriter and a device in the loop.
type Pipe struct {
	ReadWriter ByteReadWriter

	sendLock sync.Mutex
}

// NewPipe creates a Pipe with given ByteReadWriter.
func NewPipe(rw ByteReadWriter) *Pipe {
	return &Pipe{ReadWriter: rw}
}

// Subscribe is a helper to subscribe events for echoed bytes.
func (p *Pipe) Subscribe(sub sim.EventSubscriber) *Pipe {
	sub.SubscribeEvents(p)
	return p
}

// Send writes bytes to the link.
func (p *Pipe) Send(data []byte) error {
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	return p.ReadWriter.WriteBytes(data)
}

// EventsHappened implements sim.EventListener.
func (p *Pipe) EventsHappened(cc fx.ControlContext, events ...sim.Event) {
	var echoed []byte
	for _, ev := range events {
		if ev.Kind == sim.EventEchoed {
			echoed = append(echoed, ev.Value)
		}
	}
	if len(echoed) == 0 {
		return
	}
	if err := p.Send(echoed); err != nil {
		glog.Errorf("link write error: %v", err)
	}
}

// Run implements Runnable.
func (p *Pipe) Run(ctx context.Context) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	return fx.RunWithContextCloser(ctx, p, func() error {
		for {
			data, err := p.ReadWriter.ReadBytes()
			if err != nil {
				return err
			}
			if len(data) == 0 {
				continue
			}
			glog.V(3).Infof("link read %d bytes", len(data))
			loopCtl.PostMessage(&sim.SendBytes{Data: data})
			loopCtl.TriggerNext()
		}
	})
}

// Close implements io.Closer.
func (p *Pipe) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// AddToLoop implements LoopAdder.
func (p *Pipe) AddToLoop(loop *fx.Loop) {
	if adder, ok := p.ReadWriter.(fx.LoopAdder); ok {
		loop.Add(adder)
	} else if runnable, ok := p.ReadWriter.(fx.Runnable); ok {
		loop.AddRunnable(runnable)
	}
	loop.AddRunnable(p)
}
