package mqtt

import (
	"context"
	"encoding/json"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	fx "github.com/robotalks/uart.go/pkg/framework"
	"github.com/robotalks/uart.go/pkg/msgs"
	"github.com/robotalks/uart.go/pkg/sim"
	"github.com/robotalks/uart.go/pkg/uart"
)

// Meta is announced (retained) on name/meta while the device is online.
type Meta struct {
	Name    string `json:"name"`
	Period  int    `json:"period"`
	ClockHz int    `json:"clock_hz,omitempty"`
	Baud    int    `json:"baud,omitempty"`
}

// StatsSource provides the statistics of the device.
type StatsSource func() (cycle uint64, stats uart.Stats)

// Reporter publishes device events and statistics.
type Reporter struct {
	Queue *Queue
	Meta  Meta
	Stats StatsSource

	metaJSON  []byte
	lastStats uart.Stats
}

// NewReporter creates a Reporter.
func NewReporter(brokerURL string, meta Meta) (*Reporter, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	metaJSON, err := json.Marshal(&meta)
	if err != nil {
		return nil, err
	}
	metaTopic := topicPrefix + DeviceTopic(meta.Name, TopicMeta)
	opts.SetBinaryWill(metaTopic, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("uart:" + meta.Name)
	}
	r := &Reporter{
		Queue:    NewQueue(opts, topicPrefix),
		Meta:     meta,
		metaJSON: metaJSON,
	}
	r.Queue.OnConnect = func(*Queue) { r.announce(r.metaJSON) }
	return r, nil
}

// Link creates a ReadWriter for the device sharing the connection.
func (r *Reporter) Link() *ReadWriter {
	return NewReadWriter(r.Queue).ForDevice(r.Meta.Name)
}

// Subscribe is a helper to subscribe device events.
func (r *Reporter) Subscribe(sub sim.EventSubscriber) *Reporter {
	sub.SubscribeEvents(r)
	return r
}

// EventsHappened implements sim.EventListener.
func (r *Reporter) EventsHappened(cc fx.ControlContext, events ...sim.Event) {
	for _, ev := range events {
		r.publish(TopicEvents, msgs.EventFrom(ev), false)
	}
	r.reportStats()
}

func (r *Reporter) reportStats() {
	if r.Stats == nil {
		return
	}
	cycle, stats := r.Stats()
	if stats == r.lastStats {
		return
	}
	r.lastStats = stats
	r.publish(TopicStats, msgs.StatsFrom(cycle, stats), true)
}

func (r *Reporter) publish(suffix string, msg msgs.SerializableMessage, retain bool) {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		glog.Errorf("encode %s error: %v", suffix, err)
		return
	}
	data, err := typed.Encode()
	if err != nil {
		glog.Errorf("encode %s error: %v", suffix, err)
		return
	}
	r.Queue.PubWith(DeviceTopic(r.Meta.Name, suffix), data, 0, retain)
}

func (r *Reporter) announce(payload []byte) paho.Token {
	return r.Queue.PubWith(DeviceTopic(r.Meta.Name, TopicMeta), payload, 1, true)
}

// Run implements Runnable.
func (r *Reporter) Run(ctx context.Context) error {
	if token := r.Queue.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	<-ctx.Done()
	r.announce(nil).Wait()
	r.Queue.Close()
	return nil
}

// AddToLoop implements LoopAdder.
func (r *Reporter) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(r)
}
