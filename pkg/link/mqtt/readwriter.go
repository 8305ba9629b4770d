package mqtt

import (
	"context"
	"io"
	"sync"
)

// Topic suffixes relative to the device name.
const (
	TopicRX     = "rx"
	TopicTX     = "tx"
	TopicEvents = "events"
	TopicStats  = "stats"
	TopicMeta   = "meta"
)

// DeviceTopic builds the topic of a device.
func DeviceTopic(name, suffix string) string {
	return name + "/" + suffix
}

// ReadWriter implements ByteReadWriter, each message is a chunk.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	dataCh    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewReadWriter creates the ReadWriter.
func NewReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:  q,
		dataCh: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForDevice sets topics for the device side:
// SubTopic = name/rx
// PubTopic = name/tx
func (p *ReadWriter) ForDevice(name string) *ReadWriter {
	return p.WithTopics(DeviceTopic(name, TopicRX), DeviceTopic(name, TopicTX))
}

// ForHost sets topics for the host side talking to a device:
// SubTopic = name/tx
// PubTopic = name/rx
func (p *ReadWriter) ForHost(name string) *ReadWriter {
	return p.WithTopics(DeviceTopic(name, TopicTX), DeviceTopic(name, TopicRX))
}

// ReadBytes implements ByteReader.
func (p *ReadWriter) ReadBytes() ([]byte, error) {
	select {
	case data := <-p.dataCh:
		return data, nil
	case <-p.done:
		return nil, io.EOF
	}
}

// WriteBytes implements ByteWriter.
func (p *ReadWriter) WriteBytes(data []byte) error {
	token := p.Queue.Pub(p.PubTopic, data)
	token.Wait()
	return token.Error()
}

// Close implements io.Closer. Pending reads return io.EOF.
func (p *ReadWriter) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	return nil
}

// Run implements Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	sub := p.Queue.Sub(p.SubTopic, Handler(p.handleMsg))
	defer sub.Close()
	defer p.Close()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return nil
	}
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	select {
	case p.dataCh <- payload:
	case <-p.done:
	}
}
