// Package host drives an echoing device from the host side: each
// byte is sent and exactly one byte is expected back.
package host

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"
)

// Defaults of a transfer.
const (
	// DefaultHeaderSize is the size of a BMP header passed through.
	DefaultHeaderSize = 138
	DefaultTimeout    = time.Second
	DefaultBaud       = 115200
)

// ProgressFunc is called after each exchanged byte.
type ProgressFunc func(done, total int)

// Transfer exchanges bytes with a device one at a time.
type Transfer struct {
	Port io.ReadWriter
	// HeaderSize leading bytes are copied to the output without
	// being sent.
	HeaderSize int
	Timeout    time.Duration
	Progress   ProgressFunc

	byteCh  chan byte
	errCh   chan error
	readErr error
	cancel  func()
}

// NewTransfer creates a Transfer with defaults.
func NewTransfer(port io.ReadWriter) *Transfer {
	return &Transfer{
		Port:       port,
		HeaderSize: DefaultHeaderSize,
		Timeout:    DefaultTimeout,
	}
}

// start launches the reader once. Reads returning no data are
// skipped, see IgnoreReadTimeout.
func (t *Transfer) start() {
	if t.byteCh != nil {
		return
	}
	var ctx context.Context
	ctx, t.cancel = context.WithCancel(context.Background())
	t.byteCh, t.errCh = make(chan byte, 1), make(chan error, 1)
	go t.readLoop(ctx, t.byteCh, t.errCh)
}

// Close stops the reader. A reader blocked in Read only exits
// when the port is closed or times out.
func (t *Transfer) Close() error {
	if t.cancel != nil {
		t.cancel()
	}
	return nil
}

func (t *Transfer) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		n, err := t.Port.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n == 0 {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		select {
		case byteCh <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

// exchange sends a byte and waits for the reply.
func (t *Transfer) exchange(ctx context.Context, b byte) (byte, error) {
	if t.readErr != nil {
		return 0, t.readErr
	}
	// a late reply of a timed out byte
	for drained := false; !drained; {
		select {
		case <-t.byteCh:
		default:
			drained = true
		}
	}
	if _, err := t.Port.Write([]byte{b}); err != nil {
		return 0, err
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case reply := <-t.byteCh:
		return reply, nil
	case err := <-t.errCh:
		t.readErr = err
		return 0, err
	case <-timer.C:
		return 0, ErrTimeout
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Probe sends a single byte and returns the reply.
func (t *Transfer) Probe(ctx context.Context, b byte) (byte, error) {
	t.start()
	reply, err := t.exchange(ctx, b)
	if err != nil {
		return 0, &TransferError{Err: err}
	}
	return reply, nil
}

// Run sends data after the header and collects the replies. The
// returned output has the same length as data on success, otherwise
// it contains the bytes exchanged so far.
func (t *Transfer) Run(ctx context.Context, data []byte) ([]byte, error) {
	t.start()
	header := t.HeaderSize
	if header > len(data) {
		header = len(data)
	} else if header < 0 {
		header = 0
	}
	out := make([]byte, header, len(data))
	copy(out, data[:header])
	glog.V(1).Infof("header %d bytes, sending %d bytes", header, len(data)-header)
	for i := header; i < len(data); i++ {
		reply, err := t.exchange(ctx, data[i])
		if err != nil {
			return out, &TransferError{Offset: i, Err: err}
		}
		out = append(out, reply)
		glog.V(4).Infof("byte %d: %02x -> %02x", i, data[i], reply)
		if p := t.Progress; p != nil {
			p(i+1, len(data))
		}
	}
	return out, nil
}
