package host

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// echoPort replies every written byte through fn, or drops the
// reply once limit bytes are answered.
type echoPort struct {
	fn    func(byte) byte
	limit int

	lock    sync.Mutex
	written []byte
	replyCh chan byte
	once    sync.Once
}

func newEchoPort(fn func(byte) byte) *echoPort {
	return &echoPort{fn: fn, limit: -1, replyCh: make(chan byte, 16)}
}

func (p *echoPort) Write(data []byte) (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	for _, b := range data {
		if p.limit >= 0 && len(p.written) >= p.limit {
			p.written = append(p.written, b)
			continue
		}
		p.written = append(p.written, b)
		p.replyCh <- p.fn(b)
	}
	return len(data), nil
}

func (p *echoPort) Read(buf []byte) (int, error) {
	b, ok := <-p.replyCh
	if !ok {
		return 0, io.EOF
	}
	buf[0] = b
	return 1, nil
}

func (p *echoPort) Close() error {
	p.once.Do(func() { close(p.replyCh) })
	return nil
}

func invert(b byte) byte { return ^b }

func TestTransferPassesHeader(t *testing.T) {
	port := newEchoPort(invert)
	defer port.Close()
	tr := NewTransfer(port)
	defer tr.Close()
	tr.HeaderSize = 3
	var progress []int
	tr.Progress = func(done, total int) {
		require.Equal(t, 6, total)
		progress = append(progress, done)
	}

	out, err := tr.Run(context.Background(), []byte{1, 2, 3, 0x00, 0x0f, 0xff})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 0xff, 0xf0, 0x00}, out)
	require.Equal(t, []byte{0x00, 0x0f, 0xff}, port.written)
	require.Equal(t, []int{4, 5, 6}, progress)
}

func TestTransferShortInput(t *testing.T) {
	port := newEchoPort(invert)
	defer port.Close()
	tr := NewTransfer(port)
	defer tr.Close()
	out, err := tr.Run(context.Background(), []byte{1, 2})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, out)
	require.Empty(t, port.written)
}

func TestTransferTimeout(t *testing.T) {
	port := newEchoPort(invert)
	defer port.Close()
	port.limit = 2
	tr := NewTransfer(port)
	defer tr.Close()
	tr.HeaderSize = 1
	tr.Timeout = 20 * time.Millisecond

	out, err := tr.Run(context.Background(), []byte{9, 1, 2, 3, 4})
	require.Equal(t, []byte{9, 0xfe, 0xfd}, out)
	var terr *TransferError
	require.True(t, errors.As(err, &terr))
	require.Equal(t, 3, terr.Offset)
	require.True(t, errors.Is(err, ErrTimeout))
	require.Equal(t, "transfer failed at byte 3: timeout waiting for echo", err.Error())
}

func TestTransferReadError(t *testing.T) {
	port := newEchoPort(invert)
	port.limit = 0
	tr := NewTransfer(port)
	defer tr.Close()
	tr.HeaderSize = 0
	port.Close()
	_, err := tr.Run(context.Background(), []byte{1})
	require.True(t, errors.Is(err, io.EOF))
	// the error sticks
	_, err = tr.Probe(context.Background(), 1)
	require.True(t, errors.Is(err, io.EOF))
}

func TestTransferCanceled(t *testing.T) {
	port := newEchoPort(invert)
	defer port.Close()
	port.limit = 0
	tr := NewTransfer(port)
	defer tr.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Probe(ctx, 1)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestProbe(t *testing.T) {
	port := newEchoPort(invert)
	defer port.Close()
	tr := NewTransfer(port)
	defer tr.Close()
	reply, err := tr.Probe(context.Background(), 0x55)
	require.NoError(t, err)
	require.Equal(t, byte(0xaa), reply)
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, "img_encoded.bmp", OutputPath("img.bmp"))
	require.Equal(t, filepath.Join("a.b", "img_encoded"), OutputPath(filepath.Join("a.b", "img")))
}

func TestTransferFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "host")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	in := filepath.Join(dir, "img.bmp")
	data := make([]byte, DefaultHeaderSize+4)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, ioutil.WriteFile(in, data, 0644))

	port := newEchoPort(func(b byte) byte { return b })
	defer port.Close()
	tr := NewTransfer(port)
	defer tr.Close()
	out := OutputPath(in)
	n, err := tr.TransferFile(context.Background(), in, out)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	written, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, data, written)
	require.Len(t, port.written, 4)
}
