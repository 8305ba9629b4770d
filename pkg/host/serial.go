package host

import (
	"context"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/tarm/serial"
)

// OpenSerial opens a serial port. A positive timeout makes reads
// return without data periodically.
func OpenSerial(name string, baud int, timeout time.Duration) (io.ReadWriteCloser, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	return IgnoreReadTimeout(port), nil
}

// timeoutPort reads no data instead of io.EOF when a read times out.
type timeoutPort struct {
	io.ReadWriteCloser
}

func (p timeoutPort) Read(buf []byte) (int, error) {
	n, err := p.ReadWriteCloser.Read(buf)
	if n == 0 && err == io.EOF {
		return 0, nil
	}
	return n, err
}

// IgnoreReadTimeout wraps a port reporting a read timeout as io.EOF,
// as a serial port does on POSIX. A closed port still fails reads.
func IgnoreReadTimeout(port io.ReadWriteCloser) io.ReadWriteCloser {
	return timeoutPort{ReadWriteCloser: port}
}

// OutputPath derives the output file name: <base>_encoded<ext>.
func OutputPath(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + "_encoded" + ext
}

// TransferFile transfers the content of a file and writes the
// output only when all bytes are exchanged.
func (t *Transfer) TransferFile(ctx context.Context, in, out string) (int, error) {
	data, err := ioutil.ReadFile(in)
	if err != nil {
		return 0, err
	}
	encoded, err := t.Run(ctx, data)
	if err != nil {
		return len(encoded), err
	}
	return len(encoded), ioutil.WriteFile(out, encoded, 0644)
}
