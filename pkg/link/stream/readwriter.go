// Package stream implements ByteReadWriter over an io.ReadWriter,
// e.g. a serial port, a TCP connection or stdio.
package stream

import (
	"io"
)

// DefaultChunkSize is the max bytes returned by a ReadBytes.
const DefaultChunkSize = 256

// ReadWriter implements ByteReadWriter.
type ReadWriter struct {
	io.ReadWriter
	ChunkSize int
}

// New creates a ReadWriter with io.ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{ReadWriter: s, ChunkSize: DefaultChunkSize}
}

// ReadBytes implements ByteReader. It returns an empty chunk when
// the underlying reader returns no data and no error, e.g. a serial
// port wrapped by host.IgnoreReadTimeout.
func (s *ReadWriter) ReadBytes() ([]byte, error) {
	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	buf := make([]byte, size)
	n, err := s.Read(buf)
	if n > 0 {
		// data comes before error
		return buf[:n], nil
	}
	return nil, err
}

// WriteBytes implements ByteWriter.
func (s *ReadWriter) WriteBytes(data []byte) error {
	_, err := s.Write(data)
	return err
}

// Close implements io.Closer.
func (s *ReadWriter) Close() error {
	if closer, ok := s.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
