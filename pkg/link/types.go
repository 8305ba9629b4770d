// Package link connects the simulated line to the outside world.
// Bytes read from a link are sent by the host end of a bench and
// bytes echoed back by the device are written to the link.
package link

// ByteReader reads chunks of bytes.
type ByteReader interface {
	ReadBytes() ([]byte, error)
}

// ByteWriter writes chunks of bytes.
type ByteWriter interface {
	WriteBytes([]byte) error
}

// ByteReadWriter reads/writes chunks of bytes.
type ByteReadWriter interface {
	ByteReader
	ByteWriter
}
