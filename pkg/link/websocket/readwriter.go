// Package websocket implements ByteReadWriter over websocket binary frames.
package websocket

import "golang.org/x/net/websocket"

// ReadWriter implements ByteReadWriter.
type ReadWriter websocket.Conn

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *ReadWriter {
	return (*ReadWriter)(conn)
}

// ReadBytes implements ByteReader. Each frame is a chunk.
func (p *ReadWriter) ReadBytes() (data []byte, err error) {
	err = websocket.Message.Receive((*websocket.Conn)(p), &data)
	return
}

// WriteBytes implements ByteWriter.
func (p *ReadWriter) WriteBytes(data []byte) error {
	return websocket.Message.Send((*websocket.Conn)(p), data)
}

// Close implements io.Closer.
func (p *ReadWriter) Close() error {
	return (*websocket.Conn)(p).Close()
}

// Dial connects to a websocket server.
func Dial(url, origin string) (*ReadWriter, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}
